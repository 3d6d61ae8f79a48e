//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/basstop798/mangoose/internal/domain/people"

	"github.com/stretchr/testify/mock"
)

// MockPersonRepository is a mock implementation of PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(ctx context.Context, person *people.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) CreateMany(ctx context.Context, persons []*people.Person) error {
	args := m.Called(ctx, persons)
	return args.Error(0)
}

func (m *MockPersonRepository) Find(ctx context.Context, filter *people.PersonFilter) ([]*people.Person, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*people.Person), args.Error(1)
}

func (m *MockPersonRepository) FindOne(ctx context.Context, filter *people.PersonFilter) (*people.Person, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Person), args.Error(1)
}

func (m *MockPersonRepository) GetByID(ctx context.Context, personID string) (*people.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Person), args.Error(1)
}

func (m *MockPersonRepository) Save(ctx context.Context, person *people.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) FindOneAndUpdate(ctx context.Context, filter *people.PersonFilter, update *people.PersonUpdate) (*people.Person, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Person), args.Error(1)
}

func (m *MockPersonRepository) DeleteByID(ctx context.Context, personID string) (*people.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Person), args.Error(1)
}

func (m *MockPersonRepository) DeleteMany(ctx context.Context, filter *people.PersonFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPersonRepository) Search(ctx context.Context, query *people.PersonQuery) ([]*people.Person, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*people.Person), args.Error(1)
}
