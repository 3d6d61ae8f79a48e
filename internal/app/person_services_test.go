//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPersonService(t *testing.T) (people.PersonService, *MockPersonRepository) {
	t.Helper()

	repo := new(MockPersonRepository)
	service, err := NewPersonService(repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return service, repo
}

func TestNewPersonService_NilRepository(t *testing.T) {
	_, err := NewPersonService(nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestPersonService_Create(t *testing.T) {
	service, repo := newTestPersonService(t)
	person := testutil.FakePerson()

	repo.On("Create", mock.Anything, person).Run(func(args mock.Arguments) {
		args.Get(1).(*people.Person).ID = "generated"
	}).Return(nil)

	created, err := service.Create(context.Background(), person)
	require.NoError(t, err)
	assert.Equal(t, "generated", created.ID)
	repo.AssertExpectations(t)
}

func TestPersonService_Create_RepositoryError(t *testing.T) {
	service, repo := newTestPersonService(t)
	person := testutil.FakePerson()

	repo.On("Create", mock.Anything, person).Return(errors.New("boom"))

	_, err := service.Create(context.Background(), person)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create person")
}

func TestPersonService_CreateMany(t *testing.T) {
	tests := []struct {
		name    string
		persons []*people.Person
		repoErr error
		wantErr bool
		calls   bool
	}{
		{"valid batch", testutil.FakePeople(3), nil, false, true},
		{"nil entry", []*people.Person{testutil.FakePerson(), nil}, nil, true, false},
		{"repository failure", testutil.FakePeople(2), errors.New("insert failed"), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestPersonService(t)
			if tt.calls {
				repo.On("CreateMany", mock.Anything, tt.persons).Return(tt.repoErr)
			}

			created, err := service.CreateMany(context.Background(), tt.persons)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, created, len(tt.persons))
			}
			if !tt.calls {
				repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPersonService_FindOne_NotFound(t *testing.T) {
	service, repo := newTestPersonService(t)
	filter := &people.PersonFilter{FavoriteFood: "burritos"}

	repo.On("FindOne", mock.Anything, filter).Return(nil, people.ErrPersonNotFound)

	_, err := service.FindOne(context.Background(), filter)
	assert.ErrorIs(t, err, people.ErrPersonNotFound)
}

func TestPersonService_Find_InvalidFilter(t *testing.T) {
	service, repo := newTestPersonService(t)
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	_, err := service.Find(context.Background(), &people.PersonFilter{Name: string(long)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestPersonService_GetByID_InvalidID(t *testing.T) {
	service, repo := newTestPersonService(t)

	repo.On("GetByID", mock.Anything, "bad").Return(nil, people.ErrInvalidID)

	_, err := service.GetByID(context.Background(), "bad")
	assert.ErrorIs(t, err, people.ErrInvalidID)
}

func TestPersonService_AddFavoriteFood(t *testing.T) {
	service, repo := newTestPersonService(t)
	stored := people.NewPerson("John Doe", people.IntPtr(25), "pizza", "pasta")
	stored.ID = "abc"

	repo.On("GetByID", mock.Anything, "abc").Return(stored, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *people.Person) bool {
		return len(p.FavoriteFoods) == 3 && p.FavoriteFoods[2] == "hamburger"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*people.Person).Version++
	}).Return(nil)

	updated, err := service.AddFavoriteFood(context.Background(), "abc", "hamburger")
	require.NoError(t, err)
	assert.Equal(t, []string{"pizza", "pasta", "hamburger"}, updated.FavoriteFoods)
	assert.Equal(t, 1, updated.Version)
	repo.AssertExpectations(t)
}

func TestPersonService_AddFavoriteFood_Errors(t *testing.T) {
	t.Run("load fails", func(t *testing.T) {
		service, repo := newTestPersonService(t)
		repo.On("GetByID", mock.Anything, "abc").Return(nil, people.ErrPersonNotFound)

		_, err := service.AddFavoriteFood(context.Background(), "abc", "hamburger")
		assert.ErrorIs(t, err, people.ErrPersonNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save conflicts", func(t *testing.T) {
		service, repo := newTestPersonService(t)
		stored := people.NewPerson("John Doe", nil)
		stored.ID = "abc"

		repo.On("GetByID", mock.Anything, "abc").Return(stored, nil)
		repo.On("Save", mock.Anything, stored).Return(people.ErrVersionConflict)

		_, err := service.AddFavoriteFood(context.Background(), "abc", "hamburger")
		assert.ErrorIs(t, err, people.ErrVersionConflict)
	})
}

func TestPersonService_UpdateOne(t *testing.T) {
	service, repo := newTestPersonService(t)
	filter := &people.PersonFilter{Name: "Ali"}
	update := &people.PersonUpdate{Age: people.IntPtr(20)}
	after := people.NewPerson("Ali", people.IntPtr(20), "couscous")

	repo.On("FindOneAndUpdate", mock.Anything, filter, update).Return(after, nil)

	updated, err := service.UpdateOne(context.Background(), filter, update)
	require.NoError(t, err)
	assert.Equal(t, 20, *updated.Age)
}

func TestPersonService_DeleteByID(t *testing.T) {
	service, repo := newTestPersonService(t)
	removed := people.NewPerson("John Doe", nil)
	removed.ID = "abc"

	repo.On("DeleteByID", mock.Anything, "abc").Return(removed, nil)

	result, err := service.DeleteByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", result.ID)
}

func TestPersonService_DeleteMany(t *testing.T) {
	tests := []struct {
		name    string
		filter  *people.PersonFilter
		deleted int64
		wantErr error
	}{
		{"by name", &people.PersonFilter{Name: "Mary"}, 2, nil},
		{"nil filter", nil, 0, people.ErrEmptyFilter},
		{"empty filter", &people.PersonFilter{}, 0, people.ErrEmptyFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestPersonService(t)
			if tt.wantErr == nil {
				repo.On("DeleteMany", mock.Anything, tt.filter).Return(tt.deleted, nil)
			}

			deleted, err := service.DeleteMany(context.Background(), tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.deleted, deleted)
		})
	}
}

func TestPersonService_Search_NilQuery(t *testing.T) {
	service, repo := newTestPersonService(t)

	repo.On("Search", mock.Anything, &people.PersonQuery{}).Return([]*people.Person{}, nil)

	result, err := service.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
