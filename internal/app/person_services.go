package app

import (
	"context"
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/logger"
)

// personService implements the PersonService interface on top of a PersonRepository
type personService struct {
	personRepo people.PersonRepository
	logger     logger.Logger
}

// NewPersonService creates a new personService instance
func NewPersonService(personRepo people.PersonRepository, logger logger.Logger) (people.PersonService, error) {
	if personRepo == nil {
		return nil, fmt.Errorf("person repository must not be nil")
	}
	return &personService{
		personRepo: personRepo,
		logger:     logger,
	}, nil
}

// Create validates and stores a single person.
// Missing favourite foods are stored as an empty list.
func (s *personService) Create(ctx context.Context, person *people.Person) (*people.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person must not be nil")
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return person, nil
}

// CreateMany validates and stores several people in one insert
func (s *personService) CreateMany(ctx context.Context, persons []*people.Person) ([]*people.Person, error) {
	for i, person := range persons {
		if person == nil {
			return nil, fmt.Errorf("person %d must not be nil", i)
		}
	}
	if err := s.personRepo.CreateMany(ctx, persons); err != nil {
		return nil, fmt.Errorf("failed to create people: %w", err)
	}
	return persons, nil
}

func (s *personService) Find(ctx context.Context, filter *people.PersonFilter) ([]*people.Person, error) {
	if err := validFilter(filter); err != nil {
		return nil, err
	}
	persons, err := s.personRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find people: %w", err)
	}
	return persons, nil
}

func (s *personService) FindOne(ctx context.Context, filter *people.PersonFilter) (*people.Person, error) {
	if err := validFilter(filter); err != nil {
		return nil, err
	}
	person, err := s.personRepo.FindOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find person: %w", err)
	}
	return person, nil
}

func (s *personService) GetByID(ctx context.Context, personID string) (*people.Person, error) {
	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// AddFavoriteFood loads the person, appends food in memory and saves the whole
// person back. A concurrent change in between fails with ErrVersionConflict.
func (s *personService) AddFavoriteFood(ctx context.Context, personID, food string) (*people.Person, error) {
	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to load person: %w", err)
	}

	person.AddFavoriteFood(food)

	if err := s.personRepo.Save(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save person: %w", err)
	}

	s.logger.Info("Added favorite food ", food, " to person ", personID)
	return person, nil
}

// UpdateOne applies the update to the first match in a single atomic step
// and returns the person as it is after the update.
func (s *personService) UpdateOne(ctx context.Context, filter *people.PersonFilter, update *people.PersonUpdate) (*people.Person, error) {
	if err := validFilter(filter); err != nil {
		return nil, err
	}
	person, err := s.personRepo.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}
	return person, nil
}

func (s *personService) DeleteByID(ctx context.Context, personID string) (*people.Person, error) {
	person, err := s.personRepo.DeleteByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete person: %w", err)
	}
	return person, nil
}

// DeleteMany refuses an empty filter, which would wipe the collection
func (s *personService) DeleteMany(ctx context.Context, filter *people.PersonFilter) (int64, error) {
	if filter.IsEmpty() {
		return 0, people.ErrEmptyFilter
	}
	if err := validFilter(filter); err != nil {
		return 0, err
	}
	deleted, err := s.personRepo.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete people: %w", err)
	}
	return deleted, nil
}

func (s *personService) Search(ctx context.Context, query *people.PersonQuery) ([]*people.Person, error) {
	if query == nil {
		query = &people.PersonQuery{}
	}
	persons, err := s.personRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}
	return persons, nil
}

func validFilter(filter *people.PersonFilter) error {
	if filter == nil {
		return nil
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	return nil
}
