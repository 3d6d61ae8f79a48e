package people

import (
	"context"
)

// PersonRepository defines the interface for Person-related storage operations
type PersonRepository interface {
	// Create inserts a single person and assigns its ID
	Create(ctx context.Context, person *Person) error
	// CreateMany inserts several people; nothing is inserted if any of them is invalid
	CreateMany(ctx context.Context, persons []*Person) error
	// Find returns every person matching the filter
	Find(ctx context.Context, filter *PersonFilter) ([]*Person, error)
	// FindOne returns the first person matching the filter or ErrPersonNotFound
	FindOne(ctx context.Context, filter *PersonFilter) (*Person, error)
	// GetByID returns the person with the given ID
	GetByID(ctx context.Context, personID string) (*Person, error)
	// Save replaces a loaded person, failing with ErrVersionConflict when it changed in between
	Save(ctx context.Context, person *Person) error
	// FindOneAndUpdate atomically updates the first match and returns it after the update
	FindOneAndUpdate(ctx context.Context, filter *PersonFilter, update *PersonUpdate) (*Person, error)
	// DeleteByID removes a person and returns what was removed
	DeleteByID(ctx context.Context, personID string) (*Person, error)
	// DeleteMany removes every match and returns how many were removed
	DeleteMany(ctx context.Context, filter *PersonFilter) (int64, error)
	// Search runs a filter, sort, skip, limit and projection chain
	Search(ctx context.Context, query *PersonQuery) ([]*Person, error)
}

// PersonService defines the operations offered on stored people.
type PersonService interface {
	// Create validates and stores a single person.
	Create(ctx context.Context, person *Person) (*Person, error)

	// CreateMany validates and stores several people.
	CreateMany(ctx context.Context, persons []*Person) ([]*Person, error)

	// Find retrieves all people matching the filter.
	Find(ctx context.Context, filter *PersonFilter) ([]*Person, error)

	// FindOne retrieves a single person matching the filter.
	FindOne(ctx context.Context, filter *PersonFilter) (*Person, error)

	// GetByID retrieves a person by ID.
	GetByID(ctx context.Context, personID string) (*Person, error)

	// AddFavoriteFood loads a person, appends the food and saves the person again.
	AddFavoriteFood(ctx context.Context, personID, food string) (*Person, error)

	// UpdateOne atomically applies the update to the first match and returns the updated person.
	UpdateOne(ctx context.Context, filter *PersonFilter, update *PersonUpdate) (*Person, error)

	// DeleteByID deletes a person by ID and returns the deleted person.
	DeleteByID(ctx context.Context, personID string) (*Person, error)

	// DeleteMany deletes all people matching a non-empty filter.
	DeleteMany(ctx context.Context, filter *PersonFilter) (int64, error)

	// Search runs a chained query.
	Search(ctx context.Context, query *PersonQuery) ([]*Person, error)
}
