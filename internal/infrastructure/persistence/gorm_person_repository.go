package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/infrastructure/persistence/models"
	"github.com/basstop798/mangoose/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const foodsAssociation = "FavoriteFoods"

type gormPersonRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPersonRepository creates a new GORM-based PersonRepository implementation.
// Favourite foods live in a child table ordered by position.
func NewGormPersonRepository(db *gorm.DB, logger logger.Logger) (people.PersonRepository, error) {
	return &gormPersonRepository{
		db:     db,
		logger: logger,
	}, nil
}

func preloadFoods(db *gorm.DB) *gorm.DB {
	return db.Preload(foodsAssociation, func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// applyFilter narrows query to the filter; base is used to build the food sub-query.
func applyFilter(query, base *gorm.DB, filter *people.PersonFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.FavoriteFood != "" {
		foods := base.Model(&models.PersonFoodModel{}).Select("person_id").Where("food = ?", filter.FavoriteFood)
		query = query.Where("id IN (?)", foods)
	}
	return query
}

func parsePersonID(personID string) error {
	if _, err := uuid.Parse(personID); err != nil {
		return fmt.Errorf("%w: %q: %v", people.ErrInvalidID, personID, err)
	}
	return nil
}

// checkNew validates an unsaved person; ids are assigned only once a whole batch passed
func checkNew(person *people.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if person.ID != "" {
		return parsePersonID(person.ID)
	}
	return nil
}

func newModel(person *people.Person) *models.PersonModel {
	person.EnsureDefaults()
	if person.ID == "" {
		person.ID = uuid.NewString()
	}

	model := &models.PersonModel{}
	model.FromDomain(person)
	return model
}

func (r *gormPersonRepository) Create(ctx context.Context, person *people.Person) error {
	if err := checkNew(person); err != nil {
		return err
	}

	model := newModel(person)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	r.logger.Info("Created person with id ", person.ID)
	return nil
}

func (r *gormPersonRepository) CreateMany(ctx context.Context, persons []*people.Person) error {
	if len(persons) == 0 {
		return nil
	}

	for i, person := range persons {
		if err := checkNew(person); err != nil {
			return fmt.Errorf("person %d: %w", i, err)
		}
	}

	modelList := make([]*models.PersonModel, 0, len(persons))
	for _, person := range persons {
		modelList = append(modelList, newModel(person))
	}

	if err := r.db.WithContext(ctx).Create(&modelList).Error; err != nil {
		return fmt.Errorf("failed to create people: %w", err)
	}

	r.logger.Info("Created ", len(modelList), " people")
	return nil
}

func (r *gormPersonRepository) Find(ctx context.Context, filter *people.PersonFilter) ([]*people.Person, error) {
	base := r.db.WithContext(ctx)

	var modelList []*models.PersonModel
	query := applyFilter(base.Model(&models.PersonModel{}), base, filter)
	if err := preloadFoods(query).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	return toDomainList(modelList, true), nil
}

func (r *gormPersonRepository) FindOne(ctx context.Context, filter *people.PersonFilter) (*people.Person, error) {
	base := r.db.WithContext(ctx)

	var model models.PersonModel
	query := applyFilter(base.Model(&models.PersonModel{}), base, filter)
	if err := preloadFoods(query).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no person matches the filter", people.ErrPersonNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	return model.ToDomain(true), nil
}

func (r *gormPersonRepository) GetByID(ctx context.Context, personID string) (*people.Person, error) {
	if err := parsePersonID(personID); err != nil {
		return nil, err
	}

	model, err := loadPerson(r.db.WithContext(ctx), personID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(true), nil
}

func loadPerson(db *gorm.DB, personID string) (*models.PersonModel, error) {
	var model models.PersonModel
	if err := preloadFoods(db).Where("id = ?", personID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: person with ID %s", people.ErrPersonNotFound, personID)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}
	return &model, nil
}

func replaceFoods(tx *gorm.DB, personID string, foods []string) error {
	if err := tx.Where("person_id = ?", personID).Delete(&models.PersonFoodModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear favorite foods: %w", err)
	}
	if len(foods) == 0 {
		return nil
	}

	rows := models.FoodModels(personID, foods)
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to store favorite foods: %w", err)
	}
	return nil
}

func (r *gormPersonRepository) Save(ctx context.Context, person *people.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := parsePersonID(person.ID); err != nil {
		return err
	}
	person.EnsureDefaults()

	loadedVersion := person.Version

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PersonModel{}).
			Where("id = ? AND version = ?", person.ID, loadedVersion).
			Updates(map[string]interface{}{
				"name":    person.Name,
				"age":     person.Age,
				"version": loadedVersion + 1,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to save person: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.PersonModel{}).Where("id = ?", person.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check person: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("%w: person with ID %s", people.ErrPersonNotFound, person.ID)
			}
			return fmt.Errorf("%w: person with ID %s at version %d", people.ErrVersionConflict, person.ID, loadedVersion)
		}

		return replaceFoods(tx, person.ID, person.FavoriteFoods)
	})
	if err != nil {
		return err
	}

	person.Version = loadedVersion + 1
	r.logger.Info("Saved person with id ", person.ID)
	return nil
}

func (r *gormPersonRepository) FindOneAndUpdate(ctx context.Context, filter *people.PersonFilter, update *people.PersonUpdate) (*people.Person, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	var updated *models.PersonModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.PersonModel
		query := applyFilter(tx.Model(&models.PersonModel{}), tx, filter)
		if err := query.Select("id").Take(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no person matches the filter", people.ErrPersonNotFound)
			}
			return fmt.Errorf("failed to fetch person: %w", err)
		}

		columns := map[string]interface{}{}
		if update.Name != nil {
			columns["name"] = *update.Name
		}
		if update.Age != nil {
			columns["age"] = *update.Age
		}
		if len(columns) > 0 {
			if err := tx.Model(&models.PersonModel{}).Where("id = ?", target.ID).Updates(columns).Error; err != nil {
				return fmt.Errorf("failed to update person: %w", err)
			}
		}
		if update.FavoriteFoods != nil {
			if err := replaceFoods(tx, target.ID, update.FavoriteFoods); err != nil {
				return err
			}
		}

		model, err := loadPerson(tx, target.ID)
		if err != nil {
			return err
		}
		updated = model
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Updated person with id ", updated.ID)
	return updated.ToDomain(true), nil
}

func (r *gormPersonRepository) DeleteByID(ctx context.Context, personID string) (*people.Person, error) {
	if err := parsePersonID(personID); err != nil {
		return nil, err
	}

	var deleted *models.PersonModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := loadPerson(tx, personID)
		if err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", personID).Delete(&models.PersonFoodModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorite foods: %w", err)
		}
		if err := tx.Where("id = ?", personID).Delete(&models.PersonModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		deleted = model
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Deleted person with id ", personID)
	return deleted.ToDomain(true), nil
}

func (r *gormPersonRepository) DeleteMany(ctx context.Context, filter *people.PersonFilter) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		query := applyFilter(tx.Model(&models.PersonModel{}), tx, filter)
		if err := query.Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to select people: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("person_id IN ?", ids).Delete(&models.PersonFoodModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorite foods: %w", err)
		}
		result := tx.Where("id IN ?", ids).Delete(&models.PersonModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete people: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Deleted ", deleted, " people")
	return deleted, nil
}

func (r *gormPersonRepository) Search(ctx context.Context, query *people.PersonQuery) ([]*people.Person, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	base := r.db.WithContext(ctx)
	dbQuery := applyFilter(base.Model(&models.PersonModel{}), base, &query.Filter)

	if query.SortBy != "" {
		dbQuery = dbQuery.Order(clause.OrderByColumn{
			Column: clause.Column{Name: query.SortBy},
			Desc:   query.Descending(),
		})
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Excludes(people.FieldAge) {
		dbQuery = dbQuery.Omit("age")
	}

	withFoods := !query.Excludes(people.FieldFavoriteFoods)
	if withFoods {
		dbQuery = preloadFoods(dbQuery)
	}

	var modelList []*models.PersonModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}

	return toDomainList(modelList, withFoods), nil
}

func toDomainList(modelList []*models.PersonModel, withFoods bool) []*people.Person {
	persons := make([]*people.Person, len(modelList))
	for i, model := range modelList {
		persons[i] = model.ToDomain(withFoods)
	}
	return persons
}
