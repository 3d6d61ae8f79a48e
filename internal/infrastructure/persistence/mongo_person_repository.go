package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/infrastructure/persistence/models"
	"github.com/basstop798/mangoose/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoPersonRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoPersonRepository creates a MongoDB-based PersonRepository implementation
// and makes sure the collection is indexed on name and favouriteFoods.
func NewMongoPersonRepository(ctx context.Context, collection *mongo.Collection, logger logger.Logger) (people.PersonRepository, error) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: models.DocFieldName, Value: 1}}},
		{Keys: bson.D{{Key: models.DocFieldFavoriteFoods, Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create person indexes: %w", err)
	}

	return &mongoPersonRepository{
		collection: collection,
		logger:     logger,
	}, nil
}

func filterDocument(filter *people.PersonFilter) bson.D {
	doc := bson.D{}
	if filter == nil {
		return doc
	}
	if filter.Name != "" {
		doc = append(doc, bson.E{Key: models.DocFieldName, Value: filter.Name})
	}
	// equality against an array field matches any element
	if filter.FavoriteFood != "" {
		doc = append(doc, bson.E{Key: models.DocFieldFavoriteFoods, Value: filter.FavoriteFood})
	}
	return doc
}

func idFilter(personID string) (bson.D, error) {
	id, err := models.ParseObjectID(personID)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: models.DocFieldID, Value: id}}, nil
}

// versionFilter matches the loaded version. Documents written without __v decode as version 0.
func versionFilter(version int) bson.E {
	if version == 0 {
		return bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: models.DocFieldVersion, Value: 0}},
			bson.D{{Key: models.DocFieldVersion, Value: bson.D{{Key: "$exists", Value: false}}}},
		}}
	}
	return bson.E{Key: models.DocFieldVersion, Value: version}
}

func newDocument(person *people.Person) (*models.PersonDocument, error) {
	if err := person.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	person.EnsureDefaults()

	doc := &models.PersonDocument{}
	if err := doc.FromDomain(person); err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}
	return doc, nil
}

func (r *mongoPersonRepository) Create(ctx context.Context, person *people.Person) error {
	doc, err := newDocument(person)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	person.ID = doc.ID.Hex()
	r.logger.Info("Created person with id ", person.ID)
	return nil
}

func (r *mongoPersonRepository) CreateMany(ctx context.Context, persons []*people.Person) error {
	if len(persons) == 0 {
		return nil
	}

	docs := make([]*models.PersonDocument, 0, len(persons))
	for i, person := range persons {
		doc, err := newDocument(person)
		if err != nil {
			return fmt.Errorf("person %d: %w", i, err)
		}
		docs = append(docs, doc)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create people: %w", err)
	}

	for i, doc := range docs {
		persons[i].ID = doc.ID.Hex()
	}
	r.logger.Info("Created ", len(docs), " people")
	return nil
}

func (r *mongoPersonRepository) Find(ctx context.Context, filter *people.PersonFilter) ([]*people.Person, error) {
	cursor, err := r.collection.Find(ctx, filterDocument(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	return decodeAll(ctx, cursor)
}

func (r *mongoPersonRepository) FindOne(ctx context.Context, filter *people.PersonFilter) (*people.Person, error) {
	return decodeOne(r.collection.FindOne(ctx, filterDocument(filter)), "no person matches the filter")
}

func (r *mongoPersonRepository) GetByID(ctx context.Context, personID string) (*people.Person, error) {
	filter, err := idFilter(personID)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.collection.FindOne(ctx, filter), "person with ID "+personID)
}

func (r *mongoPersonRepository) Save(ctx context.Context, person *people.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if person.ID == "" {
		return fmt.Errorf("%w: person has not been stored yet", people.ErrInvalidID)
	}
	person.EnsureDefaults()

	byID, err := idFilter(person.ID)
	if err != nil {
		return err
	}

	doc := &models.PersonDocument{}
	if err := doc.FromDomain(person); err != nil {
		return err
	}
	loadedVersion := person.Version
	doc.Version = loadedVersion + 1

	filter := append(bson.D{}, byID...)
	filter = append(filter, versionFilter(loadedVersion))

	result, err := r.collection.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("failed to save person: %w", err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, byID)
		if err != nil {
			return fmt.Errorf("failed to check person: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: person with ID %s", people.ErrPersonNotFound, person.ID)
		}
		return fmt.Errorf("%w: person with ID %s at version %d", people.ErrVersionConflict, person.ID, loadedVersion)
	}

	person.Version = doc.Version
	r.logger.Info("Saved person with id ", person.ID)
	return nil
}

func (r *mongoPersonRepository) FindOneAndUpdate(ctx context.Context, filter *people.PersonFilter, update *people.PersonUpdate) (*people.Person, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	set := bson.D{}
	if update.Name != nil {
		set = append(set, bson.E{Key: models.DocFieldName, Value: *update.Name})
	}
	if update.Age != nil {
		set = append(set, bson.E{Key: models.DocFieldAge, Value: *update.Age})
	}
	if update.FavoriteFoods != nil {
		set = append(set, bson.E{Key: models.DocFieldFavoriteFoods, Value: update.FavoriteFoods})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := r.collection.FindOneAndUpdate(ctx, filterDocument(filter), bson.D{{Key: "$set", Value: set}}, opts)

	person, err := decodeOne(result, "no person matches the filter")
	if err != nil {
		return nil, err
	}

	r.logger.Info("Updated person with id ", person.ID)
	return person, nil
}

func (r *mongoPersonRepository) DeleteByID(ctx context.Context, personID string) (*people.Person, error) {
	filter, err := idFilter(personID)
	if err != nil {
		return nil, err
	}

	person, err := decodeOne(r.collection.FindOneAndDelete(ctx, filter), "person with ID "+personID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Deleted person with id ", personID)
	return person, nil
}

func (r *mongoPersonRepository) DeleteMany(ctx context.Context, filter *people.PersonFilter) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, filterDocument(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to delete people: %w", err)
	}

	r.logger.Info("Deleted ", result.DeletedCount, " people")
	return result.DeletedCount, nil
}

func (r *mongoPersonRepository) Search(ctx context.Context, query *people.PersonQuery) ([]*people.Person, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	opts := options.Find()

	if query.SortBy != "" {
		direction := 1
		if query.Descending() {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: documentField(query.SortBy), Value: direction}})
	}
	if query.Offset > 0 {
		opts.SetSkip(int64(query.Offset))
	}
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}
	if len(query.Exclude) > 0 {
		projection := bson.D{}
		for _, field := range query.Exclude {
			projection = append(projection, bson.E{Key: documentField(field), Value: 0})
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.collection.Find(ctx, filterDocument(&query.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}
	return decodeAll(ctx, cursor)
}

func documentField(field string) string {
	switch field {
	case people.FieldID:
		return models.DocFieldID
	case people.FieldName:
		return models.DocFieldName
	case people.FieldAge:
		return models.DocFieldAge
	case people.FieldFavoriteFoods:
		return models.DocFieldFavoriteFoods
	default:
		return field
	}
}

func decodeOne(result *mongo.SingleResult, what string) (*people.Person, error) {
	var doc models.PersonDocument
	if err := result.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", people.ErrPersonNotFound, what)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}
	return doc.ToDomain(), nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*people.Person, error) {
	var docs []models.PersonDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode people: %w", err)
	}

	persons := make([]*people.Person, len(docs))
	for i := range docs {
		persons[i] = docs[i].ToDomain()
	}
	return persons, nil
}
