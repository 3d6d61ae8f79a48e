//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/infrastructure/persistence/models"
	"github.com/basstop798/mangoose/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestPersonMongoRepository(t *testing.T) {
	PersonRepositoryTestSuite(t, func(t *testing.T) people.PersonRepository {
		return SetupTestMongo(t).PersonRepo
	})
}

func TestPersonMongoRepository_StoresEmptyFoods(t *testing.T) {
	ctx := SetupTestMongo(t)

	person := &people.Person{Name: "John Doe"}
	require.NoError(t, ctx.PersonRepo.Create(context.Background(), person))

	var raw bson.M
	err := ctx.Collection.FindOne(context.Background(), bson.D{{Key: models.DocFieldName, Value: "John Doe"}}).Decode(&raw)
	require.NoError(t, err)

	foods, ok := raw[models.DocFieldFavoriteFoods]
	require.True(t, ok, "favoriteFoods must always be stored")
	assert.IsType(t, bson.A{}, foods)
	assert.Empty(t, foods)
	assert.NotContains(t, raw, models.DocFieldAge)
	assert.EqualValues(t, 0, raw[models.DocFieldVersion])
}

func TestPersonMongoRepository_IDIsObjectID(t *testing.T) {
	ctx := SetupTestMongo(t)

	person := people.NewPerson("Sarah", people.IntPtr(32))
	require.NoError(t, ctx.PersonRepo.Create(context.Background(), person))

	_, err := bson.ObjectIDFromHex(person.ID)
	assert.NoError(t, err)

	_, err = ctx.PersonRepo.GetByID(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, people.ErrPersonNotFound)
}

func TestPersonMongoRepository_SaveDocumentWithoutVersion(t *testing.T) {
	ctx := SetupTestMongo(t)

	id := bson.NewObjectID()
	_, err := ctx.Collection.InsertOne(context.Background(), bson.D{
		{Key: models.DocFieldID, Value: id},
		{Key: models.DocFieldName, Value: "Ali"},
		{Key: models.DocFieldFavoriteFoods, Value: bson.A{"kebab"}},
	})
	require.NoError(t, err)

	person, err := ctx.PersonRepo.GetByID(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, person.Version)

	person.AddFavoriteFood("burritos")
	require.NoError(t, ctx.PersonRepo.Save(context.Background(), person))
	assert.Equal(t, 1, person.Version)

	stale := person.Clone()
	stale.Version = 0
	assert.ErrorIs(t, ctx.PersonRepo.Save(context.Background(), stale), people.ErrVersionConflict)

	stored, err := ctx.PersonRepo.GetByID(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"kebab", "burritos"}, stored.FavoriteFoods)
	assert.Equal(t, 1, stored.Version)
}

func TestNewPersonStore_Mongo(t *testing.T) {
	mctx := SetupTestMongo(t)

	settings := config.DatabaseSettings{
		Type:       config.MongoDbType,
		DSN:        mustTestMongoURI(t),
		DBName:     mctx.Conn.Database.Name(),
		Collection: config.DefaultCollection,
	}

	store, err := NewPersonStore(context.Background(), settings, noopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	person := people.NewPerson("Mary", nil)
	require.NoError(t, store.Repository.Create(context.Background(), person))

	fetched, err := mctx.PersonRepo.GetByID(context.Background(), person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mary", fetched.Name)
}

func mustTestMongoURI(t *testing.T) string {
	t.Helper()

	uri, err := testMongoURI()
	require.NoError(t, err)
	return uri
}
