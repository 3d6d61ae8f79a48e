//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PersonRepositoryTestSuite checks the behaviour every PersonRepository shares.
// newRepo must return an empty repository on every call.
func PersonRepositoryTestSuite(t *testing.T, newRepo func(t *testing.T) people.PersonRepository) {
	t.Helper()

	ctx := context.Background()

	seed := func(t *testing.T, repo people.PersonRepository) []*people.Person {
		t.Helper()

		persons := []*people.Person{
			people.NewPerson("Mary", people.IntPtr(21), "pizza", "burritos"),
			people.NewPerson("Ali", people.IntPtr(28), "kebab", "burritos"),
			people.NewPerson("Sarah", people.IntPtr(32), "burritos"),
			people.NewPerson("Mary", nil),
		}
		require.NoError(t, repo.CreateMany(ctx, persons))
		return persons
	}

	t.Run("create assigns id and defaults", func(t *testing.T) {
		repo := newRepo(t)

		person := &people.Person{Name: "John Doe", Age: people.IntPtr(25)}
		require.NoError(t, repo.Create(ctx, person))
		require.NotEmpty(t, person.ID)

		fetched, err := repo.GetByID(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", fetched.Name)
		assert.Equal(t, 25, *fetched.Age)
		assert.Empty(t, fetched.FavoriteFoods)
		assert.Equal(t, 0, fetched.Version)
	})

	t.Run("create rejects invalid person", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Create(ctx, &people.Person{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("create many inserts nothing when one person is invalid", func(t *testing.T) {
		repo := newRepo(t)

		persons := testutil.FakePeople(2)
		persons = append(persons, &people.Person{Name: ""})

		err := repo.CreateMany(ctx, persons)
		assert.Error(t, err)
		for _, person := range persons {
			assert.Empty(t, person.ID)
		}

		all, err := repo.Find(ctx, &people.PersonFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("create many keeps food order", func(t *testing.T) {
		repo := newRepo(t)
		persons := seed(t, repo)

		for _, p := range persons {
			assert.NotEmpty(t, p.ID)
		}

		fetched, err := repo.GetByID(ctx, persons[0].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"pizza", "burritos"}, fetched.FavoriteFoods)
	})

	t.Run("find by name", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.Find(ctx, &people.PersonFilter{Name: "Mary"})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		for _, p := range found {
			assert.Equal(t, "Mary", p.Name)
		}
	})

	t.Run("find with no match returns empty list", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.Find(ctx, &people.PersonFilter{Name: "Nobody"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("find one by favourite food", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.FindOne(ctx, &people.PersonFilter{FavoriteFood: "kebab"})
		require.NoError(t, err)
		assert.Equal(t, "Ali", found.Name)
	})

	t.Run("find one without match", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		_, err := repo.FindOne(ctx, &people.PersonFilter{FavoriteFood: "sushi"})
		assert.ErrorIs(t, err, people.ErrPersonNotFound)
	})

	t.Run("get by malformed id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, people.ErrInvalidID)
	})

	t.Run("load mutate save bumps version", func(t *testing.T) {
		repo := newRepo(t)
		persons := seed(t, repo)

		loaded, err := repo.GetByID(ctx, persons[2].ID)
		require.NoError(t, err)

		loaded.AddFavoriteFood("hamburger")
		require.NoError(t, repo.Save(ctx, loaded))
		assert.Equal(t, 1, loaded.Version)

		fetched, err := repo.GetByID(ctx, persons[2].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"burritos", "hamburger"}, fetched.FavoriteFoods)
		assert.Equal(t, 1, fetched.Version)
	})

	t.Run("stale save conflicts", func(t *testing.T) {
		repo := newRepo(t)
		persons := seed(t, repo)

		first, err := repo.GetByID(ctx, persons[1].ID)
		require.NoError(t, err)
		second := first.Clone()

		first.AddFavoriteFood("falafel")
		require.NoError(t, repo.Save(ctx, first))

		second.AddFavoriteFood("hummus")
		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, people.ErrVersionConflict)

		fetched, err := repo.GetByID(ctx, persons[1].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"kebab", "burritos", "falafel"}, fetched.FavoriteFoods)
	})

	t.Run("save of a removed person", func(t *testing.T) {
		repo := newRepo(t)
		persons := seed(t, repo)

		loaded, err := repo.GetByID(ctx, persons[2].ID)
		require.NoError(t, err)
		_, err = repo.DeleteByID(ctx, persons[2].ID)
		require.NoError(t, err)

		err = repo.Save(ctx, loaded)
		assert.ErrorIs(t, err, people.ErrPersonNotFound)
	})

	t.Run("find one and update returns the new document", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		updated, err := repo.FindOneAndUpdate(ctx,
			&people.PersonFilter{Name: "Ali"},
			&people.PersonUpdate{Age: people.IntPtr(20)})
		require.NoError(t, err)
		assert.Equal(t, "Ali", updated.Name)
		assert.Equal(t, 20, *updated.Age)
		assert.Equal(t, []string{"kebab", "burritos"}, updated.FavoriteFoods)
	})

	t.Run("find one and update replaces foods", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		updated, err := repo.FindOneAndUpdate(ctx,
			&people.PersonFilter{Name: "Sarah"},
			&people.PersonUpdate{FavoriteFoods: []string{"tacos", "ramen"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"tacos", "ramen"}, updated.FavoriteFoods)
		assert.Equal(t, 32, *updated.Age)
	})

	t.Run("find one and update without match", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		_, err := repo.FindOneAndUpdate(ctx,
			&people.PersonFilter{Name: "Nobody"},
			&people.PersonUpdate{Age: people.IntPtr(20)})
		assert.ErrorIs(t, err, people.ErrPersonNotFound)
	})

	t.Run("find one and update rejects empty update", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindOneAndUpdate(ctx, &people.PersonFilter{Name: "Ali"}, &people.PersonUpdate{})
		assert.ErrorIs(t, err, people.ErrEmptyUpdate)
	})

	t.Run("delete by id returns removed person", func(t *testing.T) {
		repo := newRepo(t)
		persons := seed(t, repo)

		removed, err := repo.DeleteByID(ctx, persons[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "Ali", removed.Name)
		assert.Equal(t, []string{"kebab", "burritos"}, removed.FavoriteFoods)

		_, err = repo.GetByID(ctx, persons[1].ID)
		assert.ErrorIs(t, err, people.ErrPersonNotFound)

		_, err = repo.DeleteByID(ctx, persons[1].ID)
		assert.ErrorIs(t, err, people.ErrPersonNotFound)
	})

	t.Run("delete many reports count", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		deleted, err := repo.DeleteMany(ctx, &people.PersonFilter{Name: "Mary"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		deleted, err = repo.DeleteMany(ctx, &people.PersonFilter{Name: "Mary"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)

		rest, err := repo.Find(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("search filters sorts limits and hides age", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		result, err := repo.Search(ctx, &people.PersonQuery{
			Filter:  people.PersonFilter{FavoriteFood: "burritos"},
			SortBy:  people.FieldName,
			Limit:   2,
			Exclude: []string{people.FieldAge},
		})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Ali", result[0].Name)
		assert.Equal(t, "Mary", result[1].Name)
		for _, p := range result {
			assert.Nil(t, p.Age)
			assert.Contains(t, p.FavoriteFoods, "burritos")
		}
	})

	t.Run("search descending with offset", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		result, err := repo.Search(ctx, &people.PersonQuery{
			Filter:    people.PersonFilter{FavoriteFood: "burritos"},
			SortBy:    people.FieldAge,
			SortOrder: people.SortDesc,
			Offset:    1,
			Limit:     2,
		})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Ali", result[0].Name)
		assert.Equal(t, "Mary", result[1].Name)
		assert.Equal(t, 21, *result[1].Age)
	})

	t.Run("search hides favourite foods", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		result, err := repo.Search(ctx, &people.PersonQuery{
			Filter:  people.PersonFilter{Name: "Sarah"},
			Exclude: []string{people.FieldFavoriteFoods},
		})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Nil(t, result[0].FavoriteFoods)
		assert.Equal(t, 32, *result[0].Age)
	})

	t.Run("search rejects invalid query", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Search(ctx, &people.PersonQuery{Limit: -1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid query parameters")

		_, err = repo.Search(ctx, &people.PersonQuery{SortBy: "favoriteFoods"})
		assert.Error(t, err)
	})
}
