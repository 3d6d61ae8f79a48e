//go:build unit
// +build unit

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/basstop798/mangoose/internal/domain/people"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd(t *testing.T, register func(*cobra.Command), args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseFilter(t *testing.T) {
	cmd := newFlagCmd(t, addFilterFlags, "--name", "Mary", "--food", "burritos")

	filter, err := parseFilter(cmd)
	require.NoError(t, err)
	assert.Equal(t, &people.PersonFilter{Name: "Mary", FavoriteFood: "burritos"}, filter)
}

func TestParseNewPerson(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantAge *int
		foods   []string
		wantErr bool
	}{
		{"with age and foods", []string{"--name", "John Doe", "--age", "25", "--foods", "pizza,pasta"}, people.IntPtr(25), []string{"pizza", "pasta"}, false},
		{"age omitted", []string{"--name", "Sarah"}, nil, []string{}, false},
		{"explicit zero age", []string{"--name", "Baby", "--age", "0"}, people.IntPtr(0), []string{}, false},
		{"missing name", []string{"--age", "25"}, nil, nil, true},
		{"negative age", []string{"--name", "Ali", "--age", "-1"}, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCmd(t, addPersonFlags, tt.args...)

			person, err := parseNewPerson(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAge, person.Age)
			assert.Equal(t, tt.foods, person.FavoriteFoods)
			assert.Empty(t, person.ID)
		})
	}
}

func TestParseUpdate(t *testing.T) {
	t.Run("only given fields are set", func(t *testing.T) {
		cmd := newFlagCmd(t, addUpdateFlags, "--set-age", "20")

		update, err := parseUpdate(cmd)
		require.NoError(t, err)
		assert.Nil(t, update.Name)
		assert.Nil(t, update.FavoriteFoods)
		require.NotNil(t, update.Age)
		assert.Equal(t, 20, *update.Age)
	})

	t.Run("replace foods", func(t *testing.T) {
		cmd := newFlagCmd(t, addUpdateFlags, "--set-name", "Alia", "--set-foods", "tacos,ramen")

		update, err := parseUpdate(cmd)
		require.NoError(t, err)
		assert.Equal(t, "Alia", *update.Name)
		assert.Equal(t, []string{"tacos", "ramen"}, update.FavoriteFoods)
	})

	t.Run("nothing to update", func(t *testing.T) {
		cmd := newFlagCmd(t, addUpdateFlags)

		_, err := parseUpdate(cmd)
		assert.ErrorIs(t, err, people.ErrEmptyUpdate)
	})
}

func TestParseQuery(t *testing.T) {
	t.Run("chained query", func(t *testing.T) {
		cmd := newFlagCmd(t, addQueryFlags,
			"--food", "burritos", "--sort-by", "name", "--limit", "2", "--exclude", "age")

		query, err := parseQuery(cmd)
		require.NoError(t, err)
		assert.Equal(t, "burritos", query.Filter.FavoriteFood)
		assert.Equal(t, people.FieldName, query.SortBy)
		assert.Equal(t, people.SortAsc, query.SortOrder)
		assert.Equal(t, 2, query.Limit)
		assert.Equal(t, []string{people.FieldAge}, query.Exclude)
	})

	t.Run("invalid sort field", func(t *testing.T) {
		cmd := newFlagCmd(t, addQueryFlags, "--sort-by", "favoriteFoods")

		_, err := parseQuery(cmd)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid query parameters")
	})

	t.Run("invalid exclude", func(t *testing.T) {
		cmd := newFlagCmd(t, addQueryFlags, "--exclude", "name")

		_, err := parseQuery(cmd)
		assert.Error(t, err)
	})
}

func TestReadPeopleFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := write("people.json", `[
			{"name": "Mary", "age": 22, "favoriteFoods": ["burritos", "salad"]},
			{"id": "ignored", "name": "Sarah", "__v": 3}
		]`)

		persons, err := readPeopleFile(path)
		require.NoError(t, err)
		require.Len(t, persons, 2)
		assert.Equal(t, 22, *persons[0].Age)
		assert.Equal(t, []string{"burritos", "salad"}, persons[0].FavoriteFoods)
		assert.Empty(t, persons[1].ID)
		assert.Equal(t, 0, persons[1].Version)
	})

	tests := []struct {
		name    string
		content string
	}{
		{"empty array", `[]`},
		{"not json", `name: Mary`},
		{"null entry", `[null]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readPeopleFile(write(tt.name+".json", tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing path", func(t *testing.T) {
		_, err := readPeopleFile("")
		assert.Error(t, err)

		_, err = readPeopleFile(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}

func TestRequireString(t *testing.T) {
	register := func(cmd *cobra.Command) {
		cmd.Flags().StringP(flagID, "", "", "Person id")
	}

	_, err := requireString(newFlagCmd(t, register), flagID)
	assert.Error(t, err)

	id, err := requireString(newFlagCmd(t, register, "--id", "abc"), flagID)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
