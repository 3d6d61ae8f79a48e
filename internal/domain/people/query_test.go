//go:build unit
// +build unit

package people

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonFilter_IsEmpty(t *testing.T) {
	var nilFilter *PersonFilter

	assert.True(t, nilFilter.IsEmpty())
	assert.True(t, (&PersonFilter{}).IsEmpty())
	assert.False(t, (&PersonFilter{Name: "Mary"}).IsEmpty())
	assert.False(t, (&PersonFilter{FavoriteFood: "burritos"}).IsEmpty())
}

func TestPersonUpdateValidation(t *testing.T) {
	tests := []struct {
		name      string
		update    *PersonUpdate
		wantErr   bool
		wantEmpty bool
	}{
		{name: "age only", update: &PersonUpdate{Age: IntPtr(20)}},
		{name: "name only", update: &PersonUpdate{Name: StringPtr("Alice")}},
		{name: "clear foods", update: &PersonUpdate{FavoriteFoods: []string{}}},
		{name: "nil update", update: nil, wantErr: true, wantEmpty: true},
		{name: "no fields", update: &PersonUpdate{}, wantErr: true, wantEmpty: true},
		{name: "blank name", update: &PersonUpdate{Name: StringPtr("")}, wantErr: true},
		{name: "age out of range", update: &PersonUpdate{Age: IntPtr(151)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantEmpty, errors.Is(err, ErrEmptyUpdate))
		})
	}
}

func TestPersonUpdate_Apply(t *testing.T) {
	person := NewPerson("Ali", IntPtr(30), "couscous", "burritos")

	update := &PersonUpdate{Age: IntPtr(20)}
	update.Apply(person)

	assert.Equal(t, "Ali", person.Name)
	assert.Equal(t, 20, *person.Age)
	assert.Equal(t, []string{"couscous", "burritos"}, person.FavoriteFoods)

	foods := []string{"tagine"}
	(&PersonUpdate{Name: StringPtr("Alia"), FavoriteFoods: foods}).Apply(person)
	foods[0] = "changed"

	assert.Equal(t, "Alia", person.Name)
	assert.Equal(t, []string{"tagine"}, person.FavoriteFoods)
}

func TestPersonQueryValidation(t *testing.T) {
	tests := []struct {
		name    string
		query   *PersonQuery
		wantErr bool
	}{
		{
			name: "burrito chain",
			query: &PersonQuery{
				Filter:  PersonFilter{FavoriteFood: "burritos"},
				SortBy:  FieldName,
				Limit:   2,
				Exclude: []string{FieldAge},
			},
		},
		{name: "empty query", query: &PersonQuery{}},
		{name: "descending by age", query: &PersonQuery{SortBy: FieldAge, SortOrder: SortDesc, Offset: 1}},
		{name: "unknown sort field", query: &PersonQuery{SortBy: "favoriteFoods"}, wantErr: true},
		{name: "unknown sort order", query: &PersonQuery{SortBy: FieldName, SortOrder: "up"}, wantErr: true},
		{name: "negative limit", query: &PersonQuery{Limit: -1}, wantErr: true},
		{name: "negative offset", query: &PersonQuery{Offset: -1}, wantErr: true},
		{name: "cannot exclude name", query: &PersonQuery{Exclude: []string{FieldName}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPersonQuery_Helpers(t *testing.T) {
	query := &PersonQuery{SortOrder: SortDesc, Exclude: []string{FieldAge}}

	assert.True(t, query.Descending())
	assert.True(t, query.Excludes(FieldAge))
	assert.False(t, query.Excludes(FieldFavoriteFoods))
	assert.False(t, (&PersonQuery{}).Descending())
}
