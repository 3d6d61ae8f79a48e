package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/basstop798/mangoose/internal/domain/people"

	"github.com/spf13/cobra"
)

// Flag names shared by the person commands
const (
	flagID        = "id"
	flagName      = "name"
	flagAge       = "age"
	flagFoods     = "foods"
	flagFood      = "food"
	flagFile      = "file"
	flagSetName   = "set-name"
	flagSetAge    = "set-age"
	flagSetFoods  = "set-foods"
	flagSortBy    = "sort-by"
	flagSortOrder = "sort-order"
	flagLimit     = "limit"
	flagOffset    = "offset"
	flagExclude   = "exclude"
	flagPersonID  = "person-id"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "", "", "Match people with exactly this name")
	cmd.Flags().StringP(flagFood, "", "", "Match people who list this favorite food")
}

func parseFilter(cmd *cobra.Command) (*people.PersonFilter, error) {
	name, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagName, err)
	}
	food, err := cmd.Flags().GetString(flagFood)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagFood, err)
	}
	return &people.PersonFilter{Name: name, FavoriteFood: food}, nil
}

func addPersonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "", "", "Name of the person (required)")
	cmd.Flags().IntP(flagAge, "", 0, "Age of the person, omitted when not set")
	cmd.Flags().StringSliceP(flagFoods, "", nil, "Comma separated favorite foods")
}

// parseNewPerson builds an unsaved person; --age is only used when given
func parseNewPerson(cmd *cobra.Command) (*people.Person, error) {
	name, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagName, err)
	}
	foods, err := cmd.Flags().GetStringSlice(flagFoods)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagFoods, err)
	}

	var age *int
	if cmd.Flags().Changed(flagAge) {
		v, err := cmd.Flags().GetInt(flagAge)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagAge, err)
		}
		age = people.IntPtr(v)
	}

	person := people.NewPerson(name, age, foods...)
	if err := person.Validate(); err != nil {
		return nil, err
	}
	return person, nil
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagSetName, "", "", "New name")
	cmd.Flags().IntP(flagSetAge, "", 0, "New age")
	cmd.Flags().StringSliceP(flagSetFoods, "", nil, "New comma separated favorite foods, replaces the list")
}

// parseUpdate collects the fields whose --set-* flag was given
func parseUpdate(cmd *cobra.Command) (*people.PersonUpdate, error) {
	update := &people.PersonUpdate{}

	if cmd.Flags().Changed(flagSetName) {
		v, err := cmd.Flags().GetString(flagSetName)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagSetName, err)
		}
		update.Name = people.StringPtr(v)
	}
	if cmd.Flags().Changed(flagSetAge) {
		v, err := cmd.Flags().GetInt(flagSetAge)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagSetAge, err)
		}
		update.Age = people.IntPtr(v)
	}
	if cmd.Flags().Changed(flagSetFoods) {
		v, err := cmd.Flags().GetStringSlice(flagSetFoods)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagSetFoods, err)
		}
		update.FavoriteFoods = append([]string{}, v...)
	}

	if err := update.Validate(); err != nil {
		return nil, err
	}
	return update, nil
}

func addQueryFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
	cmd.Flags().StringP(flagSortBy, "", "", "Sort field: id, name or age")
	cmd.Flags().StringP(flagSortOrder, "", people.SortAsc, "Sort order: asc or desc")
	cmd.Flags().IntP(flagLimit, "", 0, "Maximum number of results, 0 for no limit")
	cmd.Flags().IntP(flagOffset, "", 0, "Number of results to skip")
	cmd.Flags().StringSliceP(flagExclude, "", nil, "Fields to hide: age, favoriteFoods")
}

func parseQuery(cmd *cobra.Command) (*people.PersonQuery, error) {
	filter, err := parseFilter(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	sortBy, err := flags.GetString(flagSortBy)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagSortBy, err)
	}
	sortOrder, err := flags.GetString(flagSortOrder)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagSortOrder, err)
	}
	limit, err := flags.GetInt(flagLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagLimit, err)
	}
	offset, err := flags.GetInt(flagOffset)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagOffset, err)
	}
	exclude, err := flags.GetStringSlice(flagExclude)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", flagExclude, err)
	}

	query := &people.PersonQuery{
		Filter:    *filter,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    offset,
		Exclude:   exclude,
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}
	return query, nil
}

// readPeopleFile reads a JSON array of people
func readPeopleFile(path string) ([]*people.Person, error) {
	if path == "" {
		return nil, fmt.Errorf("a --%s with a JSON array of people is required", flagFile)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var persons []*people.Person
	if err := json.Unmarshal(data, &persons); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("%s holds no people", path)
	}
	for i, person := range persons {
		if person == nil {
			return nil, fmt.Errorf("%s: entry %d is null", path, i)
		}
		person.ID = ""
		person.Version = 0
	}
	return persons, nil
}

func requireString(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if v == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}
