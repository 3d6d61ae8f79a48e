package commands

import (
	"context"
	"fmt"

	"github.com/basstop798/mangoose/internal/app"

	"github.com/spf13/cobra"
)

// PersonCommandHandler encapsulates logic for handling person operations via CLI.
// Every command opens its own session and prints its result as JSON on stdout.
type PersonCommandHandler struct {
	open func(ctx context.Context, cmd *cobra.Command) (*session, error)
}

// NewPersonCommandHandler returns a handler connecting through the loaded configuration
func NewPersonCommandHandler() *PersonCommandHandler {
	return &PersonCommandHandler{open: openSession}
}

type operation func(ctx context.Context, s *session) (interface{}, error)

func (h *PersonCommandHandler) run(cmd *cobra.Command, op operation) {
	ctx := commandContext(cmd)

	s, err := h.open(ctx, cmd)
	if err != nil {
		if log, logErr := setupLogger(nil); logErr == nil {
			log.Error(err)
		}
		return
	}
	defer s.close(ctx)

	result, err := op(ctx, s)
	if err != nil {
		s.logger.Error(err)
		return
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		s.logger.Error(err)
	}
}

// CreatePersonCmd inserts a single person
func (h *PersonCommandHandler) CreatePersonCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		person, err := parseNewPerson(cmd)
		if err != nil {
			return nil, err
		}
		return s.service.Create(ctx, person)
	})
}

// CreatePeopleCmd inserts every person of a JSON file in one batch
func (h *PersonCommandHandler) CreatePeopleCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		path, err := cmd.Flags().GetString(flagFile)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagFile, err)
		}
		persons, err := readPeopleFile(path)
		if err != nil {
			return nil, err
		}
		return s.service.CreateMany(ctx, persons)
	})
}

// FindPeopleCmd lists every person matching the filter flags
func (h *PersonCommandHandler) FindPeopleCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		filter, err := parseFilter(cmd)
		if err != nil {
			return nil, err
		}
		return s.service.Find(ctx, filter)
	})
}

// FindPersonCmd prints the first person matching the filter flags
func (h *PersonCommandHandler) FindPersonCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		filter, err := parseFilter(cmd)
		if err != nil {
			return nil, err
		}
		return s.service.FindOne(ctx, filter)
	})
}

// GetPersonCmd prints the person with the given id
func (h *PersonCommandHandler) GetPersonCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		id, err := requireString(cmd, flagID)
		if err != nil {
			return nil, err
		}
		return s.service.GetByID(ctx, id)
	})
}

// AddFavoriteFoodCmd loads a person, appends a food and saves the person again
func (h *PersonCommandHandler) AddFavoriteFoodCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		id, err := requireString(cmd, flagID)
		if err != nil {
			return nil, err
		}
		food, err := requireString(cmd, flagFood)
		if err != nil {
			return nil, err
		}
		return s.service.AddFavoriteFood(ctx, id, food)
	})
}

// UpdatePersonCmd atomically updates the first match and prints it after the update
func (h *PersonCommandHandler) UpdatePersonCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		filter, err := parseFilter(cmd)
		if err != nil {
			return nil, err
		}
		update, err := parseUpdate(cmd)
		if err != nil {
			return nil, err
		}
		return s.service.UpdateOne(ctx, filter, update)
	})
}

// DeletePersonCmd removes the person with the given id and prints it
func (h *PersonCommandHandler) DeletePersonCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		id, err := requireString(cmd, flagID)
		if err != nil {
			return nil, err
		}
		return s.service.DeleteByID(ctx, id)
	})
}

// DeletePeopleCmd removes every match of a non-empty filter
func (h *PersonCommandHandler) DeletePeopleCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		filter, err := parseFilter(cmd)
		if err != nil {
			return nil, err
		}
		deleted, err := s.service.DeleteMany(ctx, filter)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"deletedCount": deleted}, nil
	})
}

// SearchPeopleCmd runs a filter, sort, skip, limit and projection chain
func (h *PersonCommandHandler) SearchPeopleCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		query, err := parseQuery(cmd)
		if err != nil {
			return nil, err
		}
		return s.service.Search(ctx, query)
	})
}

// WalkthroughCmd replays the full create, read, update and delete script
func (h *PersonCommandHandler) WalkthroughCmd(cmd *cobra.Command, _ []string) {
	h.run(cmd, func(ctx context.Context, s *session) (interface{}, error) {
		personID, err := cmd.Flags().GetString(flagPersonID)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", flagPersonID, err)
		}
		walkthrough, err := app.NewWalkthrough(s.service, s.logger)
		if err != nil {
			return nil, err
		}
		return walkthrough.Run(ctx, personID), nil
	})
}

// InitPersonCommands registers person-related commands
func InitPersonCommands(rootCmd *cobra.Command) error {
	registerPersonCommands(rootCmd, NewPersonCommandHandler())
	return nil
}

func registerPersonCommands(rootCmd *cobra.Command, handler *PersonCommandHandler) {
	var createPersonCmd = &cobra.Command{
		Use:   "create-person",
		Short: "Create and save a single person",
		Run:   handler.CreatePersonCmd,
	}
	addPersonFlags(createPersonCmd)
	rootCmd.AddCommand(createPersonCmd)

	var createPeopleCmd = &cobra.Command{
		Use:   "create-people",
		Short: "Create many people from a JSON file",
		Run:   handler.CreatePeopleCmd,
	}
	createPeopleCmd.Flags().StringP(flagFile, "", "", "Path to a JSON array of people")
	rootCmd.AddCommand(createPeopleCmd)

	var findPeopleCmd = &cobra.Command{
		Use:   "find-people",
		Short: "Find all people matching a filter",
		Run:   handler.FindPeopleCmd,
	}
	addFilterFlags(findPeopleCmd)
	rootCmd.AddCommand(findPeopleCmd)

	var findPersonCmd = &cobra.Command{
		Use:   "find-person",
		Short: "Find one person matching a filter",
		Run:   handler.FindPersonCmd,
	}
	addFilterFlags(findPersonCmd)
	rootCmd.AddCommand(findPersonCmd)

	var getPersonCmd = &cobra.Command{
		Use:   "get-person",
		Short: "Find a person by id",
		Run:   handler.GetPersonCmd,
	}
	getPersonCmd.Flags().StringP(flagID, "", "", "Person id")
	rootCmd.AddCommand(getPersonCmd)

	var addFavoriteFoodCmd = &cobra.Command{
		Use:   "add-favorite-food",
		Short: "Load a person, add a favorite food and save the person",
		Run:   handler.AddFavoriteFoodCmd,
	}
	addFavoriteFoodCmd.Flags().StringP(flagID, "", "", "Person id")
	addFavoriteFoodCmd.Flags().StringP(flagFood, "", "", "Food to add")
	rootCmd.AddCommand(addFavoriteFoodCmd)

	var updatePersonCmd = &cobra.Command{
		Use:   "update-person",
		Short: "Atomically update the first person matching a filter",
		Run:   handler.UpdatePersonCmd,
	}
	addFilterFlags(updatePersonCmd)
	addUpdateFlags(updatePersonCmd)
	rootCmd.AddCommand(updatePersonCmd)

	var deletePersonCmd = &cobra.Command{
		Use:   "delete-person",
		Short: "Delete a person by id",
		Run:   handler.DeletePersonCmd,
	}
	deletePersonCmd.Flags().StringP(flagID, "", "", "Person id")
	rootCmd.AddCommand(deletePersonCmd)

	var deletePeopleCmd = &cobra.Command{
		Use:   "delete-people",
		Short: "Delete all people matching a non-empty filter",
		Run:   handler.DeletePeopleCmd,
	}
	addFilterFlags(deletePeopleCmd)
	rootCmd.AddCommand(deletePeopleCmd)

	var searchPeopleCmd = &cobra.Command{
		Use:   "search-people",
		Short: "Filter, sort, limit and project people",
		Run:   handler.SearchPeopleCmd,
	}
	addQueryFlags(searchPeopleCmd)
	rootCmd.AddCommand(searchPeopleCmd)

	var walkthroughCmd = &cobra.Command{
		Use:   "walkthrough",
		Short: "Run every person operation in order, continuing after failures",
		Run:   handler.WalkthroughCmd,
	}
	walkthroughCmd.Flags().StringP(flagPersonID, "", "", "Person id for the id based steps, defaults to the first saved person")
	rootCmd.AddCommand(walkthroughCmd)
}
