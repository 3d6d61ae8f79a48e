package app

import (
	"context"
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/logger"
)

// Walkthrough step names in execution order
const (
	StepSavePerson      = "save-person"
	StepCreatePeople    = "create-people"
	StepFindByName      = "find-by-name"
	StepFindOneByFood   = "find-one-by-food"
	StepFindByID        = "find-by-id"
	StepAddFavoriteFood = "add-favorite-food"
	StepUpdateAge       = "update-age"
	StepDeleteByID      = "delete-by-id"
	StepDeleteByName    = "delete-by-name"
	StepChainedSearch   = "chained-search"
)

const (
	walkthroughFood      = "burritos"
	walkthroughNewFood   = "hamburger"
	walkthroughUpdateFor = "Ali"
	walkthroughDeleteFor = "Mary"
)

// StepResult is the outcome of a single walkthrough step
type StepResult struct {
	Step   string      `json:"step"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Failed reports whether the step ended with an error
func (r StepResult) Failed() bool {
	return r.Error != ""
}

// Walkthrough replays the classic create, read, update and delete script
// against a PersonService. A failing step is logged and the next step runs anyway.
type Walkthrough struct {
	service people.PersonService
	logger  logger.Logger
}

// NewWalkthrough creates a new Walkthrough instance
func NewWalkthrough(service people.PersonService, logger logger.Logger) (*Walkthrough, error) {
	if service == nil {
		return nil, fmt.Errorf("person service must not be nil")
	}
	return &Walkthrough{
		service: service,
		logger:  logger,
	}, nil
}

// WalkthroughPeople returns the people inserted in one batch by the walkthrough
func WalkthroughPeople() []*people.Person {
	return []*people.Person{
		people.NewPerson("Mary", people.IntPtr(22), "burritos", "salad"),
		people.NewPerson("Ali", people.IntPtr(30), "couscous", "burritos"),
		people.NewPerson("Sarah", people.IntPtr(19), "pizza"),
	}
}

// Run executes every step in order. personID selects the person used by the
// id based steps; when empty the id of the first saved person is used.
func (w *Walkthrough) Run(ctx context.Context, personID string) []StepResult {
	results := make([]StepResult, 0, 10)

	record := func(step string, result interface{}, err error) {
		if err != nil {
			w.logger.Error("Step ", step, " failed: ", err)
			results = append(results, StepResult{Step: step, Error: err.Error()})
			return
		}
		w.logger.Info("Step ", step, " done")
		results = append(results, StepResult{Step: step, Result: result})
	}

	john := people.NewPerson("John Doe", people.IntPtr(25), "pizza", "pasta")
	saved, err := w.service.Create(ctx, john)
	record(StepSavePerson, saved, err)
	if personID == "" && err == nil {
		personID = saved.ID
	}

	created, err := w.service.CreateMany(ctx, WalkthroughPeople())
	record(StepCreatePeople, created, err)

	found, err := w.service.Find(ctx, &people.PersonFilter{Name: "Mary"})
	record(StepFindByName, found, err)

	one, err := w.service.FindOne(ctx, &people.PersonFilter{FavoriteFood: walkthroughFood})
	record(StepFindOneByFood, one, err)

	byID, err := w.service.GetByID(ctx, personID)
	record(StepFindByID, byID, err)

	withFood, err := w.service.AddFavoriteFood(ctx, personID, walkthroughNewFood)
	record(StepAddFavoriteFood, withFood, err)

	updated, err := w.service.UpdateOne(ctx,
		&people.PersonFilter{Name: walkthroughUpdateFor},
		&people.PersonUpdate{Age: people.IntPtr(20)})
	record(StepUpdateAge, updated, err)

	removed, err := w.service.DeleteByID(ctx, personID)
	record(StepDeleteByID, removed, err)

	deleted, err := w.service.DeleteMany(ctx, &people.PersonFilter{Name: walkthroughDeleteFor})
	record(StepDeleteByName, map[string]int64{"deletedCount": deleted}, err)

	chained, err := w.service.Search(ctx, &people.PersonQuery{
		Filter:  people.PersonFilter{FavoriteFood: walkthroughFood},
		SortBy:  people.FieldName,
		Limit:   2,
		Exclude: []string{people.FieldAge},
	})
	record(StepChainedSearch, chained, err)

	return results
}
