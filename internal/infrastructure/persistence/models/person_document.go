package models

import (
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// BSON field names of a person document
const (
	DocFieldID            = "_id"
	DocFieldName          = "name"
	DocFieldAge           = "age"
	DocFieldFavoriteFoods = "favoriteFoods"
	DocFieldVersion       = "__v"
)

// PersonDocument is the MongoDB representation of a person
type PersonDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name"`
	Age           *int          `bson:"age,omitempty"`
	FavoriteFoods []string      `bson:"favoriteFoods"`
	Version       int           `bson:"__v"`
}

// ToDomain converts the document to the domain entity
func (d *PersonDocument) ToDomain() *people.Person {
	person := &people.Person{
		Name:          d.Name,
		Age:           d.Age,
		FavoriteFoods: d.FavoriteFoods,
		Version:       d.Version,
	}
	if !d.ID.IsZero() {
		person.ID = d.ID.Hex()
	}
	return person
}

// FromDomain converts the domain entity to a document.
// An empty person ID leaves the document ID unset.
func (d *PersonDocument) FromDomain(p *people.Person) error {
	d.ID = bson.ObjectID{}
	if p.ID != "" {
		id, err := ParseObjectID(p.ID)
		if err != nil {
			return err
		}
		d.ID = id
	}
	d.Name = p.Name
	d.Age = p.Age
	d.FavoriteFoods = p.FavoriteFoods
	d.Version = p.Version
	return nil
}

// ParseObjectID converts a hex person ID into an ObjectID
func ParseObjectID(personID string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(personID)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q: %v", people.ErrInvalidID, personID, err)
	}
	return id, nil
}
