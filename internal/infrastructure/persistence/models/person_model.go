package models

import (
	"github.com/basstop798/mangoose/internal/domain/people"
)

// PersonModel is the GORM database model for people (infrastructure concern)
type PersonModel struct {
	ID            string            `gorm:"primaryKey;type:varchar(36)"`
	Name          string            `gorm:"not null;index;type:varchar(255)"`
	Age           *int              `gorm:"type:integer"`
	Version       int               `gorm:"not null;default:0"`
	FavoriteFoods []PersonFoodModel `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (PersonModel) TableName() string {
	return "people"
}

// PersonFoodModel stores one favourite food; Position keeps the list order
type PersonFoodModel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	PersonID string `gorm:"not null;index;type:varchar(36)"`
	Position int    `gorm:"not null"`
	Food     string `gorm:"not null;index;type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (PersonFoodModel) TableName() string {
	return "person_favorite_foods"
}

// ToDomain converts GORM model to domain entity.
// withFoods is false when the foods association was not loaded.
func (m *PersonModel) ToDomain(withFoods bool) *people.Person {
	person := &people.Person{
		ID:      m.ID,
		Name:    m.Name,
		Age:     m.Age,
		Version: m.Version,
	}
	if withFoods {
		person.FavoriteFoods = make([]string, 0, len(m.FavoriteFoods))
		for _, food := range m.FavoriteFoods {
			person.FavoriteFoods = append(person.FavoriteFoods, food.Food)
		}
	}
	return person
}

// FromDomain converts domain entity to GORM model
func (m *PersonModel) FromDomain(p *people.Person) {
	m.ID = p.ID
	m.Name = p.Name
	m.Age = p.Age
	m.Version = p.Version
	m.FavoriteFoods = FoodModels(p.ID, p.FavoriteFoods)
}

// FoodModels builds the ordered food rows of a person
func FoodModels(personID string, foods []string) []PersonFoodModel {
	rows := make([]PersonFoodModel, 0, len(foods))
	for i, food := range foods {
		rows = append(rows, PersonFoodModel{
			PersonID: personID,
			Position: i,
			Food:     food,
		})
	}
	return rows
}
