package testutil

import (
	"github.com/basstop798/mangoose/internal/domain/people"

	"github.com/brianvoe/gofakeit/v6"
)

// FakePerson returns a valid, unsaved person with random name, age and foods
func FakePerson() *people.Person {
	return people.NewPerson(
		gofakeit.Name(),
		people.IntPtr(gofakeit.Number(0, 99)),
		gofakeit.Lunch(),
		gofakeit.Dinner(),
	)
}

// FakePeople returns n valid, unsaved people
func FakePeople(n int) []*people.Person {
	persons := make([]*people.Person, n)
	for i := range persons {
		persons[i] = FakePerson()
	}
	return persons
}
