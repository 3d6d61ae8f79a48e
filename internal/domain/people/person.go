package people

// Person entity
type Person struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Age           *int     `json:"age,omitempty" validate:"omitnil,min=0,max=150"`
	FavoriteFoods []string `json:"favoriteFoods" validate:"omitempty,dive,required,max=255"`
	// Version counts saves of the loaded document and guards against lost updates
	Version int `json:"__v" validate:"min=0"`
}

// NewPerson returns an unsaved person with an empty, non-nil food list
// when no foods are given.
func NewPerson(name string, age *int, favoriteFoods ...string) *Person {
	foods := make([]string, 0, len(favoriteFoods))
	foods = append(foods, favoriteFoods...)

	return &Person{
		Name:          name,
		Age:           age,
		FavoriteFoods: foods,
	}
}

// IntPtr returns a pointer to v, handy for optional ages.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}

// Validate for validating Person struct
func (p *Person) Validate() error {
	return validateStruct(p)
}

// AddFavoriteFood appends food to the ordered list of favourite foods.
func (p *Person) AddFavoriteFood(food string) {
	p.FavoriteFoods = append(p.FavoriteFoods, food)
}

// EnsureDefaults fills in values a freshly inserted document always carries.
func (p *Person) EnsureDefaults() {
	if p.FavoriteFoods == nil {
		p.FavoriteFoods = []string{}
	}
}

// Clone returns a deep copy of p.
func (p *Person) Clone() *Person {
	clone := *p
	if p.Age != nil {
		clone.Age = IntPtr(*p.Age)
	}
	if p.FavoriteFoods != nil {
		clone.FavoriteFoods = append([]string{}, p.FavoriteFoods...)
	}
	return &clone
}
