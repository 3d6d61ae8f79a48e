package people

// Field names as they appear in stored documents
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldAge           = "age"
	FieldFavoriteFoods = "favoriteFoods"
)

// Sort orders
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PersonFilter selects people by equality. FavoriteFood matches when the
// food is one of the person's favourite foods. The zero value matches everybody.
type PersonFilter struct {
	Name         string `json:"name,omitempty" validate:"omitempty,max=255"`
	FavoriteFood string `json:"favoriteFood,omitempty" validate:"omitempty,max=255"`
}

// Validate for validating PersonFilter struct
func (f *PersonFilter) Validate() error {
	return validateStruct(f)
}

// IsEmpty reports whether the filter matches every person.
func (f *PersonFilter) IsEmpty() bool {
	return f == nil || (f.Name == "" && f.FavoriteFood == "")
}

// PersonUpdate assigns the non-nil fields of a person in one atomic step.
type PersonUpdate struct {
	Name          *string  `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Age           *int     `json:"age,omitempty" validate:"omitnil,min=0,max=150"`
	FavoriteFoods []string `json:"favoriteFoods,omitempty" validate:"omitempty,dive,required,max=255"`
}

// Validate for validating PersonUpdate struct
func (u *PersonUpdate) Validate() error {
	if u == nil || (u.Name == nil && u.Age == nil && u.FavoriteFoods == nil) {
		return ErrEmptyUpdate
	}
	return validateStruct(u)
}

// Apply assigns the update to p.
func (u *PersonUpdate) Apply(p *Person) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = IntPtr(*u.Age)
	}
	if u.FavoriteFoods != nil {
		p.FavoriteFoods = append([]string{}, u.FavoriteFoods...)
	}
}

// PersonQuery is a filter followed by sort, skip, limit and a projection
// that hides the fields listed in Exclude.
type PersonQuery struct {
	Filter    PersonFilter `json:"filter"`
	SortBy    string       `json:"sortBy,omitempty" validate:"omitempty,oneof=id name age"`
	SortOrder string       `json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc"`
	Limit     int          `json:"limit,omitempty" validate:"min=0"`
	Offset    int          `json:"offset,omitempty" validate:"min=0"`
	Exclude   []string     `json:"exclude,omitempty" validate:"omitempty,dive,oneof=age favoriteFoods"`
}

// Validate for validating PersonQuery struct
func (q *PersonQuery) Validate() error {
	return validateStruct(q)
}

// Descending reports whether results are sorted in descending order.
func (q *PersonQuery) Descending() bool {
	return q.SortOrder == SortDesc
}

// Excludes reports whether field is hidden from the results.
func (q *PersonQuery) Excludes(field string) bool {
	for _, f := range q.Exclude {
		if f == field {
			return true
		}
	}
	return false
}
