package people

import "errors"

var (
	// ErrPersonNotFound is returned when no stored person matches
	ErrPersonNotFound = errors.New("person not found")
	// ErrInvalidID is returned for ids the store cannot interpret
	ErrInvalidID = errors.New("invalid person id")
	// ErrVersionConflict is returned when a save is based on a stale revision
	ErrVersionConflict = errors.New("person was modified since it was loaded")
	// ErrEmptyFilter is returned when a destructive operation would match every person
	ErrEmptyFilter = errors.New("filter matches every person")
	// ErrEmptyUpdate is returned for updates that assign no field
	ErrEmptyUpdate = errors.New("update assigns no field")
)
