// Package people defines the Person entity, the filter, update and query
// value types used to address stored people, and the repository and service
// contracts implemented by the persistence and application layers.
package people
