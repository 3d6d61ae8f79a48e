// Package persistence provides database repository implementations for people.
// MongoDB is accessed through the official driver; relational stores (SQLite,
// PostgreSQL) go through GORM. Both repositories validate entities before
// writing and log every mutation.
package persistence
