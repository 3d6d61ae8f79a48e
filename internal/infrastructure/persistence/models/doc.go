// Package models contains the storage representations of a person: GORM
// models for relational stores and BSON documents for MongoDB.
// They are kept apart from the domain entity and converted with
// ToDomain and FromDomain.
package models
