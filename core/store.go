package core

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned by RecordStore.Get when no document exists
// under the given id.
var ErrRecordNotFound = errors.New("record not found")

type (
	// Fields is the schemaless document body held by a RecordStore.
	Fields map[string]interface{}

	// Eq is a single equality predicate term. Query terms are ANDed.
	Eq struct {
		Field string
		Value interface{}
	}

	// Document pairs a store-assigned id with its fields.
	Document struct {
		ID     string
		Fields Fields
	}

	// RecordStore is the document database collaborator. Implementations
	// must preserve insertion order in Query results and make Delete
	// idempotent (deleting an absent id is not an error).
	RecordStore interface {
		Insert(ctx context.Context, collection string, fields Fields) (string, error)
		Get(ctx context.Context, collection, id string) (Fields, error)
		Query(ctx context.Context, collection string, terms ...Eq) ([]Document, error)
		// Update merges the given fields into the existing document.
		Update(ctx context.Context, collection, id string, fields Fields) error
		Delete(ctx context.Context, collection, id string) error
		Close() error
	}
)

// Match reports whether the document fields satisfy all equality terms.
// Shared by store implementations that filter by scanning.
func Match(fields Fields, terms []Eq) bool {
	for _, term := range terms {
		if fields[term.Field] != term.Value {
			return false
		}
	}
	return true
}
