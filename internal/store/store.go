// Package store provides document persistence over a schemaless store.
//
// Documents are addressed by collection and id. The store offers per-document
// get/upsert/delete, a secondary-index query, and an atomic per-document
// counter increment. It deliberately offers NO multi-document transactions:
// callers that must touch two documents own the partial-failure handling.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNoDocument is returned when no document exists for the given id or when
// a query matches nothing and a single document was expected.
var ErrNoDocument = errors.New("store: no document found")

// Store is the document store contract consumed by the repository layer.
// Documents cross this boundary as raw BSON; typed mapping is the
// repositories' job.
type Store interface {
	// Get returns the document with the given id, or ErrNoDocument.
	Get(ctx context.Context, collection, id string) (bson.Raw, error)
	// Upsert creates or replaces the document with the given id.
	Upsert(ctx context.Context, collection, id string, doc any) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// FindBy returns all documents whose field equals value. A field holding
	// an array matches when any element equals value.
	FindBy(ctx context.Context, collection, field, value string) ([]bson.Raw, error)
	// FindIn returns all documents whose field equals any of the values.
	FindIn(ctx context.Context, collection, field string, values []string) ([]bson.Raw, error)
	// Increment atomically adds delta to a numeric field of one document and
	// returns the resulting value. Returns ErrNoDocument if the document is
	// missing. This is the primitive that keeps concurrent counter updates
	// from losing writes.
	Increment(ctx context.Context, collection, id, field string, delta int) (int, error)
}
