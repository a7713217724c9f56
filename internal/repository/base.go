// Package repository provides data access layer implementations for the application.
//
// Repositories are the typed mapping layer between domain models and the
// document store's raw BSON representation. Store-level failures are
// translated here: a missing document becomes a NOT_FOUND application error,
// anything else becomes a STORE_ERROR.
package repository

import (
	"errors"

	"quill/internal/models"
	"quill/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names used by the repositories.
const (
	UsersCollection    = "users"
	ArticlesCollection = "articles"
	CommentsCollection = "comments"
	TagsCollection     = "tags"
)

// mapGetErr translates a store read failure into an application error.
func mapGetErr(err error, resource string, id string) error {
	if errors.Is(err, store.ErrNoDocument) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewStoreError(err)
}

// decodeAll unmarshals a set of raw documents into typed values.
func decodeAll[T any](docs []bson.Raw) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		v := new(T)
		if err := bson.Unmarshal(doc, v); err != nil {
			return nil, models.NewStoreError(err)
		}
		out = append(out, v)
	}
	return out, nil
}
