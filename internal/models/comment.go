// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on an article. Comments are independent
// documents; an article's comment set is resolved by a secondary-index query
// on article_id, never stored inline.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	Body      string    `bson:"body" json:"body"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	ArticleID string    `bson:"article_id" json:"article_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
