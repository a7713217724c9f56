package models

import "time"

// Article represents a published article document. Slug is a derived,
// human-readable secondary key; it is assigned once at creation and never
// recomputed when the title changes. FavoritesCount is a denormalized mirror
// of how many user documents list this article in their favorites.
type Article struct {
	ID             string    `bson:"_id" json:"id"`
	Slug           string    `bson:"slug" json:"slug"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	Body           string    `bson:"body" json:"body"`
	TagList        []string  `bson:"tag_list" json:"tag_list"`
	AuthorID       string    `bson:"author_id" json:"author_id"`
	FavoritesCount int       `bson:"favorites_count" json:"favorites_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// HasTag reports whether the tag is present in the article's tag list.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.TagList {
		if t == tag {
			return true
		}
	}
	return false
}
