// Package models contains data structures for the application's domain models.
package models

import "time"

// PendingFavorite records a favorites_count adjustment that has been applied
// to the user's favorites list but not yet to the article document. It is the
// durable marker that lets a retried favorite/unfavorite complete the second
// half of the two-document write.
type PendingFavorite struct {
	ArticleID string `bson:"article_id" json:"article_id"`
	Delta     int    `bson:"delta" json:"delta"`
}

// User represents a registered user document.
type User struct {
	ID               string            `bson:"_id" json:"id"`
	Username         string            `bson:"username" json:"username"`
	Email            string            `bson:"email" json:"email"`
	PasswordDigest   string            `bson:"password_digest" json:"-"`
	Bio              string            `bson:"bio" json:"bio"`
	Image            string            `bson:"image" json:"image"`
	Following        []string          `bson:"following" json:"following"`
	Favorites        []string          `bson:"favorites" json:"favorites"`
	FavoritesPending []PendingFavorite `bson:"favorites_pending,omitempty" json:"-"`
	CreatedAt        time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `bson:"updated_at" json:"updated_at"`
}

// Follows reports whether the user currently follows the given user ID.
func (u *User) Follows(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// HasFavorited reports whether the article ID is in the user's favorites list.
func (u *User) HasFavorited(articleID string) bool {
	for _, id := range u.Favorites {
		if id == articleID {
			return true
		}
	}
	return false
}

// PendingFor returns the pending counter adjustment for the article, if any.
func (u *User) PendingFor(articleID string) (PendingFavorite, bool) {
	for _, p := range u.FavoritesPending {
		if p.ArticleID == articleID {
			return p, true
		}
	}
	return PendingFavorite{}, false
}

// ClearPending removes the pending marker for the article.
func (u *User) ClearPending(articleID string) {
	kept := u.FavoritesPending[:0]
	for _, p := range u.FavoritesPending {
		if p.ArticleID != articleID {
			kept = append(kept, p)
		}
	}
	u.FavoritesPending = kept
	if len(u.FavoritesPending) == 0 {
		u.FavoritesPending = nil
	}
}
