package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// FavoriteService maintains the favorite relationship between a user and an
// article together with the article's denormalized favorites_count.
//
// The relationship lives on the user document and the counter on the article
// document, and the store offers no atomicity across the two. Every mutation
// is therefore a two-step saga, user document first: the first write records
// both the relationship change and a pending counter adjustment in a single
// document, the second write applies the adjustment to the article through
// the store's atomic increment. A failure after the first write surfaces as
// a PARTIAL_WRITE error; the pending marker survives on the user document,
// and a retried call settles it before doing anything else.
type FavoriteService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
}

// NewFavoriteService returns a new FavoriteService.
func NewFavoriteService(userRepo repository.UserRepository, articleRepo repository.ArticleRepository) *FavoriteService {
	return &FavoriteService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
	}
}

// Favorite records the article in the user's favorites and increments the
// article's favorites_count. Favoriting an already-favorited article is a
// no-op success.
func (s *FavoriteService) Favorite(ctx context.Context, userID, articleID string) error {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.settlePending(ctx, user, articleID); err != nil {
		return err
	}

	if user.HasFavorited(articleID) {
		return nil
	}

	// Step 1: relationship and owed counter adjustment, one document write.
	user.Favorites = append(user.Favorites, articleID)
	user.FavoritesPending = append(user.FavoritesPending, models.PendingFavorite{ArticleID: articleID, Delta: 1})
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Nothing committed; the whole operation is safe to retry from scratch.
		return err
	}

	// Step 2: counter, then acknowledge.
	return s.applyAndClear(ctx, user, articleID, 1)
}

// Unfavorite removes the article from the user's favorites and decrements
// favorites_count. Unfavoriting an article that is not favorited fails with
// NOT_FAVORITED; the asymmetry with Favorite is contract, not accident.
func (s *FavoriteService) Unfavorite(ctx context.Context, userID, articleID string) error {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.settlePending(ctx, user, articleID); err != nil {
		return err
	}

	if !user.HasFavorited(articleID) {
		return models.NewNotFavoritedError(articleID)
	}

	kept := user.Favorites[:0]
	for _, id := range user.Favorites {
		if id != articleID {
			kept = append(kept, id)
		}
	}
	user.Favorites = kept
	user.FavoritesPending = append(user.FavoritesPending, models.PendingFavorite{ArticleID: articleID, Delta: -1})
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.applyAndClear(ctx, user, articleID, -1)
}

// IsFavorited reports whether the article is in the user's favorites list.
// Read-only: an outstanding pending marker is left alone.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, articleID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.HasFavorited(articleID), nil
}

// FavoritedArticles resolves every entry in the user's favorites list.
// Entries that no longer resolve are skipped: favorites lists are not kept
// in lockstep with article deletion.
func (s *FavoriteService) FavoritedArticles(ctx context.Context, userID string) ([]*models.Article, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles := make([]*models.Article, 0, len(user.Favorites))
	for _, articleID := range user.Favorites {
		article, err := s.articleRepo.GetByID(ctx, articleID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// settlePending completes the counter half of a previously interrupted saga
// for the given article, if one is outstanding.
func (s *FavoriteService) settlePending(ctx context.Context, user *models.User, articleID string) error {
	pending, ok := user.PendingFor(articleID)
	if !ok {
		return nil
	}
	return s.applyAndClear(ctx, user, articleID, pending.Delta)
}

// applyAndClear applies the counter adjustment to the article document and
// then clears the pending marker on the user document. Either failure leaves
// the marker in place and is reported as PARTIAL_WRITE.
func (s *FavoriteService) applyAndClear(ctx context.Context, user *models.User, articleID string, delta int) error {
	op := "favorite"
	if delta < 0 {
		op = "unfavorite"
	}

	count, err := s.articleRepo.IncrementFavorites(ctx, articleID, delta)
	if err != nil {
		observability.LogPartialWrite(ctx, op, user.ID, articleID, err)
		return models.NewPartialWriteError("favorites_count adjustment", err)
	}

	if count < 0 {
		// The invariant was already broken before this call; clamp and surface.
		observability.LogConsistencyFault(ctx, "favorites_count_negative", map[string]any{
			"article_id": articleID,
			"count":      count,
		})
		if err := s.articleRepo.SetFavoritesCount(ctx, articleID, 0); err != nil {
			observability.GlobalLogger.ErrorContext(ctx, "favorites_count clamp failed",
				"article_id", articleID, "error", err.Error())
		}
	}

	user.ClearPending(articleID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.LogPartialWrite(ctx, op, user.ID, articleID, err)
		return models.NewPartialWriteError("pending marker acknowledgment", err)
	}
	return nil
}
