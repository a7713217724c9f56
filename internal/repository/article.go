package repository

import (
	"context"
	"errors"
	"time"

	"quill/internal/models"
	"quill/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	// IncrementFavorites atomically adjusts favorites_count and returns the
	// resulting value.
	IncrementFavorites(ctx context.Context, id string, delta int) (int, error)
	// SetFavoritesCount overwrites the counter. Used only to clamp a counter
	// observed below zero back to a sane value.
	SetFavoritesCount(ctx context.Context, id string, count int) error
}

// articleRepository implements ArticleRepository
type articleRepository struct {
	store store.Store
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(s store.Store) ArticleRepository {
	return &articleRepository{store: s}
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	raw, err := r.store.Get(ctx, ArticlesCollection, id)
	if err != nil {
		return nil, mapGetErr(err, "Article", id)
	}

	var article models.Article
	if err := bson.Unmarshal(raw, &article); err != nil {
		return nil, models.NewStoreError(err)
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	docs, err := r.store.FindBy(ctx, ArticlesCollection, "slug", slug)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var article models.Article
	if err := bson.Unmarshal(docs[0], &article); err != nil {
		return nil, models.NewStoreError(err)
	}
	return &article, nil
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	docs, err := r.store.FindBy(ctx, ArticlesCollection, "author_id", authorID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return decodeAll[models.Article](docs)
}

func (r *articleRepository) ListByAuthors(ctx context.Context, authorIDs []string) ([]*models.Article, error) {
	docs, err := r.store.FindIn(ctx, ArticlesCollection, "author_id", authorIDs)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return decodeAll[models.Article](docs)
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	if err := r.store.Upsert(ctx, ArticlesCollection, article.ID, article); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	article.UpdatedAt = time.Now().UTC()
	if err := r.store.Upsert(ctx, ArticlesCollection, article.ID, article); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, ArticlesCollection, id); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *articleRepository) IncrementFavorites(ctx context.Context, id string, delta int) (int, error) {
	count, err := r.store.Increment(ctx, ArticlesCollection, id, "favorites_count", delta)
	if err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return 0, models.NewNotFoundError("Article", id)
		}
		return 0, models.NewStoreError(err)
	}
	return count, nil
}

func (r *articleRepository) SetFavoritesCount(ctx context.Context, id string, count int) error {
	article, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	article.FavoritesCount = count
	return r.Update(ctx, article)
}
