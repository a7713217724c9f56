package repository

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	store store.Store
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{store: s}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if err := r.store.Upsert(ctx, CommentsCollection, comment.ID, comment); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	raw, err := r.store.Get(ctx, CommentsCollection, id)
	if err != nil {
		return nil, mapGetErr(err, "Comment", id)
	}

	var comment models.Comment
	if err := bson.Unmarshal(raw, &comment); err != nil {
		return nil, models.NewStoreError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	docs, err := r.store.FindBy(ctx, CommentsCollection, "article_id", articleID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return decodeAll[models.Comment](docs)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, CommentsCollection, id); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
