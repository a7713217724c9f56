package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// CommentService provides comment creation, listing, and deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

// AddCommentInput carries the fields needed to create a comment.
type AddCommentInput struct {
	AuthorID  string
	ArticleID string
	Body      string
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

// CanModifyComment reports whether the actor authored the comment. Pure
// predicate; the decision to delete stays with the caller.
func CanModifyComment(actorID string, comment *models.Comment) bool {
	return actorID == comment.AuthorID
}

// AddComment creates a comment on an existing article.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID); err != nil {
		return nil, err
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	comment := &models.Comment{
		Body:      in.Body,
		AuthorID:  in.AuthorID,
		ArticleID: in.ArticleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments on an article, resolved by a
// secondary-index query on article_id.
func (s *CommentService) ListComments(ctx context.Context, articleID string) ([]*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, articleID)
}

// DeleteComment deletes a comment after an authorship check.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !CanModifyComment(actorID, comment) {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, commentID)
}
