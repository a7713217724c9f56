package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type addCommentRequest struct {
	Body string `json:"body"`
}

type commentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type commentsResponse struct {
	Comments []*models.Comment `json:"comments"`
}

// AddComment creates a comment on the article identified by slug.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		AuthorID:  currentUserID(c),
		ArticleID: article.ID,
		Body:      req.Body,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(commentResponse{Comment: comment})
}

// ListComments lists the comments on the article identified by slug.
func (s *Server) ListComments(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentService.ListComments(c.UserContext(), article.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(commentsResponse{Comments: comments})
}

// DeleteComment removes a comment authored by the caller.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	if err := s.commentService.DeleteComment(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
