package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tag_list"`
}

type updateArticleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

type articleResponse struct {
	Article *models.Article `json:"article"`
}

type articlesResponse struct {
	Articles []*models.Article `json:"articles"`
	Count    int               `json:"articles_count"`
}

// CreateArticle creates an article authored by the caller. The slug is
// derived from the title once, at creation.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req createArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	article, err := s.articleService.CreateArticle(c.UserContext(), service.CreateArticleInput{
		AuthorID:    currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(articleResponse{Article: article})
}

// ListArticles lists articles, filtered to a single author when the author
// query parameter names one.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	username := c.Query("author")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("author query parameter is required"))
	}

	author, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	if author == nil {
		return respondError(c, models.NewNotFoundError("User", username))
	}

	articles, err := s.articleService.ListByAuthor(c.UserContext(), author.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articlesResponse{Articles: articles, Count: len(articles)})
}

// GetArticle resolves an article by slug.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articleResponse{Article: article})
}

// UpdateArticle applies partial edits to an article owned by the caller.
// Title edits never recompute the slug.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	var req updateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	updated, err := s.articleService.UpdateArticle(c.UserContext(), currentUserID(c), article.ID, service.UpdateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articleResponse{Article: updated})
}

// DeleteArticle removes an article owned by the caller along with its
// comments.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	if err := s.articleService.DeleteArticle(c.UserContext(), currentUserID(c), article.ID, s.commentRepo); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Feed returns recent articles from authors the caller follows.
func (s *Server) Feed(c *fiber.Ctx) error {
	articles, err := s.articleService.Feed(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articlesResponse{Articles: articles, Count: len(articles)})
}

// FavoriteArticle records the caller's favorite and bumps the article's
// favorites count. Favoriting twice is a no-op.
func (s *Server) FavoriteArticle(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	if err := s.favoriteService.Favorite(c.UserContext(), currentUserID(c), article.ID); err != nil {
		return respondError(c, err)
	}
	return s.respondArticleFresh(c, article.ID)
}

// UnfavoriteArticle removes the caller's favorite and decrements the
// article's favorites count.
func (s *Server) UnfavoriteArticle(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	if err := s.favoriteService.Unfavorite(c.UserContext(), currentUserID(c), article.ID); err != nil {
		return respondError(c, err)
	}
	return s.respondArticleFresh(c, article.ID)
}

// FavoritedArticles lists the caller's favorited articles, newest first.
func (s *Server) FavoritedArticles(c *fiber.Ctx) error {
	articles, err := s.favoriteService.FavoritedArticles(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articlesResponse{Articles: articles, Count: len(articles)})
}

// respondArticleFresh re-reads the article so the response carries the
// post-write favorites count rather than a cached one.
func (s *Server) respondArticleFresh(c *fiber.Ctx, articleID string) error {
	article, err := s.articleRepo.GetByID(c.UserContext(), articleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articleResponse{Article: article})
}
