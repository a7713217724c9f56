package service

import (
	"context"
	"log/slog"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/slug"
)

// ArticleService provides article lifecycle and feed business logic.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	tagRepo     repository.TagRepository
}

// CreateArticleInput carries the fields needed to create an article.
type CreateArticleInput struct {
	AuthorID    string
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleInput carries the updatable article fields. Absent (nil)
// fields are left unchanged.
type UpdateArticleInput struct {
	Title       *string
	Description *string
	Body        *string
}

// NewArticleService returns a new ArticleService.
func NewArticleService(articleRepo repository.ArticleRepository, userRepo repository.UserRepository, tagRepo repository.TagRepository) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		tagRepo:     tagRepo,
	}
}

// CreateArticle validates the input, derives the slug from the title, and
// persists the article. The slug is assigned exactly once, here; title edits
// never change it. Slug uniqueness is not enforced — a collision with an
// existing article is logged and allowed through, matching the system this
// one replaces.
func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	articleSlug := slug.Make(in.Title)
	if existing, err := s.articleRepo.GetBySlug(ctx, articleSlug); err == nil && existing != nil {
		observability.GlobalLogger.WarnContext(ctx, "slug collision",
			slog.String("slug", articleSlug),
			slog.String("existing_article_id", existing.ID),
		)
	}

	article := &models.Article{
		Slug:        articleSlug,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		TagList:     in.TagList,
		AuthorID:    in.AuthorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	for _, name := range in.TagList {
		if err := s.ensureTag(ctx, name); err != nil {
			return nil, err
		}
	}

	return article, nil
}

// UpdateArticle applies the given changes. The slug is deliberately left
// untouched even when the title changes.
func (s *ArticleService) UpdateArticle(ctx context.Context, actorID, articleID string, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actorID {
		return nil, models.NewUnauthorizedError("You can only update your own articles")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		article.Title = *in.Title
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.Body != nil {
		article.Body = *in.Body
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.ArticleKey(article.Slug))
	return article, nil
}

// GetBySlug resolves an article by its secondary key, cache-aside.
func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*models.Article, error) {
	var article *models.Article
	err := cache.CacheAside(ctx, cache.ArticleKey(articleSlug), &article, 5*time.Minute, func() error {
		found, err := s.articleRepo.GetBySlug(ctx, articleSlug)
		if err != nil {
			return err
		}
		if found == nil {
			return models.NewNotFoundError("Article", articleSlug)
		}
		article = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle removes an article after an authorship check, along with its
// comments. Favorites lists pointing at the article are NOT cleaned up;
// FavoritedArticles skips entries that no longer resolve.
func (s *ArticleService) DeleteArticle(ctx context.Context, actorID, articleID string, commentRepo repository.CommentRepository) error {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != actorID {
		return models.NewUnauthorizedError("You can only delete your own articles")
	}

	comments, err := commentRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := commentRepo.Delete(ctx, comment.ID); err != nil {
			return err
		}
	}

	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ArticleKey(article.Slug))
	return nil
}

// ListByAuthor returns the articles written by the given author.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	return s.articleRepo.ListByAuthor(ctx, authorID)
}

// Feed returns the articles authored by the users the given user follows.
func (s *ArticleService) Feed(ctx context.Context, userID string) ([]*models.Article, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Following) == 0 {
		return []*models.Article{}, nil
	}
	return s.articleRepo.ListByAuthors(ctx, user.Following)
}

// AddTag appends a tag to the article's tag list and ensures the
// free-standing tag document exists.
func (s *ArticleService) AddTag(ctx context.Context, actorID, articleID, tag string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actorID {
		return nil, models.NewUnauthorizedError("You can only tag your own articles")
	}
	if tag == "" {
		return nil, models.NewValidationError("Tag is required")
	}
	if article.HasTag(tag) {
		return article, nil
	}

	article.TagList = append(article.TagList, tag)
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	if err := s.ensureTag(ctx, tag); err != nil {
		return nil, err
	}
	return article, nil
}

// RemoveTag removes a tag from the article's tag list. The free-standing tag
// document is left in place for other articles.
func (s *ArticleService) RemoveTag(ctx context.Context, actorID, articleID, tag string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actorID {
		return nil, models.NewUnauthorizedError("You can only tag your own articles")
	}

	kept := article.TagList[:0]
	for _, t := range article.TagList {
		if t != tag {
			kept = append(kept, t)
		}
	}
	article.TagList = kept
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) ensureTag(ctx context.Context, name string) error {
	existing, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if err := s.tagRepo.Create(ctx, &models.Tag{Name: name}); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.TagsKey)
	return nil
}
