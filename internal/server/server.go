// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config              *config.Config
	store               store.Store
	redis               *redis.Client
	userRepo            repository.UserRepository
	articleRepo         repository.ArticleRepository
	commentRepo         repository.CommentRepository
	tagRepo             repository.TagRepository
	userService         *service.UserService
	relationshipService *service.RelationshipService
	favoriteService     *service.FavoriteService
	articleService      *service.ArticleService
	commentService      *service.CommentService
	tagService          *service.TagService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config, st store.Store) *Server {
	userRepo := repository.NewUserRepository(st)
	articleRepo := repository.NewArticleRepository(st)
	commentRepo := repository.NewCommentRepository(st)
	tagRepo := repository.NewTagRepository(st)

	srv := &Server{
		config:      cfg,
		store:       st,
		redis:       cache.GetClient(),
		userRepo:    userRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		tagRepo:     tagRepo,
	}
	srv.userService = service.NewUserService(userRepo)
	srv.relationshipService = service.NewRelationshipService(userRepo)
	srv.favoriteService = service.NewFavoriteService(userRepo, articleRepo)
	srv.articleService = service.NewArticleService(articleRepo, userRepo, tagRepo)
	srv.commentService = service.NewCommentService(commentRepo, articleRepo)
	srv.tagService = service.NewTagService(tagRepo)

	middleware.InitMiddleware(cfg)
	return srv
}

// SetupMiddleware registers the shared middleware stack.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	prom := fiberprometheus.New("quill-api")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}

// SetupRoutes registers all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/users", middleware.RateLimit(s.redis, "signup", 10, time.Minute), s.Signup)
	api.Post("/users/login", middleware.RateLimit(s.redis, "login", 20, time.Minute), s.Login)

	api.Get("/profiles/:username", middleware.AuthOptional, s.GetProfile)
	api.Post("/profiles/:username/follow", middleware.AuthRequired, s.Follow)
	api.Delete("/profiles/:username/follow", middleware.AuthRequired, s.Unfollow)

	api.Get("/articles", s.ListArticles)
	api.Get("/articles/feed", middleware.AuthRequired, s.Feed)
	api.Post("/articles", middleware.AuthRequired, s.CreateArticle)
	api.Get("/articles/:slug", s.GetArticle)
	api.Put("/articles/:slug", middleware.AuthRequired, s.UpdateArticle)
	api.Delete("/articles/:slug", middleware.AuthRequired, s.DeleteArticle)

	api.Post("/articles/:slug/favorite", middleware.AuthRequired, s.FavoriteArticle)
	api.Delete("/articles/:slug/favorite", middleware.AuthRequired, s.UnfavoriteArticle)
	api.Get("/user/favorites", middleware.AuthRequired, s.FavoritedArticles)

	api.Get("/articles/:slug/comments", s.ListComments)
	api.Post("/articles/:slug/comments", middleware.AuthRequired, s.AddComment)
	api.Delete("/comments/:id", middleware.AuthRequired, s.DeleteComment)

	api.Get("/tags", s.ListTags)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if m, ok := s.store.(*store.Mongo); ok {
		return m.Close(ctx)
	}
	return nil
}

// generateToken issues a signed JWT for the user.
func (s *Server) generateToken(userID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
