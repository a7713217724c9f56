// Package seed generates realistic development data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/repository"
	"quill/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Seeder populates the store with fake users, articles, comments, and a
// favorite/follow mesh, going through the services so slugs, counters, and
// relationship invariants hold for seeded data too.
type Seeder struct {
	users         *service.UserService
	articles      *service.ArticleService
	comments      *service.CommentService
	relationships *service.RelationshipService
	favorites     *service.FavoriteService
}

// NewSeeder returns a Seeder wired to the given repositories.
func NewSeeder(userRepo repository.UserRepository, articleRepo repository.ArticleRepository, commentRepo repository.CommentRepository, tagRepo repository.TagRepository) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		users:         service.NewUserService(userRepo),
		articles:      service.NewArticleService(articleRepo, userRepo, tagRepo),
		comments:      service.NewCommentService(commentRepo, articleRepo),
		relationships: service.NewRelationshipService(userRepo),
		favorites:     service.NewFavoriteService(userRepo, articleRepo),
	}
}

var tagPool = []string{"programming", "travel", "cooking", "music", "design", "golang", "databases", "writing"}

// Run seeds numUsers users with numArticles articles spread among them, then
// builds a random follow and favorite mesh.
func (s *Seeder) Run(ctx context.Context, numUsers, numArticles int) error {
	userIDs := make([]string, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		username := strings.ToLower(gofakeit.Username())
		user, err := s.users.Register(ctx, service.RegisterInput{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Password: "password123",
			Bio:      gofakeit.Sentence(8),
			Image:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		})
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		userIDs = append(userIDs, user.ID)
	}
	log.Printf("Seeded %d users", len(userIDs))

	articleIDs := make([]string, 0, numArticles)
	for i := 0; i < numArticles; i++ {
		tags := []string{tagPool[rand.Intn(len(tagPool))]}
		if rand.Intn(2) == 0 {
			tags = append(tags, tagPool[rand.Intn(len(tagPool))])
		}
		article, err := s.articles.CreateArticle(ctx, service.CreateArticleInput{
			AuthorID:    userIDs[rand.Intn(len(userIDs))],
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Sentence(10),
			Body:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
			TagList:     tags,
		})
		if err != nil {
			return fmt.Errorf("seed article %d: %w", i, err)
		}
		articleIDs = append(articleIDs, article.ID)
	}
	log.Printf("Seeded %d articles", len(articleIDs))

	comments := 0
	for _, articleID := range articleIDs {
		for i := 0; i < rand.Intn(4); i++ {
			_, err := s.comments.AddComment(ctx, service.AddCommentInput{
				AuthorID:  userIDs[rand.Intn(len(userIDs))],
				ArticleID: articleID,
				Body:      gofakeit.Sentence(12),
			})
			if err != nil {
				return fmt.Errorf("seed comment on %s: %w", articleID, err)
			}
			comments++
		}
	}
	log.Printf("Seeded %d comments", comments)

	follows, favs := 0, 0
	for _, userID := range userIDs {
		for i := 0; i < rand.Intn(5); i++ {
			target := userIDs[rand.Intn(len(userIDs))]
			if target == userID {
				continue
			}
			if err := s.relationships.Follow(ctx, userID, target); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
			follows++
		}
		for i := 0; i < rand.Intn(6); i++ {
			if err := s.favorites.Favorite(ctx, userID, articleIDs[rand.Intn(len(articleIDs))]); err != nil {
				return fmt.Errorf("seed favorite: %w", err)
			}
			favs++
		}
	}
	log.Printf("Seeded %d follows, %d favorites", follows, favs)
	return nil
}
