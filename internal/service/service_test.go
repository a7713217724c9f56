package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/store"

	"github.com/stretchr/testify/require"
)

// testEnv wires real repositories over the in-memory store so service tests
// exercise the same document round-trips as production code.
type testEnv struct {
	store       store.Store
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	tagRepo     repository.TagRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, store.NewMemory())
}

func newTestEnvWith(t *testing.T, st store.Store) *testEnv {
	t.Helper()
	return &testEnv{
		store:       st,
		userRepo:    repository.NewUserRepository(st),
		articleRepo: repository.NewArticleRepository(st),
		commentRepo: repository.NewCommentRepository(st),
		tagRepo:     repository.NewTagRepository(st),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		PasswordDigest: "x",
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func (e *testEnv) createArticle(t *testing.T, authorID, title string) *models.Article {
	t.Helper()
	svc := NewArticleService(e.articleRepo, e.userRepo, e.tagRepo)
	article, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID:    authorID,
		Title:       title,
		Description: "desc",
		Body:        "body",
	})
	require.NoError(t, err)
	return article
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

// faultStore wraps a Store and fails selected operations, for exercising the
// partial-write paths.
type faultStore struct {
	store.Store
	failIncrement bool
	failUpsert    map[string]bool // keyed by collection
}

var errInjected = errors.New("injected store failure")

func (f *faultStore) Increment(ctx context.Context, collection, id, field string, delta int) (int, error) {
	if f.failIncrement {
		return 0, errInjected
	}
	return f.Store.Increment(ctx, collection, id, field, delta)
}

func (f *faultStore) Upsert(ctx context.Context, collection, id string, doc any) error {
	if f.failUpsert[collection] {
		return errInjected
	}
	return f.Store.Upsert(ctx, collection, id, doc)
}
