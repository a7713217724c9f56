package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleDerivesSlug(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)

	author := env.createUser(t, "author")
	article, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID:    author.ID,
		Title:       "How to Train Your Editor!",
		Description: "desc",
		Body:        "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "how-to-train-your-editor", article.Slug)
}

func TestCreateArticleValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	author := env.createUser(t, "author")

	cases := []struct {
		name string
		in   CreateArticleInput
	}{
		{"missing title", CreateArticleInput{AuthorID: author.ID, Description: "d", Body: "b"}},
		{"missing description", CreateArticleInput{AuthorID: author.ID, Title: "t", Body: "b"}},
		{"missing body", CreateArticleInput{AuthorID: author.ID, Title: "t", Description: "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateArticle(context.Background(), tc.in)
			requireCode(t, err, models.CodeValidation)
		})
	}
}

func TestUpdateTitleLeavesSlugAlone(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	ctx := context.Background()

	author := env.createUser(t, "author")
	article := env.createArticle(t, author.ID, "Original Title")
	originalSlug := article.Slug

	newTitle := "Completely Different Title"
	updated, err := svc.UpdateArticle(ctx, author.ID, article.ID, UpdateArticleInput{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, originalSlug, updated.Slug)

	// The old slug still resolves to the renamed article.
	bySlug, err := env.articleRepo.GetBySlug(ctx, originalSlug)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, article.ID, bySlug.ID)
}

func TestUpdateArticleRequiresAuthor(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)

	author := env.createUser(t, "author")
	other := env.createUser(t, "other")
	article := env.createArticle(t, author.ID, "Protected")

	title := "Hijacked"
	_, err := svc.UpdateArticle(context.Background(), other.ID, article.ID, UpdateArticleInput{Title: &title})
	requireCode(t, err, models.CodeUnauthorized)
}

func TestSlugCollisionsAreAllowed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	ctx := context.Background()

	author := env.createUser(t, "author")
	first := env.createArticle(t, author.ID, "Same Title")
	second := env.createArticle(t, author.ID, "Same Title")

	// Same derived slug, two live documents.
	assert.Equal(t, first.Slug, second.Slug)
	assert.NotEqual(t, first.ID, second.ID)

	// Slug resolution still works; which article wins is unspecified.
	got, err := svc.GetBySlug(ctx, first.Slug)
	require.NoError(t, err)
	assert.Contains(t, []string{first.ID, second.ID}, got.ID)
}

func TestDeleteArticleRemovesComments(t *testing.T) {
	env := newTestEnv(t)
	articleSvc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	commentSvc := NewCommentService(env.commentRepo, env.articleRepo)
	ctx := context.Background()

	author := env.createUser(t, "author")
	reader := env.createUser(t, "reader")
	article := env.createArticle(t, author.ID, "Condemned")

	_, err := commentSvc.AddComment(ctx, AddCommentInput{AuthorID: reader.ID, ArticleID: article.ID, Body: "soon orphaned"})
	require.NoError(t, err)

	// Only the author may delete.
	err = articleSvc.DeleteArticle(ctx, reader.ID, article.ID, env.commentRepo)
	requireCode(t, err, models.CodeUnauthorized)

	require.NoError(t, articleSvc.DeleteArticle(ctx, author.ID, article.ID, env.commentRepo))

	_, err = env.articleRepo.GetByID(ctx, article.ID)
	requireCode(t, err, models.CodeNotFound)

	comments, err := env.commentRepo.ListByArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestFeedReturnsFollowedAuthorsOnly(t *testing.T) {
	env := newTestEnv(t)
	articleSvc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	relSvc := NewRelationshipService(env.userRepo)
	ctx := context.Background()

	reader := env.createUser(t, "reader")
	followed := env.createUser(t, "followed")
	stranger := env.createUser(t, "stranger")

	want := env.createArticle(t, followed.ID, "In the Feed")
	env.createArticle(t, stranger.ID, "Not in the Feed")

	// Following nobody: an empty feed, not an error.
	feed, err := articleSvc.Feed(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)

	require.NoError(t, relSvc.Follow(ctx, reader.ID, followed.ID))

	feed, err = articleSvc.Feed(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, want.ID, feed[0].ID)
}

func TestTagLifecycle(t *testing.T) {
	env := newTestEnv(t)
	articleSvc := NewArticleService(env.articleRepo, env.userRepo, env.tagRepo)
	tagSvc := NewTagService(env.tagRepo)
	ctx := context.Background()

	author := env.createUser(t, "author")
	article, err := articleSvc.CreateArticle(ctx, CreateArticleInput{
		AuthorID:    author.ID,
		Title:       "Tagged Piece",
		Description: "desc",
		Body:        "body",
		TagList:     []string{"golang", "writing"},
	})
	require.NoError(t, err)

	tags, err := tagSvc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"golang", "writing"}, names)

	updated, err := articleSvc.AddTag(ctx, author.ID, article.ID, "databases")
	require.NoError(t, err)
	assert.True(t, updated.HasTag("databases"))

	updated, err = articleSvc.RemoveTag(ctx, author.ID, article.ID, "golang")
	require.NoError(t, err)
	assert.False(t, updated.HasTag("golang"))

	// Removing a tag from the article does not delete the tag document.
	tags, err = tagSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}
