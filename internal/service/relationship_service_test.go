package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.userRepo)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	stored, err := env.userRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, stored.Following)
}

func TestFollowDoesNotTouchTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.userRepo)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	storedBob, err := env.userRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, storedBob.Following)

	// The edge is one-directional.
	following, err := svc.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.userRepo)

	alice := env.createUser(t, "alice")

	err := svc.Follow(context.Background(), alice.ID, "no-such-user")
	requireCode(t, err, models.CodeNotFound)
}

func TestUnfollowNotFollowing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.userRepo)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	// Never followed: an error, not a no-op.
	err := svc.Unfollow(ctx, alice.ID, bob.ID)
	requireCode(t, err, models.CodeNotFollowing)

	// Second unfollow after a real one fails the same way.
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	err = svc.Unfollow(ctx, alice.ID, bob.ID)
	requireCode(t, err, models.CodeNotFollowing)
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.userRepo)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, carol.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	stored, err := env.userRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{carol.ID}, stored.Following)

	following, err := svc.IsFollowing(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, following)
}
