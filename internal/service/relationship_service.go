package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// RelationshipService maintains the directed follow graph between users.
// The graph is stored inline on the follower's own document, so every
// operation here is a single-document write and inherits the store's
// per-document atomicity.
type RelationshipService struct {
	userRepo repository.UserRepository
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(userRepo repository.UserRepository) *RelationshipService {
	return &RelationshipService{userRepo: userRepo}
}

// Follow adds targetID to the follower's following list. Following a user
// twice is a no-op success: the list never holds duplicates. The target's
// document is never touched.
func (s *RelationshipService) Follow(ctx context.Context, followerID, targetID string) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return err
	}

	if follower.Follows(targetID) {
		return nil
	}

	follower.Following = append(follower.Following, targetID)
	return s.userRepo.Update(ctx, follower)
}

// Unfollow removes targetID from the follower's following list. Unlike
// Follow, a redundant call is an error: unfollowing someone you do not
// follow fails with NOT_FOLLOWING. Callers depending on the previous
// system's behavior rely on this asymmetry.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return err
	}

	if !follower.Follows(targetID) {
		return models.NewNotFollowingError(targetID)
	}

	kept := follower.Following[:0]
	for _, id := range follower.Following {
		if id != targetID {
			kept = append(kept, id)
		}
	}
	follower.Following = kept
	return s.userRepo.Update(ctx, follower)
}

// IsFollowing reports whether follower currently follows target. Read-only.
func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return false, err
	}
	return follower.Follows(targetID), nil
}
