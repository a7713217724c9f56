package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the public profile for a username. When the request
// carries a valid token, the following flag reflects the viewer's graph.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	profile, err := s.userService.GetProfile(c.UserContext(), username, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// Follow adds the profile's owner to the caller's following list. Following
// someone already followed is a no-op.
func (s *Server) Follow(c *fiber.Ctx) error {
	target, err := s.resolveProfileUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.relationshipService.Follow(c.UserContext(), currentUserID(c), target.ID); err != nil {
		return respondError(c, err)
	}
	return s.respondProfile(c, target, true)
}

// Unfollow removes the profile's owner from the caller's following list.
// Unfollowing someone not followed is an error.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	target, err := s.resolveProfileUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.relationshipService.Unfollow(c.UserContext(), currentUserID(c), target.ID); err != nil {
		return respondError(c, err)
	}
	return s.respondProfile(c, target, false)
}

func (s *Server) resolveProfileUser(c *fiber.Ctx) (*models.User, error) {
	username := c.Params("username")
	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *Server) respondProfile(c *fiber.Ctx, user *models.User, following bool) error {
	return c.JSON(fiber.Map{"profile": service.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}})
}
