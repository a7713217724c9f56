package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListTags returns the names of all known tags.
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return c.JSON(fiber.Map{"tags": names})
}
