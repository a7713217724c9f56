package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup registers a new user and returns a signed token.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Image:    req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: user, Token: token})
}

// Login authenticates an existing user and returns a signed token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		// Credential failures use 401 rather than the 403 reserved for
		// ownership violations.
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(authResponse{User: user, Token: token})
}
