package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides registration, authentication, and profile lookups.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the fields needed to register a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Bio      string
	Image    string
}

// Profile is a public view of a user, relative to an optional viewer.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the input, hashes the password, and persists the user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewStoreError(err)
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordDigest: string(digest),
		Bio:            in.Bio,
		Image:          in.Image,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetProfile returns the public profile for a username. When viewerID is
// non-empty, Following reflects whether the viewer follows the user.
func (s *UserService) GetProfile(ctx context.Context, username, viewerID string) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	profile := &Profile{
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}
	if viewerID != "" {
		viewer, err := s.userRepo.GetByID(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		profile.Following = viewer.Follows(user.ID)
	}
	return profile, nil
}
