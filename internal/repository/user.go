package repository

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// userRepository implements UserRepository
type userRepository struct {
	store store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	raw, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		return nil, mapGetErr(err, "User", id)
	}

	var user models.User
	if err := bson.Unmarshal(raw, &user); err != nil {
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

// findOne returns the first user matching the field, or nil when none does.
func (r *userRepository) findOne(ctx context.Context, field, value string) (*models.User, error) {
	docs, err := r.store.FindBy(ctx, UsersCollection, field, value)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var user models.User
	if err := bson.Unmarshal(docs[0], &user); err != nil {
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.store.Upsert(ctx, UsersCollection, user.ID, user); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	if err := r.store.Upsert(ctx, UsersCollection, user.ID, user); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
