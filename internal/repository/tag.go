package repository

import (
	"context"

	"quill/internal/models"
	"quill/internal/store"

	"github.com/google/uuid"
)

// TagRepository defines the interface for tag enumeration and creation.
type TagRepository interface {
	All(ctx context.Context) ([]*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
}

type tagRepository struct {
	store store.Store
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(s store.Store) TagRepository {
	return &tagRepository{store: s}
}

func (r *tagRepository) All(ctx context.Context) ([]*models.Tag, error) {
	// Every tag document carries type=tag, which doubles as the secondary
	// index for full enumeration.
	docs, err := r.store.FindBy(ctx, TagsCollection, "type", "tag")
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return decodeAll[models.Tag](docs)
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	docs, err := r.store.FindBy(ctx, TagsCollection, "name", name)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	tags, err := decodeAll[models.Tag](docs)
	if err != nil {
		return nil, err
	}
	return tags[0], nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	doc := struct {
		ID   string `bson:"_id"`
		Name string `bson:"name"`
		Type string `bson:"type"`
	}{ID: tag.ID, Name: tag.Name, Type: "tag"}

	if err := r.store.Upsert(ctx, TagsCollection, tag.ID, doc); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
