package service

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/repository"
)

// TagService provides tag enumeration.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List returns all tags, cache-aside.
func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.CacheAside(ctx, cache.TagsKey, &tags, time.Minute, func() error {
		all, err := s.tagRepo.All(ctx)
		if err != nil {
			return err
		}
		tags = all
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
