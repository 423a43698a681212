package service

import (
	"context"
	"fmt"

	"github.com/prosn/api/internal/model"
)

// TagRepository defines the interface for tag reference data
type TagRepository interface {
	GetAll(ctx context.Context) ([]model.Tag, error)
	GetByCode(ctx context.Context, code string) (*model.Tag, error)
}

// TagService serves the tag vocabulary
type TagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// ListTags returns the full tag vocabulary
func (s *TagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetByCode returns one tag by its unique code
func (s *TagService) GetByCode(ctx context.Context, code string) (*model.Tag, error) {
	tag, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}
