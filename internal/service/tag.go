package service

import (
	"context"
	"errors"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/models"
	"github.com/beetdev/recipe-service/internal/repository"
)

// ListTags returns the caller's tags in reverse lexical order.
func (s *Service) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// UpdateTag renames the caller's tag.
func (s *Service) UpdateTag(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error) {
	tag, err := s.store.UpdateTag(ctx, userID, tagID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("validation failed", map[string]string{
				"name": "a tag with this name already exists",
			})
		}
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the caller's tag; recipes keep their other tags.
func (s *Service) DeleteTag(ctx context.Context, userID, tagID int64) error {
	if err := s.store.DeleteTag(ctx, userID, tagID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("tag not found")
		}
		return err
	}
	s.log.Infof("Tag deleted: %d (user %d)", tagID, userID)
	return nil
}
