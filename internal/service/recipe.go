package service

import (
	"context"
	"errors"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/models"
	"github.com/beetdev/recipe-service/internal/repository"
)

// TagInput is a tag descriptor from a recipe payload.
type TagInput struct {
	Name string
}

// RecipeInput carries a full recipe payload. Tags nil means the key was
// omitted; an empty slice is an explicit empty set.
type RecipeInput struct {
	Title       string
	Description *string
	TimeMinutes *int
	Price       *string
	Link        *string
	Tags        []TagInput
}

// RecipePatch carries a partial update. Nil scalar pointers are left
// unchanged; Tags follows the same omitted-vs-empty rule as RecipeInput.
type RecipePatch struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *string
	Link        *string
	Tags        []TagInput
	TagsSet     bool
}

// ListRecipes returns the caller's recipes newest-first.
func (s *Service) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return s.store.ListRecipes(ctx, userID)
}

// GetRecipe returns the caller's recipe by id.
func (s *Service) GetRecipe(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapRecipeErr(err)
	}
	return recipe, nil
}

// CreateRecipe creates a recipe for the caller and attaches its tags,
// get-or-creating each distinct name scoped to the caller.
func (s *Service) CreateRecipe(ctx context.Context, userID int64, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
	}
	if err := s.store.CreateRecipe(ctx, recipe, distinctNames(in.Tags)); err != nil {
		return nil, err
	}
	s.log.Infof("Recipe created: %d (user %d)", recipe.ID, userID)
	return recipe, nil
}

// UpdateRecipe applies a partial or full update to the caller's recipe. A
// supplied tag list fully replaces the attachment set; an omitted one leaves
// it untouched.
func (s *Service) UpdateRecipe(ctx context.Context, userID, recipeID int64, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapRecipeErr(err)
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = patch.Description
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = patch.Price
	}
	if patch.Link != nil {
		recipe.Link = patch.Link
	}

	if err := s.store.UpdateRecipe(ctx, recipe, distinctNames(patch.Tags), patch.TagsSet); err != nil {
		return nil, mapRecipeErr(err)
	}
	s.log.Infof("Recipe updated: %d (user %d)", recipe.ID, userID)
	return recipe, nil
}

// ReplaceRecipe overwrites every scalar field of the caller's recipe and
// replaces the tag set when one is supplied.
func (s *Service) ReplaceRecipe(ctx context.Context, userID, recipeID int64, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		ID:          recipeID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
	}
	if err := s.store.UpdateRecipe(ctx, recipe, distinctNames(in.Tags), in.Tags != nil); err != nil {
		return nil, mapRecipeErr(err)
	}
	s.log.Infof("Recipe replaced: %d (user %d)", recipe.ID, userID)
	return recipe, nil
}

// DeleteRecipe removes the caller's recipe.
func (s *Service) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	if err := s.store.DeleteRecipe(ctx, userID, recipeID); err != nil {
		return mapRecipeErr(err)
	}
	s.log.Infof("Recipe deleted: %d (user %d)", recipeID, userID)
	return nil
}

// distinctNames flattens tag descriptors to names, dropping duplicates while
// preserving first-seen order. A nil input stays nil.
func distinctNames(tags []TagInput) []string {
	if tags == nil {
		return nil
	}
	names := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag.Name]; ok {
			continue
		}
		seen[tag.Name] = struct{}{}
		names = append(names, tag.Name)
	}
	return names
}

func mapRecipeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("recipe not found")
	}
	return err
}
