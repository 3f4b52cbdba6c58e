package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beetdev/recipe-service/internal/models"
)

// ListRecipes returns the user's recipes newest-first with tags attached.
func (r *Repository) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	query := `
		SELECT id, user_id, title, description, time_minutes, price, link, created_at, updated_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	for i := range recipes {
		tags, err := r.tagsForRecipe(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Tags = tags
	}
	return recipes, nil
}

// GetRecipe returns the user's recipe by id. A recipe owned by another user
// reports ErrNotFound.
func (r *Repository) GetRecipe(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	query := `
		SELECT id, user_id, title, description, time_minutes, price, link, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, recipeID, userID)
	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsForRecipe(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Tags = tags
	return &recipe, nil
}

// CreateRecipe inserts the recipe and attaches its tags in one transaction,
// get-or-creating each tag name for the owner.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO recipes (user_id, title, description, time_minutes, price, link, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := tx.QueryRowContext(ctx, query,
			recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link).
			Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return attachTags(ctx, tx, recipe.UserID, recipe.ID, tagNames)
	})
	if err != nil {
		return err
	}

	tags, err := r.tagsForRecipe(ctx, recipe.ID)
	if err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

// UpdateRecipe persists the recipe's scalar fields and, when replaceTags is
// set, replaces the attachment set with the resolved tagNames (detached tags
// survive as rows). The whole update is one transaction.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string, replaceTags bool) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE recipes
			SET title = $1, description = $2, time_minutes = $3, price = $4, link = $5, updated_at = CURRENT_TIMESTAMP
			WHERE id = $6 AND user_id = $7
			RETURNING created_at, updated_at`
		err := tx.QueryRowContext(ctx, query,
			recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link,
			recipe.ID, recipe.UserID).
			Scan(&recipe.CreatedAt, &recipe.UpdatedAt)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if !replaceTags {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		return attachTags(ctx, tx, recipe.UserID, recipe.ID, tagNames)
	})
	if err != nil {
		return err
	}

	tags, err := r.tagsForRecipe(ctx, recipe.ID)
	if err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

// DeleteRecipe removes the user's recipe; join rows go with it via cascade.
func (r *Repository) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1 AND user_id = $2`, recipeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func attachTags(ctx context.Context, tx *sql.Tx, userID, recipeID int64, tagNames []string) error {
	for _, name := range tagNames {
		tag, err := getOrCreateTag(ctx, tx, userID, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, recipeID, tag.ID)
		if err != nil {
			return fmt.Errorf("failed to attach tag: %w", err)
		}
	}
	return nil
}

// tagsForRecipe loads a recipe's tags in attachment (tag id) order.
func (r *Repository) tagsForRecipe(ctx context.Context, recipeID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.user_id, t.name
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = $1
		ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	return tags, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var (
		recipe      models.Recipe
		description sql.NullString
		timeMinutes sql.NullInt64
		price       sql.NullString
		link        sql.NullString
	)
	err := row.Scan(&recipe.ID, &recipe.UserID, &recipe.Title, &description,
		&timeMinutes, &price, &link, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err == sql.ErrNoRows {
		return recipe, err
	}
	if err != nil {
		return recipe, fmt.Errorf("failed to scan recipe: %w", err)
	}
	if description.Valid {
		recipe.Description = &description.String
	}
	if timeMinutes.Valid {
		minutes := int(timeMinutes.Int64)
		recipe.TimeMinutes = &minutes
	}
	if price.Valid {
		recipe.Price = &price.String
	}
	if link.Valid {
		recipe.Link = &link.String
	}
	return recipe, nil
}
