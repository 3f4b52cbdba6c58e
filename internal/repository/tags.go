package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beetdev/recipe-service/internal/models"
)

// ListTags returns the user's tags in reverse lexical order by name.
func (r *Repository) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	query := `
		SELECT id, user_id, name
		FROM tags
		WHERE user_id = $1
		ORDER BY name DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
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
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag renames the user's tag. Renaming onto an existing name for the
// same user reports ErrDuplicate.
func (r *Repository) UpdateTag(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	query := `
		UPDATE tags
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name`
	err := r.db.QueryRowContext(ctx, query, name, tagID, userID).
		Scan(&tag.ID, &tag.UserID, &tag.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes the user's tag. Join rows to recipes are removed by the
// foreign key cascade; the recipes themselves are untouched.
func (r *Repository) DeleteTag(ctx context.Context, userID, tagID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND user_id = $2`, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// getOrCreateTag resolves a (user, name) pair to a tag row inside tx,
// creating it when absent. The ON CONFLICT guard makes this safe against a
// concurrent create of the same name.
func getOrCreateTag(ctx context.Context, tx *sql.Tx, userID int64, name string) (models.Tag, error) {
	tag := models.Tag{UserID: userID, Name: name}
	insert := `
		INSERT INTO tags (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id`
	err := tx.QueryRowContext(ctx, insert, userID, name).Scan(&tag.ID)
	if err == nil {
		return tag, nil
	}
	if err != sql.ErrNoRows {
		return tag, fmt.Errorf("failed to create tag: %w", err)
	}

	// Row already existed, fetch it.
	err = tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE user_id = $1 AND name = $2`, userID, name).
		Scan(&tag.ID)
	if err != nil {
		return tag, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}
