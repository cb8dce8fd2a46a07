package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studio/internal/domain"
)

// GalleryRepositoryPG stores generated shoot results in PostgreSQL.
type GalleryRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository constructs the repository.
func NewGalleryRepository(pool *pgxpool.Pool) *GalleryRepositoryPG {
	return &GalleryRepositoryPG{pool: pool}
}

// Create inserts a new gallery item.
func (r *GalleryRepositoryPG) Create(ctx context.Context, item *domain.GalleryItem) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO gallery (id, user_id, category, prompt, image_key)
VALUES ($1, $2, $3, $4, $5);
`, item.ID, item.UserID, item.Category, item.Prompt, item.ImageKey)
	return err
}

// GetByID fetches a gallery item owned by the user.
func (r *GalleryRepositoryPG) GetByID(ctx context.Context, userID, id string) (*domain.GalleryItem, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, category, prompt, image_key, created_at
FROM gallery
WHERE id = $1 AND user_id = $2;
`, id, userID)

	var item domain.GalleryItem
	if err := row.Scan(&item.ID, &item.UserID, &item.Category, &item.Prompt, &item.ImageKey, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListByUser returns the user's gallery, newest first.
func (r *GalleryRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.GalleryItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, category, prompt, image_key, created_at
FROM gallery
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.GalleryItem
	for rows.Next() {
		var item domain.GalleryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Category, &item.Prompt, &item.ImageKey, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a gallery item owned by the user and returns the removed
// item so callers can clean up its stored image.
func (r *GalleryRepositoryPG) Delete(ctx context.Context, userID, id string) (*domain.GalleryItem, error) {
	item, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM gallery WHERE id = $1 AND user_id = $2;`, id, userID); err != nil {
		return nil, err
	}
	return item, nil
}

// Clear removes every gallery item belonging to the user and returns the
// image keys that were referenced.
func (r *GalleryRepositoryPG) Clear(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
DELETE FROM gallery
WHERE user_id = $1
RETURNING image_key;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
