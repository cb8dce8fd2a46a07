package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studio/internal/domain"
)

// AssetRepositoryPG stores closet and location assets in PostgreSQL.
type AssetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAssetRepository constructs the repository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepositoryPG {
	return &AssetRepositoryPG{pool: pool}
}

// Create inserts a new stored asset.
func (r *AssetRepositoryPG) Create(ctx context.Context, asset *domain.StoredAsset) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO assets (id, user_id, category, name, image_key)
VALUES ($1, $2, $3, $4, $5);
`, asset.ID, asset.UserID, asset.Category, asset.Name, asset.ImageKey)
	return err
}

// GetByID fetches an asset owned by the user.
func (r *AssetRepositoryPG) GetByID(ctx context.Context, userID, id string) (*domain.StoredAsset, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, category, name, image_key, created_at
FROM assets
WHERE id = $1 AND user_id = $2;
`, id, userID)
	return scanAsset(row)
}

// ListByUser returns the user's assets, optionally filtered by category,
// newest first. An empty category returns everything.
func (r *AssetRepositoryPG) ListByUser(ctx context.Context, userID string, category domain.AssetCategory) ([]domain.StoredAsset, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, category, name, image_key, created_at
FROM assets
WHERE user_id = $1
  AND ($2 = '' OR category = $2)
ORDER BY created_at DESC;
`, userID, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.StoredAsset
	for rows.Next() {
		var a domain.StoredAsset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Category, &a.Name, &a.ImageKey, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// Delete removes an asset owned by the user.
func (r *AssetRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAsset(row pgx.Row) (*domain.StoredAsset, error) {
	var a domain.StoredAsset
	if err := row.Scan(&a.ID, &a.UserID, &a.Category, &a.Name, &a.ImageKey, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
