package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studio/internal/domain"
)

// ModelRepositoryPG stores reusable model profiles in PostgreSQL.
type ModelRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewModelRepository constructs the repository.
func NewModelRepository(pool *pgxpool.Pool) *ModelRepositoryPG {
	return &ModelRepositoryPG{pool: pool}
}

// Create inserts a new model profile.
func (r *ModelRepositoryPG) Create(ctx context.Context, model *domain.ModelProfile) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO models (id, user_id, name, face_key, body_key, image_key)
VALUES ($1, $2, $3, $4, $5, $6);
`, model.ID, model.UserID, model.Name, model.FaceKey, model.BodyKey, model.ImageKey)
	return err
}

// GetByID fetches a model profile owned by the user.
func (r *ModelRepositoryPG) GetByID(ctx context.Context, userID, id string) (*domain.ModelProfile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, name, face_key, body_key, image_key, created_at
FROM models
WHERE id = $1 AND user_id = $2;
`, id, userID)
	return scanModel(row)
}

// ListByUser returns the user's model profiles, newest first.
func (r *ModelRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.ModelProfile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, name, face_key, body_key, image_key, created_at
FROM models
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []domain.ModelProfile
	for rows.Next() {
		var m domain.ModelProfile
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.FaceKey, &m.BodyKey, &m.ImageKey, &m.CreatedAt); err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models, nil
}

// Delete removes a model profile owned by the user.
func (r *ModelRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM models WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanModel(row pgx.Row) (*domain.ModelProfile, error) {
	var m domain.ModelProfile
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.FaceKey, &m.BodyKey, &m.ImageKey, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
