package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"studio/internal/adapter/repo"
	"studio/internal/domain"
	"studio/internal/imaging"
	"studio/internal/shoot"
	"studio/internal/storage"
)

// ModelStore persists reusable model profiles.
type ModelStore interface {
	Create(ctx context.Context, model *domain.ModelProfile) error
	GetByID(ctx context.Context, userID, id string) (*domain.ModelProfile, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ModelProfile, error)
	Delete(ctx context.Context, userID, id string) error
}

// AssetStore persists closet and location assets.
type AssetStore interface {
	Create(ctx context.Context, asset *domain.StoredAsset) error
	GetByID(ctx context.Context, userID, id string) (*domain.StoredAsset, error)
	ListByUser(ctx context.Context, userID string, category domain.AssetCategory) ([]domain.StoredAsset, error)
	Delete(ctx context.Context, userID, id string) error
}

// GalleryStore persists generated results.
type GalleryStore interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	GetByID(ctx context.Context, userID, id string) (*domain.GalleryItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.GalleryItem, error)
	Delete(ctx context.Context, userID, id string) (*domain.GalleryItem, error)
	Clear(ctx context.Context, userID string) ([]string, error)
}

// BlobStore holds image bytes under sanitized keys.
type BlobStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ReferenceReader serves reference images, typically through a cache.
type ReferenceReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Invalidate(key string)
}

var (
	_ ModelStore      = (*repo.ModelRepositoryPG)(nil)
	_ AssetStore      = (*repo.AssetRepositoryPG)(nil)
	_ GalleryStore    = (*repo.GalleryRepositoryPG)(nil)
	_ BlobStore       = (*storage.FileStore)(nil)
	_ ReferenceReader = (*storage.CachedReader)(nil)
)

// App bundles the handler dependencies.
type App struct {
	Models  ModelStore
	Assets  AssetStore
	Gallery GalleryStore

	Store BlobStore
	Refs  ReferenceReader

	Planner      *shoot.Planner
	Orchestrator *shoot.Orchestrator

	// PlanMinShots is the minimum shot count requested from the planner when
	// the caller does not ask for one.
	PlanMinShots int

	Logger zerolog.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, errorResponse{Error: slug, Message: message})
}

// currentUserID returns the session identity. Authentication is handled
// upstream; this service trusts the X-User-ID header set by the gateway.
func (a *App) currentUserID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// storeImage normalizes an uploaded payload (raw or base64, any supported
// format) to PNG, writes it under the user's prefix, and returns the key.
func (a *App) storeImage(ctx context.Context, userID, kind string, payload []byte) (string, error) {
	raw, err := imaging.DecodePayload(payload)
	if err != nil {
		return "", err
	}
	data, err := imaging.ToPNG(raw)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("users/%s/%s/%s.png", userID, kind, uuid.NewString())
	return a.Store.Write(ctx, key, data)
}

// loadReference reads a stored reference image through the cache.
func (a *App) loadReference(ctx context.Context, key string) (domain.Image, error) {
	data, err := a.Refs.Read(ctx, key)
	if err != nil {
		return domain.Image{}, err
	}
	return domain.Image{MIME: "image/png", Data: data}, nil
}

// notFoundOrInternal maps repository errors onto HTTP responses.
func (a *App) notFoundOrInternal(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", what+" not found")
		return
	}
	a.Logger.Error().Err(err).Msg("handler: repository failure")
	a.error(w, http.StatusInternalServerError, "internal", "failed to load "+what)
}
