package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studio/internal/domain"
)

type createAssetRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Image    []byte `json:"image"`
}

type assetResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	ImageKey  string    `json:"image_key"`
	CreatedAt time.Time `json:"created_at"`
}

func toAssetResponse(a domain.StoredAsset) assetResponse {
	return assetResponse{
		ID:        a.ID,
		Category:  string(a.Category),
		Name:      a.Name,
		ImageKey:  a.ImageKey,
		CreatedAt: a.CreatedAt,
	}
}

func parseAssetCategory(s string) (domain.AssetCategory, bool) {
	switch domain.AssetCategory(s) {
	case domain.AssetCategoryCloset, domain.AssetCategoryLocation:
		return domain.AssetCategory(s), true
	}
	return "", false
}

func (a *App) CreateAsset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req createAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	category, ok := parseAssetCategory(req.Category)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "category must be closet or location")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if len(req.Image) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image is required")
		return
	}

	key, err := a.storeImage(r.Context(), userID, "assets/"+string(category), req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image: "+err.Error())
		return
	}
	asset := domain.StoredAsset{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: category,
		Name:     strings.TrimSpace(req.Name),
		ImageKey: key,
	}
	if err := a.Assets.Create(r.Context(), &asset); err != nil {
		a.Logger.Error().Err(err).Msg("handler: create asset")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save asset")
		return
	}
	asset.CreatedAt = time.Now().UTC()
	a.json(w, http.StatusCreated, toAssetResponse(asset))
}

func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var category domain.AssetCategory
	if q := r.URL.Query().Get("category"); q != "" {
		parsed, ok := parseAssetCategory(q)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "category must be closet or location")
			return
		}
		category = parsed
	}
	assets, err := a.Assets.ListByUser(r.Context(), userID, category)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: list assets")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load assets")
		return
	}
	items := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		items = append(items, toAssetResponse(asset))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	id := chi.URLParam(r, "id")
	asset, err := a.Assets.GetByID(r.Context(), userID, id)
	if err != nil {
		a.notFoundOrInternal(w, err, "asset")
		return
	}
	if err := a.Assets.Delete(r.Context(), userID, id); err != nil {
		a.notFoundOrInternal(w, err, "asset")
		return
	}
	if err := a.Store.Delete(r.Context(), asset.ImageKey); err != nil {
		a.Logger.Warn().Err(err).Str("key", asset.ImageKey).Msg("handler: orphaned asset image")
	}
	a.Refs.Invalidate(asset.ImageKey)
	w.WriteHeader(http.StatusNoContent)
}
