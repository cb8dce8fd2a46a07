package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"studio/internal/domain"
	"studio/internal/shoot"
	"studio/pkg/zip"
)

type galleryItemResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Prompt    string    `json:"prompt"`
	ImageKey  string    `json:"image_key"`
	CreatedAt time.Time `json:"created_at"`
}

func toGalleryItemResponse(item domain.GalleryItem) galleryItemResponse {
	return galleryItemResponse{
		ID:        item.ID,
		Category:  string(item.Category),
		Prompt:    item.Prompt,
		ImageKey:  item.ImageKey,
		CreatedAt: item.CreatedAt,
	}
}

func (a *App) ListGallery(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Gallery.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: list gallery")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load gallery")
		return
	}
	out := make([]galleryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toGalleryItemResponse(item))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) GalleryImage(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	item, err := a.Gallery.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery item")
		return
	}
	data, err := a.Store.Read(r.Context(), item.ImageKey)
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *App) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	item, err := a.Gallery.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery item")
		return
	}
	if err := a.Store.Delete(r.Context(), item.ImageKey); err != nil {
		a.Logger.Warn().Err(err).Str("key", item.ImageKey).Msg("handler: orphaned gallery image")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ClearGallery(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	keys, err := a.Gallery.Clear(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: clear gallery")
		a.error(w, http.StatusInternalServerError, "internal", "failed to clear gallery")
		return
	}
	for _, key := range keys {
		if err := a.Store.Delete(r.Context(), key); err != nil {
			a.Logger.Warn().Err(err).Str("key", key).Msg("handler: orphaned gallery image")
		}
	}
	a.json(w, http.StatusOK, map[string]any{"removed": len(keys)})
}

func (a *App) ArchiveGallery(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Gallery.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: archive gallery")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load gallery")
		return
	}
	if len(items) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "gallery is empty")
		return
	}

	assets := make([]zip.Asset, 0, len(items))
	for i, item := range items {
		data, err := a.Store.Read(r.Context(), item.ImageKey)
		if err != nil {
			a.Logger.Warn().Err(err).Str("key", item.ImageKey).Msg("handler: skip unreadable gallery image")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: fmt.Sprintf("shoot_%03d_%s.png", i+1, item.Category),
			MIME:     "image/png",
			Data:     data,
		})
	}
	archive := zip.ArchiveAssets(assets)
	if len(archive) == 0 {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

type remixRequest struct {
	Instruction string `json:"instruction"`
}

func (a *App) RemixGalleryItem(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req remixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}
	item, err := a.Gallery.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery item")
		return
	}
	base, err := a.loadReference(r.Context(), item.ImageKey)
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery image")
		return
	}

	prompt := shoot.RemixPrompt(item.Prompt, req.Instruction)
	artifact, err := a.Orchestrator.EditImage(r.Context(), prompt, []domain.RoleImage{{Image: base}})
	if err != nil {
		a.respondEditFailure(w, err)
		return
	}
	saved, err := a.saveArtifact(r, userID, item.Category, artifact)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: persist remix")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save result")
		return
	}
	a.json(w, http.StatusCreated, toGalleryItemResponse(*saved))
}

type accessoryRequest struct {
	Description      string `json:"description"`
	AccessoryAssetID string `json:"accessory_asset_id,omitempty"`
	AccessoryImage   []byte `json:"accessory_image,omitempty"`
}

func (a *App) AccessoryGalleryItem(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req accessoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "description is required")
		return
	}
	item, err := a.Gallery.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery item")
		return
	}
	base, err := a.loadReference(r.Context(), item.ImageKey)
	if err != nil {
		a.notFoundOrInternal(w, err, "gallery image")
		return
	}

	refs := []domain.RoleImage{{Image: base}}
	switch {
	case req.AccessoryAssetID != "":
		asset, err := a.Assets.GetByID(r.Context(), userID, req.AccessoryAssetID)
		if err != nil {
			a.notFoundOrInternal(w, err, "accessory asset")
			return
		}
		img, err := a.loadReference(r.Context(), asset.ImageKey)
		if err != nil {
			a.notFoundOrInternal(w, err, "accessory image")
			return
		}
		refs = append(refs, domain.RoleImage{Role: domain.RoleAccessory, Image: img})
	case len(req.AccessoryImage) > 0:
		key, err := a.storeImage(r.Context(), userID, "assets/accessory", req.AccessoryImage)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "accessory image: "+err.Error())
			return
		}
		img, err := a.loadReference(r.Context(), key)
		if err != nil {
			a.notFoundOrInternal(w, err, "accessory image")
			return
		}
		refs = append(refs, domain.RoleImage{Role: domain.RoleAccessory, Image: img})
	}

	prompt := shoot.AccessoryPrompt(item.Prompt, req.Description)
	artifact, err := a.Orchestrator.EditImage(r.Context(), prompt, refs)
	if err != nil {
		a.respondEditFailure(w, err)
		return
	}
	saved, err := a.saveArtifact(r, userID, domain.GalleryCategoryAccessory, artifact)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: persist accessory edit")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save result")
		return
	}
	a.json(w, http.StatusCreated, toGalleryItemResponse(*saved))
}

// respondEditFailure translates edit-generation failures: the provider not
// returning usable image bytes is reported as a failed upstream dependency
// rather than an internal bug.
func (a *App) respondEditFailure(w http.ResponseWriter, err error) {
	a.Logger.Warn().Err(err).Msg("handler: edit generation failed")
	switch {
	case errors.Is(err, domain.ErrNoImageInReply), errors.Is(err, domain.ErrLinkReturned), errors.Is(err, domain.ErrTransport):
		a.error(w, http.StatusBadGateway, "upstream_failed", err.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", "edit generation failed")
	}
}
