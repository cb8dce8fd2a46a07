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

type createModelRequest struct {
	Name string `json:"name"`
	// Images are raw or base64 payloads; FaceImage/BodyImage are preferred,
	// Image is the legacy single-photo form.
	FaceImage []byte `json:"face_image,omitempty"`
	BodyImage []byte `json:"body_image,omitempty"`
	Image     []byte `json:"image,omitempty"`
}

type modelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FaceKey   string    `json:"face_key,omitempty"`
	BodyKey   string    `json:"body_key,omitempty"`
	ImageKey  string    `json:"image_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toModelResponse(m domain.ModelProfile) modelResponse {
	return modelResponse{
		ID:        m.ID,
		Name:      m.Name,
		FaceKey:   m.FaceKey,
		BodyKey:   m.BodyKey,
		ImageKey:  m.ImageKey,
		CreatedAt: m.CreatedAt,
	}
}

func (a *App) CreateModel(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req createModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	hasSplit := len(req.FaceImage) > 0 && len(req.BodyImage) > 0
	if !hasSplit && len(req.Image) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "either face_image and body_image, or a single image, is required")
		return
	}

	model := domain.ModelProfile{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
	}

	var err error
	if hasSplit {
		if model.FaceKey, err = a.storeImage(r.Context(), userID, "models/face", req.FaceImage); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "face image: "+err.Error())
			return
		}
		if model.BodyKey, err = a.storeImage(r.Context(), userID, "models/body", req.BodyImage); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "body image: "+err.Error())
			return
		}
	} else {
		if model.ImageKey, err = a.storeImage(r.Context(), userID, "models", req.Image); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "image: "+err.Error())
			return
		}
	}

	if err := a.Models.Create(r.Context(), &model); err != nil {
		a.Logger.Error().Err(err).Msg("handler: create model")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save model")
		return
	}
	model.CreatedAt = time.Now().UTC()
	a.json(w, http.StatusCreated, toModelResponse(model))
}

func (a *App) ListModels(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	models, err := a.Models.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handler: list models")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load models")
		return
	}
	items := make([]modelResponse, 0, len(models))
	for _, m := range models {
		items = append(items, toModelResponse(m))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DeleteModel(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	id := chi.URLParam(r, "id")
	model, err := a.Models.GetByID(r.Context(), userID, id)
	if err != nil {
		a.notFoundOrInternal(w, err, "model")
		return
	}
	if err := a.Models.Delete(r.Context(), userID, id); err != nil {
		a.notFoundOrInternal(w, err, "model")
		return
	}
	for _, key := range []string{model.FaceKey, model.BodyKey, model.ImageKey} {
		if key == "" {
			continue
		}
		if err := a.Store.Delete(r.Context(), key); err != nil {
			a.Logger.Warn().Err(err).Str("key", key).Msg("handler: orphaned model image")
		}
		a.Refs.Invalidate(key)
	}
	w.WriteHeader(http.StatusNoContent)
}
