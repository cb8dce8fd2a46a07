package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"studio/internal/domain"
	"studio/internal/shoot"
)

type planRequest struct {
	Brief            string `json:"brief"`
	MoodboardAssetID string `json:"moodboard_asset_id,omitempty"`
	MinShots         int    `json:"min_shots,omitempty"`
}

func (a *App) PlanShots(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Brief) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "brief is required")
		return
	}
	if req.MinShots <= 0 {
		req.MinShots = a.PlanMinShots
	}

	var moodboard *domain.Image
	if req.MoodboardAssetID != "" {
		asset, err := a.Assets.GetByID(r.Context(), userID, req.MoodboardAssetID)
		if err != nil {
			a.notFoundOrInternal(w, err, "moodboard asset")
			return
		}
		img, err := a.loadReference(r.Context(), asset.ImageKey)
		if err != nil {
			a.notFoundOrInternal(w, err, "moodboard image")
			return
		}
		moodboard = &img
	}

	plan := a.Planner.Plan(r.Context(), req.Brief, moodboard, req.MinShots)
	a.json(w, http.StatusOK, plan)
}

type shootRequest struct {
	Shots           []domain.ShotBrief `json:"shots"`
	ModelID         string             `json:"model_id"`
	ApparelAssetID  string             `json:"apparel_asset_id"`
	LocationAssetID string             `json:"location_asset_id,omitempty"`
	Style           string             `json:"style"`
	AspectRatio     string             `json:"aspect_ratio,omitempty"`
}

type shotResultResponse struct {
	Index     int    `json:"index"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	GalleryID string `json:"gallery_id,omitempty"`
	ImageKey  string `json:"image_key,omitempty"`
}

func (a *App) GenerateShoot(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req shootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Shots) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one shot is required")
		return
	}
	style, err := domain.ResolveStyle(domain.StyleID(req.Style))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	ratio, err := domain.ParseAspectRatio(req.AspectRatio)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	refs, err := a.buildReferences(r, userID, req)
	if err != nil {
		a.notFoundOrInternal(w, err, "reference")
		return
	}
	_, hasLocation := refs[domain.RoleLocation]

	// Result indices come back tagged with these positions.
	for i := range req.Shots {
		req.Shots[i].Index = i
	}

	results, err := a.Orchestrator.GenerateShots(r.Context(), shoot.ShootRequest{
		Shots:            req.Shots,
		References:       refs,
		Style:            style,
		AspectRatio:      ratio,
		LocationOverride: hasLocation,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingReference) {
			a.error(w, http.StatusBadRequest, "bad_request", "an apparel reference is required")
			return
		}
		a.Logger.Error().Err(err).Msg("handler: generate shoot")
		a.error(w, http.StatusInternalServerError, "internal", "failed to run shoot")
		return
	}

	out := make([]shotResultResponse, 0, len(results))
	for _, res := range results {
		entry := shotResultResponse{Index: res.Shot.Index, Title: res.Shot.Title}
		if res.Err != nil {
			entry.Status = "failed"
			entry.Error = res.Err.Error()
			out = append(out, entry)
			continue
		}
		item, err := a.saveArtifact(r, userID, domain.GalleryCategoryApparel, res.Artifact)
		if err != nil {
			a.Logger.Error().Err(err).Int("shot", res.Shot.Index).Msg("handler: persist shot")
			entry.Status = "failed"
			entry.Error = "generated but could not be saved"
			out = append(out, entry)
			continue
		}
		entry.Status = "ok"
		entry.GalleryID = item.ID
		entry.ImageKey = item.ImageKey
		out = append(out, entry)
	}
	a.json(w, http.StatusOK, map[string]any{"results": out})
}

// buildReferences loads the request's model and asset references into an
// in-memory set, preferring split face/body photos over the legacy single one.
func (a *App) buildReferences(r *http.Request, userID string, req shootRequest) (domain.ReferenceSet, error) {
	refs := domain.ReferenceSet{}
	ctx := r.Context()

	if req.ModelID != "" {
		model, err := a.Models.GetByID(ctx, userID, req.ModelID)
		if err != nil {
			return nil, err
		}
		if model.FaceKey != "" {
			img, err := a.loadReference(ctx, model.FaceKey)
			if err != nil {
				return nil, err
			}
			refs[domain.RoleModelFace] = img
		}
		if model.BodyKey != "" {
			img, err := a.loadReference(ctx, model.BodyKey)
			if err != nil {
				return nil, err
			}
			refs[domain.RoleModelBody] = img
		}
		if model.FaceKey == "" && model.BodyKey == "" && model.ImageKey != "" {
			img, err := a.loadReference(ctx, model.ImageKey)
			if err != nil {
				return nil, err
			}
			refs[domain.RoleModel] = img
		}
	}

	if req.ApparelAssetID != "" {
		asset, err := a.Assets.GetByID(ctx, userID, req.ApparelAssetID)
		if err != nil {
			return nil, err
		}
		img, err := a.loadReference(ctx, asset.ImageKey)
		if err != nil {
			return nil, err
		}
		refs[domain.RoleApparel] = img
	}

	if req.LocationAssetID != "" {
		asset, err := a.Assets.GetByID(ctx, userID, req.LocationAssetID)
		if err != nil {
			return nil, err
		}
		img, err := a.loadReference(ctx, asset.ImageKey)
		if err != nil {
			return nil, err
		}
		refs[domain.RoleLocation] = img
	}

	return refs, nil
}

// saveArtifact writes the artifact image to the store and records it in the
// gallery.
func (a *App) saveArtifact(r *http.Request, userID string, category domain.GalleryCategory, artifact *domain.GeneratedArtifact) (*domain.GalleryItem, error) {
	key := fmt.Sprintf("users/%s/gallery/%s.png", userID, uuid.NewString())
	storedKey, err := a.Store.Write(r.Context(), key, artifact.Image.Data)
	if err != nil {
		return nil, err
	}
	item := domain.GalleryItem{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: category,
		Prompt:   artifact.Prompt,
		ImageKey: storedKey,
	}
	if err := a.Gallery.Create(r.Context(), &item); err != nil {
		return nil, err
	}
	item.CreatedAt = time.Now().UTC()
	return &item, nil
}
