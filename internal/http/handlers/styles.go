package handlers

import (
	"net/http"

	"studio/internal/domain"
)

type styleResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ListStyles exposes the fixed style catalog so clients can render a picker.
func (a *App) ListStyles(w http.ResponseWriter, r *http.Request) {
	presets := domain.Styles()
	items := make([]styleResponse, 0, len(presets))
	for _, preset := range presets {
		items = append(items, styleResponse{ID: string(preset.ID), DisplayName: preset.DisplayName})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
