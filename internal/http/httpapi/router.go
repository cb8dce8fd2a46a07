package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"studio/internal/http/handlers"
	"studio/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/styles", app.ListStyles)

	r.Post("/v1/plan", app.PlanShots)
	r.Post("/v1/shoots", app.GenerateShoot)

	r.Route("/v1/models", func(r chi.Router) {
		r.Post("/", app.CreateModel)
		r.Get("/", app.ListModels)
		r.Delete("/{id}", app.DeleteModel)
	})

	r.Route("/v1/assets", func(r chi.Router) {
		r.Post("/", app.CreateAsset)
		r.Get("/", app.ListAssets)
		r.Delete("/{id}", app.DeleteAsset)
	})

	r.Route("/v1/gallery", func(r chi.Router) {
		r.Get("/", app.ListGallery)
		r.Delete("/", app.ClearGallery)
		r.Get("/archive", app.ArchiveGallery)
		r.Get("/{id}/image", app.GalleryImage)
		r.Delete("/{id}", app.DeleteGalleryItem)
		r.Post("/{id}/remix", app.RemixGalleryItem)
		r.Post("/{id}/accessory", app.AccessoryGalleryItem)
	})

	return r
}
