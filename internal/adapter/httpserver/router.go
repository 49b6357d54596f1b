package httpserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/immofind/ads-service/internal/adapter/httpserver/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the public API. Identity resolution is optional on every
// route; handlers that need a caller reject anonymous requests themselves.
func NewRouter(handler *AdHandler, jwtSecret string, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	r.Use(middleware.OptionalAuth(jwtSecret, logger))

	r.Route("/api/ads", func(r chi.Router) {
		r.Get("/", handler.HandleListAds)
		r.Get("/search", handler.HandleSearchAds)
		r.Get("/pages", handler.HandleTotalPages)
		r.Get("/trending", handler.HandleTrendingAds)
		r.Get("/history", handler.HandleHistory)
		r.Get("/{adID}", handler.HandleGetAdByID)
	})

	return r
}
