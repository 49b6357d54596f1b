package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/immofind/ads-service/internal/adapter/httpserver/middleware"
	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/platform/metrics"
	"github.com/immofind/ads-service/internal/usecase"
	"go.uber.org/zap"
)

const defaultTrendingLimit = 10

// AdHandler serves the public catalog and view-accounting endpoints.
type AdHandler struct {
	catalog *usecase.CatalogUseCase
	views   *usecase.ViewsUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewAdHandler(catalog *usecase.CatalogUseCase, views *usecase.ViewsUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *AdHandler {
	return &AdHandler{
		catalog: catalog,
		views:   views,
		metrics: mm,
		logger:  logger,
	}
}

type adResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Surface   float64  `json:"surface"`
	Rooms     int      `json:"rooms"`
	Published string   `json:"published"`
	Enabled   bool     `json:"enabled"`
	Seen      []string `json:"seen"`
	// CreatedBy is the owner id on list responses and the owner's public
	// profile on the single-ad response.
	CreatedBy interface{} `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

func toAdResponse(ad *entity.Ad, detail bool) adResponse {
	resp := adResponse{
		ID:        ad.ID,
		Title:     ad.Title,
		Location:  ad.Address,
		Type:      ad.PropertyType,
		Price:     ad.Price,
		Surface:   ad.Surface,
		Rooms:     ad.Rooms,
		Published: ad.Published,
		Enabled:   ad.Enabled,
		Seen:      ad.Seen,
		CreatedBy: ad.CreatedBy,
		CreatedAt: ad.CreatedAt,
	}
	if resp.Seen == nil {
		resp.Seen = []string{}
	}
	if detail {
		// The single-ad response carries the owner profile and hides the
		// update timestamp.
		if ad.Owner != nil {
			resp.CreatedBy = ad.Owner
		}
	} else {
		updatedAt := ad.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func toAdResponses(ads []*entity.Ad) []adResponse {
	out := make([]adResponse, len(ads))
	for i, ad := range ads {
		out[i] = toAdResponse(ad, false)
	}
	return out
}

// HandleListAds serves GET /api/ads?offset=N.
func (h *AdHandler) HandleListAds(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("ListAds", time.Now())

	offset := parseOffset(r.URL.Query().Get("offset"))
	ads, err := h.catalog.ListAds(r.Context(), offset)
	if err != nil {
		h.logger.Error("Failed to list ads", zap.Int64("offset", offset), zap.Error(err))
		h.respondError(w, "ListAds", http.StatusInternalServerError, "Server Error")
		return
	}
	h.respondJSON(w, http.StatusOK, toAdResponses(ads))
}

// HandleSearchAds serves GET /api/ads/search with the optional filter
// parameters.
func (h *AdHandler) HandleSearchAds(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("SearchAds", time.Now())

	filter := parseSearchFilter(r.URL.Query())
	ads, err := h.catalog.SearchAds(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to search ads", zap.Error(err))
		h.respondError(w, "SearchAds", http.StatusInternalServerError, "Server Error")
		return
	}
	h.respondJSON(w, http.StatusOK, toAdResponses(ads))
}

// HandleTotalPages serves GET /api/ads/pages.
func (h *AdHandler) HandleTotalPages(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("TotalPages", time.Now())

	pages, err := h.catalog.CountPages(r.Context())
	if err != nil {
		h.logger.Error("Failed to count pages", zap.Error(err))
		h.respondError(w, "TotalPages", http.StatusInternalServerError, "Server Error")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int64{"countPages": pages})
}

// HandleGetAdByID serves GET /api/ads/{adID} and accounts the view against
// the caller's identity signals.
func (h *AdHandler) HandleGetAdByID(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("GetAdByID", time.Now())

	adID := chi.URLParam(r, "adID")
	viewer := usecase.Viewer{
		UserID: middleware.UserIDFromContext(r.Context()),
		IP:     clientIP(r),
	}

	ad, err := h.views.GetAd(r.Context(), adID, viewer)
	if err != nil {
		if errors.Is(err, usecase.ErrAdNotFound) {
			h.respondError(w, "GetAdByID", http.StatusNotFound, "Advertisement not found")
			return
		}
		h.logger.Error("Failed to get ad", zap.String("ad_id", adID), zap.Error(err))
		h.respondError(w, "GetAdByID", http.StatusInternalServerError, "An error occurred")
		return
	}

	h.metrics.AdViewsTotal.Inc()
	h.respondJSON(w, http.StatusOK, map[string]adResponse{"data": toAdResponse(ad, true)})
}

// HandleTrendingAds serves GET /api/ads/trending?limit=N.
func (h *AdHandler) HandleTrendingAds(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("TrendingAds", time.Now())

	limit := int64(defaultTrendingLimit)
	if v := parseOffset(r.URL.Query().Get("limit")); v > 0 {
		limit = v
	}

	scores, err := h.views.TrendingAds(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch trending ads", zap.Error(err))
		h.respondError(w, "TrendingAds", http.StatusInternalServerError, "Server Error")
		return
	}
	h.respondJSON(w, http.StatusOK, scores)
}

// HandleHistory serves GET /api/ads/history for authenticated callers.
func (h *AdHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	defer h.metrics.ObserveLatency("History", time.Now())

	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, "History", http.StatusUnauthorized, "Authentication required")
		return
	}

	ads, err := h.views.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch viewing history", zap.String("user_id", userID), zap.Error(err))
		h.respondError(w, "History", http.StatusInternalServerError, "Server Error")
		return
	}
	h.respondJSON(w, http.StatusOK, toAdResponses(ads))
}

func (h *AdHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *AdHandler) respondError(w http.ResponseWriter, handlerName string, status int, msg string) {
	h.metrics.APIErrorsTotal.WithLabelValues(handlerName, http.StatusText(status)).Inc()
	h.respondJSON(w, status, map[string]string{"error": msg})
}
