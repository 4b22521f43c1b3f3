package api

import (
	"context"
	"net/http"

	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/pkg/logger"
)

// AnalyticsHandler serves the filtered analytics views.
type AnalyticsHandler struct {
	deps AnalyticsProvider
	log  logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsProvider, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps, log: log.Named("analytics")}
}

// HandleConsistency handles GET /consistency.
func (h *AnalyticsHandler) HandleConsistency(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Consistency(ctx, f)
	})
}

// HandleLostTime handles GET /lost-time.
func (h *AnalyticsHandler) HandleLostTime(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.LostTimes(ctx, f)
	})
}

// HandleStints handles GET /stints.
func (h *AnalyticsHandler) HandleStints(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Stints(ctx, f)
	})
}

// HandlePerformance handles GET /performance.
func (h *AnalyticsHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Performance(ctx, f)
	})
}

// HandleSummary handles GET /summary.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Summary(ctx, f)
	})
}

// HandleLaps handles GET /laps.
func (h *AnalyticsHandler) HandleLaps(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Laps(ctx, f)
	})
}

// HandleSectors handles GET /sectors.
func (h *AnalyticsHandler) HandleSectors(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.Sectors(ctx, f)
	})
}

// HandlePitStops handles GET /pit-stops.
func (h *AnalyticsHandler) HandlePitStops(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f filter.Filter) (any, error) {
		return h.deps.PitStops(ctx, f)
	})
}

func (h *AnalyticsHandler) serve(w http.ResponseWriter, r *http.Request, view func(context.Context, filter.Filter) (any, error)) {
	f, err := filter.Parse(r.URL.Query(), h.deps.DefaultFilter())
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := view(r.Context(), f)
	if err != nil {
		h.log.Debug(r.Context(), "view failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFromContext(r.Context())),
			logger.Error(err))
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Filter: f, Data: data})
}
