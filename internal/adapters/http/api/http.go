// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider
	CatalogProvider
	AnalyticsProvider
	ReportProvider
}

// AnalyticsProvider computes the filtered dashboard views.
type AnalyticsProvider interface {
	DefaultFilter() filter.Filter
	Consistency(ctx context.Context, f filter.Filter) ([]model.ConsistencyResult, error)
	LostTimes(ctx context.Context, f filter.Filter) ([]model.LostTimeRecord, error)
	Stints(ctx context.Context, f filter.Filter) (service.StintsView, error)
	Performance(ctx context.Context, f filter.Filter) ([]model.DriverPerformanceRecord, error)
	Summary(ctx context.Context, f filter.Filter) (analytics.Summary, error)
	Laps(ctx context.Context, f filter.Filter) (service.LapsView, error)
	Sectors(ctx context.Context, f filter.Filter) (service.SectorsView, error)
	PitStops(ctx context.Context, f filter.Filter) ([]analytics.PitStopBar, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogHandler   *CatalogHandler
	analyticsHandler *AnalyticsHandler
	reportHandler    *ReportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		catalogHandler:   NewCatalogHandler(deps, log),
		analyticsHandler: NewAnalyticsHandler(deps, log),
		reportHandler:    NewReportHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(get(s.statsHandler.HandleStats), "stats"))

	mux.HandleFunc("/seasons", MetricsMiddleware(get(s.catalogHandler.HandleSeasons), "seasons"))
	mux.HandleFunc("/rounds", MetricsMiddleware(get(s.catalogHandler.HandleRounds), "rounds"))
	mux.HandleFunc("/drivers", MetricsMiddleware(get(s.catalogHandler.HandleDrivers), "drivers"))

	mux.HandleFunc("/consistency", MetricsMiddleware(get(s.analyticsHandler.HandleConsistency), "consistency"))
	mux.HandleFunc("/lost-time", MetricsMiddleware(get(s.analyticsHandler.HandleLostTime), "lost_time"))
	mux.HandleFunc("/stints", MetricsMiddleware(get(s.analyticsHandler.HandleStints), "stints"))
	mux.HandleFunc("/performance", MetricsMiddleware(get(s.analyticsHandler.HandlePerformance), "performance"))
	mux.HandleFunc("/summary", MetricsMiddleware(get(s.analyticsHandler.HandleSummary), "summary"))
	mux.HandleFunc("/laps", MetricsMiddleware(get(s.analyticsHandler.HandleLaps), "laps"))
	mux.HandleFunc("/sectors", MetricsMiddleware(get(s.analyticsHandler.HandleSectors), "sectors"))
	mux.HandleFunc("/pit-stops", MetricsMiddleware(get(s.analyticsHandler.HandlePitStops), "pit_stops"))

	mux.HandleFunc("/report", MetricsMiddleware(get(s.reportHandler.HandleReport), "report"))
	mux.HandleFunc("/reports", MetricsMiddleware(get(s.reportHandler.HandleReports), "reports"))
}

// get rejects every method but GET and HEAD.
func get(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, r, fmt.Errorf("%w: %s", ErrMethodNotAllowed, r.Method))
			return
		}
		next(w, r)
	}
}

// viewResponse carries a computed view with the filter that produced it.
type viewResponse struct {
	Filter filter.Filter `json:"filter"`
	Data   any           `json:"data"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	metrics.RecordHTTPError(r.URL.Path, code)
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}
