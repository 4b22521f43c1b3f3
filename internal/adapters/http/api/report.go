package api

import (
	"context"
	"net/http"

	service "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
)

// ReportProvider builds whole-event reports.
type ReportProvider interface {
	DefaultFilter() filter.Filter
	Report(ctx context.Context, key model.EventKey) (service.EventReport, error)
	ReportAll(ctx context.Context) ([]service.EventReport, error)
}

// ReportHandler serves event reports.
type ReportHandler struct {
	deps ReportProvider
	log  logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportProvider, log logger.Logger) *ReportHandler {
	return &ReportHandler{deps: deps, log: log.Named("report")}
}

// HandleReport handles GET /report?season=&round=.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	f, err := filter.Parse(r.URL.Query(), h.deps.DefaultFilter())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := h.deps.Report(r.Context(), f.Key())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleReports handles GET /reports, one report per loaded event.
func (h *ReportHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	reps, err := h.deps.ReportAll(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "reports failed", logger.Error(err))
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reps)
}
