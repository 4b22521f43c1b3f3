package api

import (
	"context"
	"net/http"

	service "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/pkg/logger"
)

// CatalogProvider lists what a dashboard can select.
type CatalogProvider interface {
	DefaultFilter() filter.Filter
	Catalog(ctx context.Context, season, round int) (service.Catalog, error)
}

// CatalogHandler serves seasons, rounds and drivers.
type CatalogHandler struct {
	deps CatalogProvider
	log  logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogProvider, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{deps: deps, log: log.Named("catalog")}
}

// HandleSeasons handles GET /seasons.
func (h *CatalogHandler) HandleSeasons(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(c service.Catalog) any { return c.Seasons })
}

// HandleRounds handles GET /rounds?season=.
func (h *CatalogHandler) HandleRounds(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(c service.Catalog) any { return c.Rounds })
}

// HandleDrivers handles GET /drivers?season=&round=. Each driver carries the
// colour the dashboard charts it with.
func (h *CatalogHandler) HandleDrivers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(c service.Catalog) any { return c.Drivers })
}

func (h *CatalogHandler) serve(w http.ResponseWriter, r *http.Request, pick func(service.Catalog) any) {
	f, err := filter.Parse(r.URL.Query(), h.deps.DefaultFilter())
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := h.deps.Catalog(r.Context(), f.Season, f.Round)
	if err != nil {
		h.log.Warn(r.Context(), "catalog failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, r, err)
		return
	}
	data := pick(cat)
	writeJSON(w, http.StatusOK, viewResponse{Filter: f, Data: data})
}
