package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/pitwall/internal/adapters/http/api"
	"github.com/okian/pitwall/internal/adapters/http/site"
	"github.com/okian/pitwall/internal/adapters/http/swagger"
	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/adapters/source"
	app "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.RegisterRuntimeCollectors()

	store := repository.NewStore(repository.WithLogger(log.Named("store")))
	loader, watchPaths := newLoader(cfg)
	if _, err := store.Reload(ctx, loader); err != nil {
		log.Fatal(ctx, "failed to load dataset", logger.String("source", cfg.DataSource), logger.Error(err))
	}
	if cfg.WatchData && len(watchPaths) > 0 {
		go func() {
			if err := store.Watch(ctx, watchPaths, loader); err != nil {
				log.Error(ctx, "dataset watcher stopped", logger.Error(err))
			}
		}()
	}

	svc := newService(cfg, store, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// newLoader picks the dataset source and the files worth watching.
func newLoader(cfg *config.Config) (source.Loader, []string) {
	if cfg.DataSource == config.SourceSQLite {
		return source.SQLite{DSN: cfg.SQLiteDSN}, nil
	}
	files := source.JSONFiles{LapsPath: cfg.LapsPath, PitStopsPath: cfg.PitStopsPath}
	return files, files.Paths()
}

func newService(cfg *config.Config, store *repository.Store, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithTopN(cfg.TopN),
		app.WithReportWorkers(cfg.ReportWorkers),
		app.WithDefaultEvent(cfg.DefaultSeason, cfg.DefaultRound),
		app.WithTeamColors(cfg.TeamPalette()),
	)
}

// newHandler registers every route and wraps the mux in the shared middleware.
func newHandler(cfg *config.Config, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(mux)
	site.Register(mux)
	api.NewServer(svc, log.Named("api")).Register(mux)

	return api.Chain(mux,
		api.RequestID,
		api.AccessLog(log.Named("http")),
		api.CORS(cfg.CORSOrigins),
	)
}
