package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/adapters/source"
	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
)

func testDataset() *source.Dataset {
	lap := func(n int, t float64) model.LapRecord {
		return model.LapRecord{
			Lap:       model.Lap{Season: 2025, Round: 1, Event: "Bahrain Grand Prix", Driver: "VER", DriverFullName: "Max Verstappen"},
			Team:      "Red Bull Racing",
			LapNumber: n,
			LapTime:   model.Float(t),
			Compound:  model.String("MEDIUM"),
		}
	}
	return &source.Dataset{
		Laps: []model.LapRecord{lap(1, 95), lap(2, 94), lap(3, 96)},
		PitStops: []model.PitStopRecord{{
			Season: 2025, Round: 1, LapNumber: 2, DriverID: "VER", DriverName: "Max Verstappen",
			Duration: model.Float(22.5), Compound: model.String("HARD"),
		}},
	}
}

func TestConfigFromEnv(t *testing.T) {
	convey.Convey("Given PITWALL_ environment variables", t, func() {
		_ = os.Setenv("PITWALL_ADDR", ":8181")
		_ = os.Setenv("PITWALL_DATA_SOURCE", "sqlite")
		_ = os.Setenv("PITWALL_TOP_N", "5")
		defer func() {
			_ = os.Unsetenv("PITWALL_ADDR")
			_ = os.Unsetenv("PITWALL_DATA_SOURCE")
			_ = os.Unsetenv("PITWALL_TOP_N")
		}()

		convey.Convey("Then configuration loads with the overrides", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
			convey.So(cfg.DataSource, convey.ShouldEqual, config.SourceSQLite)
			convey.So(cfg.TopN, convey.ShouldEqual, 5)
		})
	})
}

func TestNewLoader(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		cfg := config.New()

		convey.Convey("When the source is json", func() {
			loader, paths := newLoader(cfg)

			convey.Convey("Then both files are loaded and watched", func() {
				convey.So(loader, convey.ShouldHaveSameTypeAs, source.JSONFiles{})
				convey.So(paths, convey.ShouldResemble, []string{cfg.LapsPath, cfg.PitStopsPath})
			})
		})

		convey.Convey("When the source is sqlite", func() {
			cfg.DataSource = config.SourceSQLite
			loader, paths := newLoader(cfg)

			convey.Convey("Then the database is used and nothing is watched", func() {
				convey.So(loader, convey.ShouldResemble, source.SQLite{DSN: cfg.SQLiteDSN})
				convey.So(paths, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a fully wired handler", t, func() {
		cfg := config.New()
		store := repository.NewStore()
		store.Replace(testDataset())
		h := newHandler(cfg, newService(cfg, store, logger.Nop()), logger.Nop())

		for _, path := range []string{"/", "/healthz", "/stats", "/api-docs", "/openapi.yaml", "/seasons", "/consistency", "/lost-time", "/stints", "/performance", "/summary", "/laps", "/sectors", "/pit-stops", "/report"} {
			convey.Convey("Then GET "+path+" succeeds", func() {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		}

		convey.Convey("Then every response carries a request id", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			convey.So(rec.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then the analytics routes reject writes", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/consistency", nil))
			convey.So(rec.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}
