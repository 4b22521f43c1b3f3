// Command report renders the analytics of one event, or every event, from the
// configured dataset.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/adapters/source"
	app "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errUsage = errors.New("usage")

type options struct {
	configPath   string
	season       int
	round        int
	all          bool
	format       string
	exportSQLite string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "report:", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", os.Getenv("PITWALL_CONFIG"), "YAML config file")
	fs.IntVar(&o.season, "season", 0, "season year (default from config)")
	fs.IntVar(&o.round, "round", 0, "round number (default from config)")
	fs.BoolVar(&o.all, "all", false, "report every event in the dataset")
	fs.StringVar(&o.format, "format", formatTable, "output format: table, json or yaml")
	fs.StringVar(&o.exportSQLite, "export-sqlite", "", "also write the loaded dataset to this SQLite DSN")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch o.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return o, fmt.Errorf("%w: unknown format %q", errUsage, o.format)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(ctx, o.configPath)
	if err != nil {
		return err
	}
	log := logger.New(logger.WithWriter(stderr), logger.WithoutSource())
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	var loader source.Loader = source.JSONFiles{LapsPath: cfg.LapsPath, PitStopsPath: cfg.PitStopsPath}
	if cfg.DataSource == config.SourceSQLite {
		loader = source.SQLite{DSN: cfg.SQLiteDSN}
	}

	store := repository.NewStore(repository.WithLogger(log.Named("store")))
	snap, err := store.Reload(ctx, loader)
	if err != nil {
		return err
	}

	if o.exportSQLite != "" {
		db := source.SQLite{DSN: o.exportSQLite}
		if err := db.Init(ctx); err != nil {
			return err
		}
		if err := db.Save(ctx, snap.Dataset); err != nil {
			return err
		}
		log.Info(ctx, "dataset exported", logger.String("dsn", o.exportSQLite),
			logger.Int("laps", len(snap.Dataset.Laps)), logger.Int("pit_stops", len(snap.Dataset.PitStops)))
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithTopN(cfg.TopN),
		app.WithReportWorkers(cfg.ReportWorkers),
		app.WithDefaultEvent(cfg.DefaultSeason, cfg.DefaultRound),
		app.WithTeamColors(cfg.TeamPalette()),
	)

	var reports []app.EventReport
	if o.all {
		reports, err = svc.ReportAll(ctx)
	} else {
		key := model.EventKey{Season: cfg.DefaultSeason, Round: cfg.DefaultRound}
		if o.season != 0 {
			key.Season = o.season
		}
		if o.round != 0 {
			key.Round = o.round
		}
		var r app.EventReport
		r, err = svc.Report(ctx, key)
		reports = []app.EventReport{r}
	}
	if err != nil {
		return err
	}

	return render(stdout, o.format, reports)
}

func render(w io.Writer, format string, reports []app.EventReport) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(reports)
	}
	for _, r := range reports {
		renderTables(w, r)
	}
	return nil
}

func renderTables(w io.Writer, r app.EventReport) {
	fmt.Fprintf(w, "%d Round %d %s (%d laps, %d pit stops)\n", r.Event.Season, r.Event.Round, r.Event.Event, r.MaxLap, r.PitStops)

	if r.Summary != nil {
		f := r.Summary.Overall.Fastest
		fmt.Fprintf(w, "Fastest lap %s by %s on lap %d, average %s\n",
			analytics.FormatLapTime(deref(f.LapTime)), f.Driver, f.LapNumber, analytics.FormatLapTime(r.Summary.Overall.Average))
	}

	t := newTable(w)
	t.SetTitle("Consistency")
	t.AppendHeader(table.Row{"#", "Driver", "Avg", "StdDev", "CV %", "Score", "Laps"})
	for i, c := range r.Consistency {
		t.AppendRow(table.Row{i + 1, c.DriverID, analytics.FormatLapTime(c.Avg), fmt.Sprintf("%.3f", c.StdDev),
			fmt.Sprintf("%.2f", c.CV), fmt.Sprintf("%.1f", c.Score), c.Laps})
	}
	t.Render()

	t = newTable(w)
	t.SetTitle("Pit stop time loss")
	t.AppendHeader(table.Row{"Driver", "Lap", "Stop", "Out lap", "Baseline", "Lost", "Tyre"})
	for _, l := range r.LostTimes {
		t.AppendRow(table.Row{l.DriverID, l.Lap, fmt.Sprintf("%.1f", l.Duration),
			analytics.FormatLapTime(deref(l.OutLap)), analytics.FormatLapTime(l.Baseline), seconds(l.LostTime), derefString(l.Compound)})
	}
	t.Render()

	t = newTable(w)
	t.SetTitle("Tyre strategy")
	t.AppendHeader(table.Row{"Driver", "Team", "Stints"})
	for _, d := range r.Stints {
		parts := make([]string, 0, len(d.Stints))
		for _, s := range d.Stints {
			parts = append(parts, fmt.Sprintf("%s %d-%d", s.Compound, s.StartLap, s.EndLap))
		}
		t.AppendRow(table.Row{d.DriverID, d.Team, strings.Join(parts, ", ")})
	}
	t.Render()

	t = newTable(w)
	t.SetTitle("Driver performance")
	t.AppendHeader(table.Row{"Driver", "Team", "Avg pace", "Fastest", "Consistency", "Stops", "Avg pit"})
	for _, p := range r.Performance {
		t.AppendRow(table.Row{p.DriverID, p.Team, analytics.FormatLapTime(p.AvgPace), analytics.FormatLapTime(p.FastestLap),
			fmt.Sprintf("%.3f", p.Consistency), p.PitStops, seconds(p.AvgPit)})
	}
	t.Render()
	fmt.Fprintln(w)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func seconds(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
