package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/okian/pitwall/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

const (
	lapColumns = `season, round, event, driver, driver_fullname, driver_number, team,
	lap_number, lap_time, sector1, sector2, sector3, compound, is_personal_best, timestamp`
	pitColumns = `season, round, event, lap_number, driver_id, driver_name, team,
	duration, compound, timestamp`
)

// SQLite reads the dataset from the lap_times and pit_stops tables.
type SQLite struct {
	DSN string
}

func (s SQLite) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.DSN, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", s.DSN, err)
	}
	return db, nil
}

// Init creates the schema if it does not exist.
func (s SQLite) Init(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrSave, err)
	}
	return nil
}

// Load reads every row of both tables in insertion order.
func (s SQLite) Load(ctx context.Context) (*Dataset, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = db.Close() }()

	laps, err := queryLaps(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: lap_times: %w", ErrLoad, err)
	}
	stops, err := queryPitStops(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: pit_stops: %w", ErrLoad, err)
	}
	return &Dataset{Laps: laps, PitStops: stops}, nil
}

// Save replaces the contents of both tables with ds in one transaction.
func (s SQLite) Save(ctx context.Context, ds *Dataset) error {
	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrSave, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertLaps(ctx, tx, ds.Laps); err != nil {
		return fmt.Errorf("%w: lap_times: %w", ErrSave, err)
	}
	if err := insertPitStops(ctx, tx, ds.PitStops); err != nil {
		return fmt.Errorf("%w: pit_stops: %w", ErrSave, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrSave, err)
	}
	return nil
}

func queryLaps(ctx context.Context, db *sql.DB) ([]model.LapRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+lapColumns+` FROM lap_times ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.LapRecord
	for rows.Next() {
		var (
			l                          model.LapRecord
			lapTime, s1, s2, s3, stamp sql.NullFloat64
			compound                   sql.NullString
		)
		if err := rows.Scan(&l.Season, &l.Round, &l.Event, &l.Driver, &l.DriverFullName,
			&l.DriverNumber, &l.Team, &l.LapNumber, &lapTime, &s1, &s2, &s3,
			&compound, &l.IsPersonalBest, &stamp); err != nil {
			return nil, err
		}
		l.LapTime = nullFloat(lapTime)
		l.Sector1 = nullFloat(s1)
		l.Sector2 = nullFloat(s2)
		l.Sector3 = nullFloat(s3)
		l.Timestamp = nullFloat(stamp)
		l.Compound = nullString(compound)
		out = append(out, l)
	}
	return out, rows.Err()
}

func queryPitStops(ctx context.Context, db *sql.DB) ([]model.PitStopRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+pitColumns+` FROM pit_stops ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.PitStopRecord
	for rows.Next() {
		var (
			p               model.PitStopRecord
			duration, stamp sql.NullFloat64
			compound        sql.NullString
		)
		if err := rows.Scan(&p.Season, &p.Round, &p.Event, &p.LapNumber, &p.DriverID,
			&p.DriverName, &p.Team, &duration, &compound, &stamp); err != nil {
			return nil, err
		}
		p.Duration = nullFloat(duration)
		p.Timestamp = nullFloat(stamp)
		p.Compound = nullString(compound)
		out = append(out, p)
	}
	return out, rows.Err()
}

func insertLaps(ctx context.Context, tx *sql.Tx, laps []model.LapRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM lap_times`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lap_times (`+lapColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, l := range laps {
		if _, err := stmt.ExecContext(ctx, l.Season, l.Round, l.Event, l.Driver, l.DriverFullName,
			l.DriverNumber, l.Team, l.LapNumber, l.LapTime, l.Sector1, l.Sector2, l.Sector3,
			l.Compound, l.IsPersonalBest, l.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

func insertPitStops(ctx context.Context, tx *sql.Tx, stops []model.PitStopRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pit_stops`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pit_stops (`+pitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range stops {
		if _, err := stmt.ExecContext(ctx, p.Season, p.Round, p.Event, p.LapNumber, p.DriverID,
			p.DriverName, p.Team, p.Duration, p.Compound, p.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.Float(v.Float64)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return model.String(v.String)
}
