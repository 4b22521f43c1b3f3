package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// JSONFiles reads the dataset from two JSON array files.
type JSONFiles struct {
	LapsPath     string
	PitStopsPath string
}

// Load decodes both files. Missing optional values decode as nil.
func (j JSONFiles) Load(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{}
	if err := readJSON(ctx, j.LapsPath, &ds.Laps); err != nil {
		return nil, err
	}
	if err := readJSON(ctx, j.PitStopsPath, &ds.PitStops); err != nil {
		return nil, err
	}
	return ds, nil
}

// Paths lists the files the source reads, for watchers.
func (j JSONFiles) Paths() []string {
	return []string{j.LapsPath, j.PitStopsPath}
}

func readJSON(ctx context.Context, path string, into any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(into); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrLoad, path, err)
	}
	return nil
}
