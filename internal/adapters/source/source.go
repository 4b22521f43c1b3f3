// Package source loads the lap-times and pit-stops dataset from files or a
// database.
package source

import (
	"context"

	"github.com/okian/pitwall/internal/domain/model"
)

// Dataset is one immutable load of both record sets.
type Dataset struct {
	Laps     []model.LapRecord     `json:"laps"`
	PitStops []model.PitStopRecord `json:"pitStops"`
}

// Loader produces a fresh Dataset on every call.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Dataset, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*Dataset, error) { return f(ctx) }
