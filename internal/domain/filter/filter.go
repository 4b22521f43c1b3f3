// Package filter selects the slice of the dataset a dashboard view is about.
//
// The analytics package never sees filter state; hosts apply a Filter first
// and hand the selected records over.
package filter

import (
	"github.com/okian/pitwall/internal/domain/model"
)

// Default filter values of a fresh dashboard session.
const (
	DefaultSeason = 2025
	DefaultRound  = 1
	DefaultMinLap = 1
	DefaultMaxLap = 70
)

// Filter is the user's current selection.
type Filter struct {
	Season int `json:"season"`
	Round  int `json:"round"`
	// Drivers holds driver codes; empty means every driver.
	Drivers []string `json:"drivers"`
	// LapRange is an inclusive [min, max] lap window.
	LapRange [2]int `json:"lapRange"`
	// ShowDropOffs is a display toggle and has no effect on selection.
	ShowDropOffs bool `json:"showDropOffs"`
}

// Default returns the initial dashboard filter.
func Default() Filter {
	return Filter{
		Season:   DefaultSeason,
		Round:    DefaultRound,
		Drivers:  []string{},
		LapRange: [2]int{DefaultMinLap, DefaultMaxLap},
	}
}

// Key returns the event the filter points at.
func (f Filter) Key() model.EventKey {
	return model.EventKey{Season: f.Season, Round: f.Round}
}

// HasDriver reports whether driver passes the driver selection.
func (f Filter) HasDriver(driver string) bool {
	if len(f.Drivers) == 0 {
		return true
	}
	for _, d := range f.Drivers {
		if d == driver {
			return true
		}
	}
	return false
}

// InRange reports whether lapNumber lies in the lap window.
func (f Filter) InRange(lapNumber int) bool {
	return lapNumber >= f.LapRange[0] && lapNumber <= f.LapRange[1]
}

// EventLaps returns the laps of the selected event.
func (f Filter) EventLaps(laps []model.LapRecord) []model.LapRecord {
	var out []model.LapRecord
	for _, l := range laps {
		if l.Season == f.Season && l.Round == f.Round {
			out = append(out, l)
		}
	}
	return out
}

// RangeLaps returns the laps of the selected event inside the lap window.
func (f Filter) RangeLaps(laps []model.LapRecord) []model.LapRecord {
	var out []model.LapRecord
	for _, l := range laps {
		if l.Season == f.Season && l.Round == f.Round && f.InRange(l.LapNumber) {
			out = append(out, l)
		}
	}
	return out
}

// EventStops returns the pit stops of the selected event.
func (f Filter) EventStops(stops []model.PitStopRecord) []model.PitStopRecord {
	var out []model.PitStopRecord
	for _, s := range stops {
		if s.Season == f.Season && s.Round == f.Round {
			out = append(out, s)
		}
	}
	return out
}

// SelectDrivers keeps the laps of selected drivers.
func (f Filter) SelectDrivers(laps []model.LapRecord) []model.LapRecord {
	if len(f.Drivers) == 0 {
		return laps
	}
	var out []model.LapRecord
	for _, l := range laps {
		if f.HasDriver(l.Driver) {
			out = append(out, l)
		}
	}
	return out
}

// TimedLaps drops laps without a lap time.
func TimedLaps(laps []model.LapRecord) []model.LapRecord {
	var out []model.LapRecord
	for _, l := range laps {
		if l.HasTime() {
			out = append(out, l)
		}
	}
	return out
}
