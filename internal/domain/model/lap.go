// Package model contains domain models passed between layers.
package model

import "strings"

// Lap is the identity shape shared by every per-lap record.
type Lap struct {
	Season         int    `json:"season" yaml:"season"`
	Round          int    `json:"round" yaml:"round"`
	Event          string `json:"event" yaml:"event"`
	Driver         string `json:"driver" yaml:"driver"`                   // short code, e.g. "VER"
	DriverFullName string `json:"driver_fullname" yaml:"driver_fullname"` // display name
}

// LapRecord is one car's timing for one lap of one event.
// Fields mirror the lap-times dataset; nil pointers mean "no value".
type LapRecord struct {
	Lap

	DriverNumber   int      `json:"driver_number" yaml:"driver_number"`
	Team           string   `json:"team" yaml:"team"`
	LapNumber      int      `json:"lap_number" yaml:"lap_number"`
	LapTime        *float64 `json:"lap_time" yaml:"lap_time"` // seconds
	Sector1        *float64 `json:"sector1" yaml:"sector1"`
	Sector2        *float64 `json:"sector2" yaml:"sector2"`
	Sector3        *float64 `json:"sector3" yaml:"sector3"`
	Compound       *string  `json:"compound" yaml:"compound"`
	IsPersonalBest bool     `json:"isPersonalBest" yaml:"isPersonalBest"`
	Timestamp      *float64 `json:"timestamp" yaml:"timestamp"`
}

// HasTime reports whether the lap carries a lap time.
func (l LapRecord) HasTime() bool { return l.LapTime != nil }

// Time returns the lap time, or 0 when absent.
func (l LapRecord) Time() float64 {
	if l.LapTime == nil {
		return 0
	}
	return *l.LapTime
}

// DisplayName returns the full driver name, falling back to the short code.
func (l LapRecord) DisplayName() string {
	if l.DriverFullName != "" {
		return l.DriverFullName
	}
	return l.Driver
}

// PitStopRecord is one pit-stop event. LapNumber is the in-lap.
type PitStopRecord struct {
	Season     int      `json:"season" yaml:"season"`
	Round      int      `json:"round" yaml:"round"`
	Event      string   `json:"event" yaml:"event"`
	LapNumber  int      `json:"lapNumber" yaml:"lapNumber"`
	DriverID   string   `json:"driverId" yaml:"driverId"`
	DriverName string   `json:"driverName" yaml:"driverName"`
	Team       string   `json:"team" yaml:"team"`
	Duration   *float64 `json:"duration" yaml:"duration"` // seconds
	Compound   *string  `json:"compound" yaml:"compound"` // tire fitted after the stop
	Timestamp  *float64 `json:"timestamp" yaml:"timestamp"`
}

// EventKey identifies one race event.
type EventKey struct {
	Season int    `json:"season" yaml:"season"`
	Round  int    `json:"round" yaml:"round"`
	Event  string `json:"event,omitempty" yaml:"event,omitempty"`
}

// Matches reports whether season and round equal the key's.
func (k EventKey) Matches(season, round int) bool {
	return k.Season == season && k.Round == round
}

// UnknownCompound is used when no tire compound is known.
const UnknownCompound = "unknown"

// NormalizeCompound lower-cases a compound code; nil or blank yields "".
func NormalizeCompound(c *string) string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c))
}

// Float returns a pointer to v. Handy for literals in tests and loaders.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }
