package service

import (
	"time"

	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/internal/domain/model"
)

// DriverStintsView is one timeline row with its chart bands.
type DriverStintsView struct {
	model.DriverStints `yaml:",inline"`

	Bands []analytics.StintBand `json:"bands" yaml:"bands"`
	Tail  int                   `json:"tail" yaml:"tail"`
}

// StintsView is the tire-strategy timeline of one event.
type StintsView struct {
	MaxLap  int                `json:"maxLap" yaml:"maxLap"`
	Drivers []DriverStintsView `json:"drivers" yaml:"drivers"`
}

// DriverEntry is a selectable driver with its chart colours.
type DriverEntry struct {
	filter.Driver `yaml:",inline"`

	Color     string `json:"color" yaml:"color"`
	TextColor string `json:"textColor" yaml:"textColor"`
}

// LegendEntry is the chart colour of one plotted driver.
type LegendEntry struct {
	DriverID  string `json:"driverId" yaml:"driverId"`
	Team      string `json:"team" yaml:"team"`
	Color     string `json:"color" yaml:"color"`
	TextColor string `json:"textColor" yaml:"textColor"`
}

// LapsView is the lap-time comparison with its legend.
type LapsView struct {
	analytics.LapSeries `yaml:",inline"`

	Legend []LegendEntry `json:"legend" yaml:"legend"`
}

// SectorsView is the sector comparison with its legend.
type SectorsView struct {
	analytics.SectorSeries `yaml:",inline"`

	Legend []LegendEntry `json:"legend" yaml:"legend"`
}

// Catalog lists what can be selected for one event.
type Catalog struct {
	Seasons []int            `json:"seasons" yaml:"seasons"`
	Rounds  []model.EventKey `json:"rounds" yaml:"rounds"`
	Drivers []DriverEntry    `json:"drivers" yaml:"drivers"`
}

// EventReport runs every analytics component over one whole event.
type EventReport struct {
	Event       model.EventKey                  `json:"event" yaml:"event"`
	Laps        int                             `json:"laps" yaml:"laps"`
	PitStops    int                             `json:"pitStops" yaml:"pitStops"`
	MaxLap      int                             `json:"maxLap" yaml:"maxLap"`
	Summary     *analytics.Summary              `json:"summary" yaml:"summary"`
	Consistency []model.ConsistencyResult       `json:"consistency" yaml:"consistency"`
	LostTimes   []model.LostTimeRecord          `json:"lostTimes" yaml:"lostTimes"`
	Stints      []model.DriverStints            `json:"stints" yaml:"stints"`
	Performance []model.DriverPerformanceRecord `json:"performance" yaml:"performance"`
}

// Stats describes the loaded dataset and service settings.
type Stats struct {
	Loaded        bool      `json:"loaded"`
	Version       uint64    `json:"version"`
	LoadedAt      time.Time `json:"loadedAt"`
	Laps          int       `json:"laps"`
	PitStops      int       `json:"pitStops"`
	Events        int       `json:"events"`
	TopN          int       `json:"topN"`
	ReportWorkers int       `json:"reportWorkers"`
	Uptime        string    `json:"uptime"`
}
