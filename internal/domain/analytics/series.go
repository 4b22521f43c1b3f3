package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/pitwall/internal/domain/model"
)

// LapRow is one lap of the lap-time comparison. Times is keyed by driver
// code; a lap without a time maps to nil.
type LapRow struct {
	Lap   int                 `json:"lap" yaml:"lap"`
	Times map[string]*float64 `json:"times" yaml:"times"`
}

// LapSeries lines up the lap times of several drivers lap by lap.
type LapSeries struct {
	Drivers []string `json:"drivers" yaml:"drivers"`
	Rows    []LapRow `json:"rows" yaml:"rows"`
}

// LapTimeSeries merges laps into one row per lap number, ascending, keeping
// the laps whose driver passes keep. A nil keep accepts every driver. Drivers
// are listed in first-appearance order; a repeated (driver, lap) pair keeps
// the later time.
func LapTimeSeries(laps []model.LapRecord, keep func(driverID string) bool) LapSeries {
	out := LapSeries{Drivers: []string{}, Rows: []LapRow{}}
	seen := make(map[string]struct{})
	rows := make(map[int]int)
	for _, l := range laps {
		if keep != nil && !keep(l.Driver) {
			continue
		}
		if _, ok := seen[l.Driver]; !ok {
			seen[l.Driver] = struct{}{}
			out.Drivers = append(out.Drivers, l.Driver)
		}
		i, ok := rows[l.LapNumber]
		if !ok {
			i = len(out.Rows)
			rows[l.LapNumber] = i
			out.Rows = append(out.Rows, LapRow{Lap: l.LapNumber, Times: make(map[string]*float64)})
		}
		out.Rows[i].Times[l.Driver] = l.LapTime
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Lap < out.Rows[j].Lap })
	return out
}

// SectorTimes holds the three sector splits of one lap.
type SectorTimes struct {
	Sector1 *float64 `json:"sector1" yaml:"sector1"`
	Sector2 *float64 `json:"sector2" yaml:"sector2"`
	Sector3 *float64 `json:"sector3" yaml:"sector3"`
}

// SectorRow is one lap of the sector comparison keyed by driver code.
type SectorRow struct {
	Lap     int                    `json:"lap" yaml:"lap"`
	Sectors map[string]SectorTimes `json:"sectors" yaml:"sectors"`
}

// SectorSeries lines up the sector splits of the selected drivers.
type SectorSeries struct {
	Drivers []string    `json:"drivers" yaml:"drivers"`
	Rows    []SectorRow `json:"rows" yaml:"rows"`
}

// SectorComparison merges the sector splits of drivers into one row per lap,
// ascending. An empty drivers returns an empty series.
func SectorComparison(laps []model.LapRecord, drivers []string) SectorSeries {
	out := SectorSeries{Drivers: []string{}, Rows: []SectorRow{}}
	if len(drivers) == 0 {
		return out
	}
	out.Drivers = append(out.Drivers, drivers...)
	allowed := driverSet(drivers)

	rows := make(map[int]int)
	for _, l := range laps {
		if !allowed.has(l.Driver) {
			continue
		}
		i, ok := rows[l.LapNumber]
		if !ok {
			i = len(out.Rows)
			rows[l.LapNumber] = i
			out.Rows = append(out.Rows, SectorRow{Lap: l.LapNumber, Sectors: make(map[string]SectorTimes)})
		}
		out.Rows[i].Sectors[l.Driver] = SectorTimes{Sector1: l.Sector1, Sector2: l.Sector2, Sector3: l.Sector3}
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Lap < out.Rows[j].Lap })
	return out
}

// PitStopBar is one bar of the pit-stop duration chart.
type PitStopBar struct {
	Key        string  `json:"key" yaml:"key"`
	DriverID   string  `json:"driverId" yaml:"driverId"`
	DriverName string  `json:"driverName" yaml:"driverName"`
	Lap        int     `json:"lap" yaml:"lap"`
	Duration   float64 `json:"duration" yaml:"duration"` // 0 when unknown
	Compound   *string `json:"compound" yaml:"compound"`
	Team       string  `json:"team" yaml:"team"`
}

// PitStopDurations lists the stops whose driver passes keep, in stop order.
// A nil keep accepts every driver.
func PitStopDurations(stops []model.PitStopRecord, keep func(driverID string) bool) []PitStopBar {
	out := make([]PitStopBar, 0, len(stops))
	for _, s := range stops {
		if keep != nil && !keep(s.DriverID) {
			continue
		}
		bar := PitStopBar{
			Key:        fmt.Sprintf("%s L%d", s.DriverName, s.LapNumber),
			DriverID:   s.DriverID,
			DriverName: s.DriverName,
			Lap:        s.LapNumber,
			Compound:   s.Compound,
			Team:       s.Team,
		}
		if s.Duration != nil {
			bar.Duration = *s.Duration
		}
		out = append(out, bar)
	}
	return out
}
