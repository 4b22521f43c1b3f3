package analytics

import (
	"math"
	"sort"

	"github.com/okian/pitwall/internal/domain/model"
)

// DriverPerformance builds one performance record per driver present in laps,
// sorted by ascending average pace.
//
// Laps without a time count as 0 in the average, so callers are expected to
// drop them first. FastestLap is +Inf for a driver without any timed lap.
// Pit-stop statistics come from the stops of the same driver; a stop without
// a duration counts as 0, and AvgPit is nil when the driver never stopped.
func DriverPerformance(laps []model.LapRecord, stops []model.PitStopRecord) []model.DriverPerformanceRecord {
	scores := make(map[string]float64)
	for _, c := range Consistency(laps) {
		scores[c.DriverID] = c.Score
	}

	index := make(map[string]int)
	var grouped [][]model.LapRecord
	for _, l := range laps {
		i, ok := index[l.Driver]
		if !ok {
			i = len(grouped)
			index[l.Driver] = i
			grouped = append(grouped, nil)
		}
		grouped[i] = append(grouped[i], l)
	}

	results := make([]model.DriverPerformanceRecord, 0, len(grouped))
	for _, driverLaps := range grouped {
		first := driverLaps[0]

		sum := 0.0
		fastest := math.Inf(1)
		for _, l := range driverLaps {
			sum += l.Time()
			if l.HasTime() && *l.LapTime < fastest {
				fastest = *l.LapTime
			}
		}

		count, avgPit := pitStats(stops, first.Driver)
		results = append(results, model.DriverPerformanceRecord{
			DriverID:    first.Driver,
			DriverName:  first.DriverFullName,
			Team:        first.Team,
			AvgPace:     sum / float64(len(driverLaps)),
			FastestLap:  fastest,
			Consistency: scores[first.Driver],
			PitStops:    count,
			AvgPit:      avgPit,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].AvgPace < results[j].AvgPace })
	return results
}

// pitStats counts the driver's stops and averages their durations.
func pitStats(stops []model.PitStopRecord, driver string) (int, *float64) {
	count := 0
	sum := 0.0
	for _, s := range stops {
		if s.DriverID != driver {
			continue
		}
		count++
		if s.Duration != nil {
			sum += *s.Duration
		}
	}
	if count == 0 {
		return 0, nil
	}
	return count, model.Float(sum / float64(count))
}
