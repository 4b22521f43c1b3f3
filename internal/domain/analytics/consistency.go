// Package analytics derives race metrics from raw lap and pit-stop records.
//
// Every function here is pure: it reads its arguments, allocates fresh output
// and never mutates the input slices or the records they point to. Calling a
// function twice with the same input yields value-identical output.
package analytics

import (
	"math"

	"github.com/okian/pitwall/internal/domain/model"
)

// maxScore is the consistency score of a perfectly uniform driver.
const maxScore = 100

// Consistency groups timed laps by driver and scores how uniform each
// driver's lap times are. Laps without a lap time are ignored; drivers with
// no timed lap are left out. Results follow driver first-appearance order.
func Consistency(laps []model.LapRecord) []model.ConsistencyResult {
	groups := groupTimedLaps(laps)

	results := make([]model.ConsistencyResult, 0, len(groups))
	for _, g := range groups {
		avg := mean(g.times)
		stddev := math.Sqrt(populationVariance(g.times, avg))

		cv := 0.0
		if avg > 0 {
			cv = stddev / avg
		}

		results = append(results, model.ConsistencyResult{
			DriverID:   g.driver,
			DriverName: g.name,
			Avg:        avg,
			StdDev:     stddev,
			CV:         cv,
			Score:      math.Max(0, maxScore-cv*maxScore),
			Laps:       len(g.times),
		})
	}
	return results
}

// driverTimes holds the timed laps of one driver in input order.
type driverTimes struct {
	driver string
	name   string
	times  []float64
}

// groupTimedLaps partitions laps with a lap time by driver code, keeping the
// order in which drivers first appear.
func groupTimedLaps(laps []model.LapRecord) []*driverTimes {
	index := make(map[string]*driverTimes)
	var order []*driverTimes
	for _, l := range laps {
		if !l.HasTime() {
			continue
		}
		g, ok := index[l.Driver]
		if !ok {
			g = &driverTimes{driver: l.Driver, name: l.DriverFullName}
			index[l.Driver] = g
			order = append(order, g)
		}
		g.times = append(g.times, *l.LapTime)
	}
	return order
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// populationVariance is the mean squared deviation from avg (divides by n).
func populationVariance(xs []float64, avg float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - avg
		sum += d * d
	}
	return sum / float64(len(xs))
}
