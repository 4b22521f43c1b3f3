package analytics

import (
	"sort"

	"github.com/okian/pitwall/internal/domain/model"
)

// LostTimes estimates the time each pit stop cost against the driver's
// same-race baseline pace.
//
// A stop whose driver has no timed lap in the event produces no record. Any
// other stop always produces one; when the stop duration, the out-lap or the
// baseline is missing the record carries nil OutLap, OutLapDelta and LostTime
// and a zero Baseline. Records follow the order of stops.
func LostTimes(laps []model.LapRecord, stops []model.PitStopRecord) []model.LostTimeRecord {
	results := make([]model.LostTimeRecord, 0, len(stops))
	for _, stop := range stops {
		raceLaps := driverRaceLaps(laps, stop)
		if len(raceLaps) == 0 {
			continue
		}

		outLap := findLap(raceLaps, stop.LapNumber+1)
		baseline, hasBaseline := baselinePace(raceLaps, stop.LapNumber)

		rec := model.LostTimeRecord{
			DriverID:   stop.DriverID,
			DriverName: stop.DriverName,
			Lap:        stop.LapNumber,
			Team:       stop.Team,
		}
		if stop.Compound != nil {
			rec.Compound = model.String(*stop.Compound)
		}
		if stop.Duration != nil {
			rec.Duration = *stop.Duration
		}

		if stop.Duration != nil && outLap != nil && hasBaseline {
			delta := *outLap.LapTime - baseline
			lost := *stop.Duration + delta
			rec.OutLap = model.Float(*outLap.LapTime)
			rec.Baseline = baseline
			rec.OutLapDelta = &delta
			rec.LostTime = &lost
		}
		results = append(results, rec)
	}
	return results
}

// driverRaceLaps returns the timed laps of the stop's driver in the stop's
// season and round.
func driverRaceLaps(laps []model.LapRecord, stop model.PitStopRecord) []model.LapRecord {
	var out []model.LapRecord
	for _, l := range laps {
		if l.Season == stop.Season && l.Round == stop.Round && l.Driver == stop.DriverID && l.HasTime() {
			out = append(out, l)
		}
	}
	return out
}

func findLap(laps []model.LapRecord, lapNumber int) *model.LapRecord {
	for i := range laps {
		if laps[i].LapNumber == lapNumber {
			return &laps[i]
		}
	}
	return nil
}

// baselinePace is the lower median of the race laps excluding the in-lap and
// the out-lap. ok is false when no lap remains.
func baselinePace(raceLaps []model.LapRecord, inLap int) (float64, bool) {
	times := make([]float64, 0, len(raceLaps))
	for _, l := range raceLaps {
		if l.LapNumber == inLap || l.LapNumber == inLap+1 {
			continue
		}
		times = append(times, *l.LapTime)
	}
	if len(times) == 0 {
		return 0, false
	}
	sort.Float64s(times)
	return times[len(times)/2], true
}

// ChartableLostTimes keeps the records with a positive lost time whose driver
// passes keep, ordered by in-lap. A nil keep accepts every driver.
func ChartableLostTimes(records []model.LostTimeRecord, keep func(driverID string) bool) []model.LostTimeRecord {
	out := make([]model.LostTimeRecord, 0, len(records))
	for _, r := range records {
		if r.LostTime == nil || *r.LostTime <= 0 {
			continue
		}
		if keep != nil && !keep(r.DriverID) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Lap < out[j].Lap })
	return out
}
