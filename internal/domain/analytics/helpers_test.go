package analytics_test

import "github.com/okian/pitwall/internal/domain/model"

const (
	testSeason = 2025
	testRound  = 1
)

func lap(driver string, n int, t *float64) model.LapRecord {
	return model.LapRecord{
		Lap: model.Lap{
			Season:         testSeason,
			Round:          testRound,
			Event:          "Australian Grand Prix",
			Driver:         driver,
			DriverFullName: driver + " Full",
		},
		Team:      driver + " Racing",
		LapNumber: n,
		LapTime:   t,
	}
}

func timed(driver string, n int, t float64) model.LapRecord {
	return lap(driver, n, model.Float(t))
}

func withCompound(l model.LapRecord, c string) model.LapRecord {
	l.Compound = model.String(c)
	return l
}

func stop(driver string, n int, duration *float64, compound *string) model.PitStopRecord {
	return model.PitStopRecord{
		Season:     testSeason,
		Round:      testRound,
		Event:      "Australian Grand Prix",
		LapNumber:  n,
		DriverID:   driver,
		DriverName: driver + " Full",
		Team:       driver + " Racing",
		Duration:   duration,
		Compound:   compound,
	}
}
