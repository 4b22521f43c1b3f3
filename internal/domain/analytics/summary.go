package analytics

import "github.com/okian/pitwall/internal/domain/model"

// PaceSummary is the fastest lap and average pace over a set of laps.
type PaceSummary struct {
	Fastest model.LapRecord `json:"fastest" yaml:"fastest"`
	Average float64         `json:"average" yaml:"average"`
	Laps    int             `json:"laps" yaml:"laps"`
}

// Summary holds the race-wide pace and, when drivers were selected, the pace
// of the selection.
type Summary struct {
	Overall  PaceSummary  `json:"overall" yaml:"overall"`
	Selected *PaceSummary `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Summarize computes the pace summary of the timed laps. The selected block is
// filled only when selected is non-empty and some of its drivers have laps.
// ok is false when no lap has a time.
func Summarize(laps []model.LapRecord, selected []string) (Summary, bool) {
	overall, ok := summarizePace(laps, nil)
	if !ok {
		return Summary{}, false
	}
	out := Summary{Overall: overall}
	if len(selected) > 0 {
		if sel, ok := summarizePace(laps, driverSet(selected)); ok {
			out.Selected = &sel
		}
	}
	return out, true
}

// summarizePace keeps the first lap on ties for fastest.
func summarizePace(laps []model.LapRecord, allowed stringSet) (PaceSummary, bool) {
	var (
		best  model.LapRecord
		sum   float64
		count int
	)
	for _, l := range laps {
		if !l.HasTime() || !allowed.has(l.Driver) {
			continue
		}
		if count == 0 || *l.LapTime < *best.LapTime {
			best = l
		}
		sum += *l.LapTime
		count++
	}
	if count == 0 {
		return PaceSummary{}, false
	}
	return PaceSummary{Fastest: best, Average: sum / float64(count), Laps: count}, true
}
