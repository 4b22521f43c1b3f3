package analytics

import (
	"sort"

	"github.com/okian/pitwall/internal/domain/model"
)

// MaxLap returns the highest lap number among laps, or 1 when there are none.
func MaxLap(laps []model.LapRecord) int {
	if len(laps) == 0 {
		return 1
	}
	maxLap := laps[0].LapNumber
	for _, l := range laps[1:] {
		if l.LapNumber > maxLap {
			maxLap = l.LapNumber
		}
	}
	return maxLap
}

// Stints reconstructs the tire stints of every driver of one event.
//
// laps and stops must already be scoped to the event. drivers restricts the
// output to the given driver codes; an empty set keeps everyone. Each
// driver's stints are gapless, non-overlapping and cover [1, maxLap]. Drivers
// taken from pit stops come first (in stop-lap order), then drivers that only
// appear in laps.
func Stints(laps []model.LapRecord, stops []model.PitStopRecord, drivers []string, maxLap int) []model.DriverStints {
	allowed := driverSet(drivers)
	starting := startingCompounds(laps)

	ordered := make([]model.PitStopRecord, 0, len(stops))
	for _, s := range stops {
		if allowed.has(s.DriverID) {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].LapNumber < ordered[j].LapNumber })

	byDriver := make(map[string][]model.PitStopRecord)
	rows := newRowIndex()
	for _, s := range ordered {
		byDriver[s.DriverID] = append(byDriver[s.DriverID], s)
		rows.set(s.DriverID, s.DriverName, s.Team)
	}
	for _, l := range laps {
		if allowed.has(l.Driver) && !rows.contains(l.Driver) {
			rows.set(l.Driver, l.DisplayName(), l.Team)
		}
	}

	out := make([]model.DriverStints, 0, len(rows.order))
	for _, id := range rows.order {
		row := rows.byID[id]
		row.Stints = driverStints(byDriver[id], starting[id], maxLap)
		out = append(out, row)
	}
	return out
}

// StintsByDriverName maps each driver display name to its stints. When two
// rows share a name the later one wins.
func StintsByDriverName(rows []model.DriverStints) map[string][]model.Stint {
	out := make(map[string][]model.Stint, len(rows))
	for _, r := range rows {
		out[r.DriverName] = r.Stints
	}
	return out
}

// driverStints walks one driver's stops (sorted by lap) and emits the stint
// intervals between them.
func driverStints(stops []model.PitStopRecord, startCompound string, maxLap int) []model.Stint {
	current := startCompound
	if current == "" && len(stops) > 0 {
		current = model.NormalizeCompound(stops[0].Compound)
	}
	if current == "" {
		current = model.UnknownCompound
	}

	var stints []model.Stint
	prevStart := 1
	for _, stop := range stops {
		stints = append(stints, model.Stint{StartLap: prevStart, EndLap: stop.LapNumber, Compound: current})
		if fitted := model.NormalizeCompound(stop.Compound); fitted != "" {
			current = fitted
		}
		prevStart = stop.LapNumber + 1
	}
	if prevStart <= maxLap {
		stints = append(stints, model.Stint{StartLap: prevStart, EndLap: maxLap, Compound: current})
	}
	if len(stints) == 0 {
		stints = append(stints, model.Stint{StartLap: 1, EndLap: maxLap, Compound: model.UnknownCompound})
	}

	for i := range stints {
		s := &stints[i]
		if s.StartLap < 1 {
			s.StartLap = 1
		}
		if s.EndLap > maxLap {
			s.EndLap = maxLap
		}
		if s.EndLap < s.StartLap {
			s.EndLap = s.StartLap
		}
	}
	return stints
}

// startingCompounds records, per driver, the first non-empty compound seen
// in laps.
func startingCompounds(laps []model.LapRecord) map[string]string {
	out := make(map[string]string)
	for _, l := range laps {
		if _, ok := out[l.Driver]; ok {
			continue
		}
		if c := model.NormalizeCompound(l.Compound); c != "" {
			out[l.Driver] = c
		}
	}
	return out
}

// StintBand is one stacked-bar segment: an empty gap followed by a coloured
// run of laps.
type StintBand struct {
	Offset   int    `json:"offset" yaml:"offset"`
	Length   int    `json:"length" yaml:"length"`
	Compound string `json:"compound" yaml:"compound"`
}

// StintBands converts stints into offset/length pairs counted from lap 1, plus
// the trailing gap up to maxLap so every driver's bar stacks to maxLap.
func StintBands(stints []model.Stint, maxLap int) ([]StintBand, int) {
	bands := make([]StintBand, 0, len(stints))
	prevEnd := 0
	for _, st := range stints {
		bands = append(bands, StintBand{
			Offset:   max(0, st.StartLap-(prevEnd+1)),
			Length:   max(0, st.EndLap-st.StartLap+1),
			Compound: st.Compound,
		})
		prevEnd = st.EndLap
	}
	return bands, max(0, maxLap-prevEnd)
}

type stringSet map[string]struct{}

// driverSet builds a membership set; an empty input means "everyone".
func driverSet(drivers []string) stringSet {
	if len(drivers) == 0 {
		return nil
	}
	s := make(stringSet, len(drivers))
	for _, d := range drivers {
		s[d] = struct{}{}
	}
	return s
}

func (s stringSet) has(id string) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// rowIndex keeps driver rows in first-insertion order; later sets update the
// row in place.
type rowIndex struct {
	byID  map[string]model.DriverStints
	order []string
}

func newRowIndex() *rowIndex {
	return &rowIndex{byID: make(map[string]model.DriverStints)}
}

func (r *rowIndex) contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *rowIndex) set(id, name, team string) {
	if !r.contains(id) {
		r.order = append(r.order, id)
	}
	r.byID[id] = model.DriverStints{DriverID: id, DriverName: name, Team: team}
}
