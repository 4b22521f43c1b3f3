package filter

import (
	"sort"

	"github.com/okian/pitwall/internal/domain/model"
)

// Driver is one entry of an event's driver list.
type Driver struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Team string `json:"team" yaml:"team"`
}

// Seasons lists the seasons present in laps, ascending.
func Seasons(laps []model.LapRecord) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, l := range laps {
		if _, ok := seen[l.Season]; ok {
			continue
		}
		seen[l.Season] = struct{}{}
		out = append(out, l.Season)
	}
	sort.Ints(out)
	return out
}

// Rounds lists the rounds of season, ascending, with their event names.
// The last name seen for a round wins.
func Rounds(laps []model.LapRecord, season int) []model.EventKey {
	names := make(map[int]string)
	for _, l := range laps {
		if l.Season == season {
			names[l.Round] = l.Event
		}
	}
	out := make([]model.EventKey, 0, len(names))
	for round, name := range names {
		out = append(out, model.EventKey{Season: season, Round: round, Event: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out
}

// Events lists every (season, round) pair present in laps, ordered.
func Events(laps []model.LapRecord) []model.EventKey {
	var out []model.EventKey
	for _, season := range Seasons(laps) {
		out = append(out, Rounds(laps, season)...)
	}
	return out
}

// Drivers lists the drivers of one event in first-appearance order. Name and
// team come from the last lap seen for the driver.
func Drivers(laps []model.LapRecord, season, round int) []Driver {
	index := make(map[string]int)
	var out []Driver
	for _, l := range laps {
		if l.Season != season || l.Round != round {
			continue
		}
		d := Driver{ID: l.Driver, Name: l.DriverFullName, Team: l.Team}
		if i, ok := index[l.Driver]; ok {
			out[i] = d
			continue
		}
		index[l.Driver] = len(out)
		out = append(out, d)
	}
	return out
}

// DriverTeams maps each driver code to the first non-empty team seen.
func DriverTeams(laps []model.LapRecord) map[string]string {
	out := make(map[string]string)
	for _, l := range laps {
		if l.Driver == "" || l.Team == "" {
			continue
		}
		if _, ok := out[l.Driver]; !ok {
			out[l.Driver] = l.Team
		}
	}
	return out
}

// RaceOrder returns up to n driver codes in the order they first appear in
// laps. The dataset lists lap 1 in classification order, so this is the
// "top n" used when nothing is selected. n <= 0 returns every driver.
func RaceOrder(laps []model.LapRecord, n int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range laps {
		if _, ok := seen[l.Driver]; ok {
			continue
		}
		seen[l.Driver] = struct{}{}
		out = append(out, l.Driver)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
