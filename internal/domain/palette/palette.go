// Package palette assigns stable chart colours to drivers.
//
// An Assigner is an explicit object owned by one dashboard session; there is
// no package-level colour state.
package palette

import (
	"strconv"
	"strings"
	"sync"
)

// FallbackColor is returned for drivers whose team has no colours.
const FallbackColor = "#8884d8"

// brightnessThreshold separates light backgrounds from dark ones.
const brightnessThreshold = 150

// TeamColors holds a team's primary and secondary colour.
type TeamColors struct {
	Primary   string
	Secondary string
}

// DefaultTeams is the 2024/2025 grid.
func DefaultTeams() map[string]TeamColors {
	return map[string]TeamColors{
		"Red Bull Racing": {"#3671C6", "#FF004C"},
		"Ferrari":         {"#E80020", "#FFF200"},
		"Mercedes":        {"#27F4D2", "#c6dddcff"},
		"McLaren":         {"#FF8000", "#e0ff56ff"},
		"Aston Martin":    {"#229971", "#FFFEFD"},
		"Williams":        {"#64C4FF", "#FFFFFF"},
		"Alpine":          {"#0093CC", "#FF5F9E"},
		"Kick Sauber":     {"#52E252", "#FFFFFF"},
		"Haas":            {"#B6BABD", "#3b2727ff"},
		"RB":              {"#6692FF", "#707070ff"},
	}
}

// Assigner hands out colours: the first driver of a team gets the team's
// primary colour, any later one the secondary. Assignments are remembered
// for the assigner's lifetime. Safe for concurrent use.
type Assigner struct {
	mu       sync.Mutex
	teams    map[string]TeamColors
	assigned map[string]string
}

// NewAssigner creates an assigner over the given team table. A nil table
// uses DefaultTeams.
func NewAssigner(teams map[string]TeamColors) *Assigner {
	if teams == nil {
		teams = DefaultTeams()
	}
	return &Assigner{teams: teams, assigned: make(map[string]string)}
}

// Color returns the colour for driverID racing for team.
func (a *Assigner) Color(driverID, team string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.assigned[driverID]; ok {
		return c
	}
	tc, ok := a.teams[team]
	if !ok {
		return FallbackColor
	}

	c := tc.Primary
	for _, taken := range a.assigned {
		if taken == tc.Primary {
			c = tc.Secondary
			break
		}
	}
	a.assigned[driverID] = c
	return c
}

// TextColor picks black or white text for a "#rrggbb" background.
func TextColor(bg string) string {
	if bg == "" {
		return "#fff"
	}
	hex := strings.TrimPrefix(bg, "#")
	if len(hex) < 6 {
		return "#fff"
	}
	r := channel(hex[0:2])
	g := channel(hex[2:4])
	b := channel(hex[4:6])
	brightness := (r*299 + g*587 + b*114) / 1000
	if brightness > brightnessThreshold {
		return "#000"
	}
	return "#fff"
}

func channel(s string) float64 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return float64(v)
}
