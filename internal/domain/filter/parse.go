package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by Parse.
const (
	ParamSeason       = "season"
	ParamRound        = "round"
	ParamDrivers      = "drivers"
	ParamLapMin       = "lap_min"
	ParamLapMax       = "lap_max"
	ParamShowDropOffs = "show_drop_offs"
)

// Parse overlays the query values onto base. Missing parameters keep the base
// value; malformed ones fail with ErrInvalidFilter.
func Parse(q url.Values, base Filter) (Filter, error) {
	f := base
	f.Drivers = append([]string(nil), base.Drivers...)

	ints := []struct {
		name string
		dst  *int
	}{
		{ParamSeason, &f.Season},
		{ParamRound, &f.Round},
		{ParamLapMin, &f.LapRange[0]},
		{ParamLapMax, &f.LapRange[1]},
	}
	for _, p := range ints {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidFilter, p.name, raw)
		}
		*p.dst = v
	}

	if q.Has(ParamDrivers) {
		f.Drivers = f.Drivers[:0]
		for _, part := range strings.Split(q.Get(ParamDrivers), ",") {
			if d := strings.ToUpper(strings.TrimSpace(part)); d != "" {
				f.Drivers = append(f.Drivers, d)
			}
		}
	}

	if raw := q.Get(ParamShowDropOffs); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidFilter, ParamShowDropOffs, raw)
		}
		f.ShowDropOffs = v
	}

	if f.LapRange[0] > f.LapRange[1] {
		return Filter{}, fmt.Errorf("%w: lap_min %d exceeds lap_max %d", ErrInvalidFilter, f.LapRange[0], f.LapRange[1])
	}
	return f, nil
}
