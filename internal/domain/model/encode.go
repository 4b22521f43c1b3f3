package model

import (
	"encoding/json"
	"math"
)

// MarshalJSON encodes a non-finite FastestLap as null; JSON has no infinity.
func (r DriverPerformanceRecord) MarshalJSON() ([]byte, error) {
	type plain DriverPerformanceRecord
	out := struct {
		plain
		FastestLap *float64 `json:"fastestLap"`
	}{plain: plain(r)}
	if !math.IsInf(r.FastestLap, 0) && !math.IsNaN(r.FastestLap) {
		out.FastestLap = Float(r.FastestLap)
	}
	return json.Marshal(out)
}
