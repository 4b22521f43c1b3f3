package analytics

import (
	"fmt"
	"math"
)

// FormatLapTime renders seconds as m:ss.mmm. Non-finite or non-positive
// values render as "-".
func FormatLapTime(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return "-"
	}
	total := math.Round(sec*1000) / 1000
	minutes := math.Floor(total / 60)
	seconds := total - minutes*60
	return fmt.Sprintf("%d:%06.3f", int(minutes), seconds)
}
