package model

// ConsistencyResult summarizes the lap-time dispersion of one driver.
type ConsistencyResult struct {
	DriverID   string  `json:"driverId" yaml:"driverId"`
	DriverName string  `json:"driverName" yaml:"driverName"`
	Avg        float64 `json:"avg" yaml:"avg"`
	StdDev     float64 `json:"stddev" yaml:"stddev"`
	CV         float64 `json:"cv" yaml:"cv"`
	Score      float64 `json:"score" yaml:"score"` // 0..100, higher is more uniform
	Laps       int     `json:"laps" yaml:"laps"`
}

// LostTimeRecord estimates what a single pit stop cost a driver.
// OutLap, OutLapDelta and LostTime are nil when the cost is unknown.
type LostTimeRecord struct {
	DriverID    string   `json:"driverId" yaml:"driverId"`
	DriverName  string   `json:"driverName" yaml:"driverName"`
	Lap         int      `json:"lap" yaml:"lap"` // in-lap
	Duration    float64  `json:"duration" yaml:"duration"`
	OutLap      *float64 `json:"outLap" yaml:"outLap"`
	Baseline    float64  `json:"baseline" yaml:"baseline"`
	OutLapDelta *float64 `json:"outLapDelta" yaml:"outLapDelta"`
	LostTime    *float64 `json:"lostTime" yaml:"lostTime"`
	Compound    *string  `json:"compound" yaml:"compound"`
	Team        string   `json:"team" yaml:"team"`
}

// DriverPerformanceRecord merges pace, consistency and pit statistics.
// FastestLap is +Inf when the driver has no timed lap.
type DriverPerformanceRecord struct {
	DriverID    string   `json:"driverId" yaml:"driverId"`
	DriverName  string   `json:"driverName" yaml:"driverName"`
	Team        string   `json:"team" yaml:"team"`
	AvgPace     float64  `json:"avgPace" yaml:"avgPace"`
	FastestLap  float64  `json:"fastestLap" yaml:"fastestLap"`
	Consistency float64  `json:"consistency" yaml:"consistency"`
	PitStops    int      `json:"pitStops" yaml:"pitStops"`
	AvgPit      *float64 `json:"avgPit" yaml:"avgPit"`
}

// Stint is a contiguous inclusive lap range run on one compound.
type Stint struct {
	StartLap int    `json:"startLap" yaml:"startLap"`
	EndLap   int    `json:"endLap" yaml:"endLap"`
	Compound string `json:"compound" yaml:"compound"`
}

// Laps returns the number of laps covered by the stint.
func (s Stint) Laps() int { return s.EndLap - s.StartLap + 1 }

// DriverStints is the ordered stint list of one driver.
type DriverStints struct {
	DriverID   string  `json:"driverId" yaml:"driverId"`
	DriverName string  `json:"driverName" yaml:"driverName"`
	Team       string  `json:"team" yaml:"team"`
	Stints     []Stint `json:"stints" yaml:"stints"`
}
