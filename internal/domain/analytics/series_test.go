package analytics_test

import (
	"testing"

	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func withSectors(l model.LapRecord, s1, s2, s3 float64) model.LapRecord {
	l.Sector1, l.Sector2, l.Sector3 = model.Float(s1), model.Float(s2), model.Float(s3)
	return l
}

func TestLapTimeSeries(t *testing.T) {
	Convey("Given laps of two drivers listed out of lap order", t, func() {
		laps := []model.LapRecord{
			timed("NOR", 2, 91.5),
			timed("VER", 2, 90.8),
			timed("NOR", 1, 95.0),
			lap("VER", 1, nil),
			timed("LEC", 1, 96.0),
		}

		Convey("When every driver is kept", func() {
			series := analytics.LapTimeSeries(laps, nil)

			Convey("Then rows are merged per lap and sorted", func() {
				So(series.Drivers, ShouldResemble, []string{"NOR", "VER", "LEC"})
				So(series.Rows, ShouldHaveLength, 2)
				So(series.Rows[0].Lap, ShouldEqual, 1)
				So(*series.Rows[0].Times["NOR"], ShouldEqual, 95.0)
				So(*series.Rows[0].Times["LEC"], ShouldEqual, 96.0)
				So(series.Rows[1].Lap, ShouldEqual, 2)
				So(*series.Rows[1].Times["VER"], ShouldEqual, 90.8)
			})

			Convey("Then an untimed lap is present with a nil time", func() {
				v, ok := series.Rows[0].Times["VER"]
				So(ok, ShouldBeTrue)
				So(v, ShouldBeNil)
			})
		})

		Convey("When a driver filter is given", func() {
			series := analytics.LapTimeSeries(laps, func(id string) bool { return id == "VER" })

			Convey("Then other drivers are dropped", func() {
				So(series.Drivers, ShouldResemble, []string{"VER"})
				So(series.Rows, ShouldHaveLength, 2)
				_, ok := series.Rows[1].Times["NOR"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When there are no laps", func() {
			series := analytics.LapTimeSeries(nil, nil)

			Convey("Then the series is empty but not nil", func() {
				So(series.Drivers, ShouldNotBeNil)
				So(series.Rows, ShouldNotBeNil)
				So(series.Rows, ShouldBeEmpty)
			})
		})
	})
}

func TestSectorComparison(t *testing.T) {
	Convey("Given laps with sector splits", t, func() {
		laps := []model.LapRecord{
			withSectors(timed("HAM", 2, 92), 30.2, 31.1, 30.7),
			withSectors(timed("HAM", 1, 93), 30.9, 31.4, 30.7),
			withSectors(timed("RUS", 1, 92.5), 30.5, 31.2, 30.8),
		}

		Convey("When no driver is selected", func() {
			series := analytics.SectorComparison(laps, nil)

			Convey("Then the series is empty", func() {
				So(series.Drivers, ShouldBeEmpty)
				So(series.Rows, ShouldBeEmpty)
				So(series.Rows, ShouldNotBeNil)
			})
		})

		Convey("When one driver is selected", func() {
			series := analytics.SectorComparison(laps, []string{"HAM"})

			Convey("Then only that driver's splits are lined up by lap", func() {
				So(series.Drivers, ShouldResemble, []string{"HAM"})
				So(series.Rows, ShouldHaveLength, 2)
				So(series.Rows[0].Lap, ShouldEqual, 1)
				So(*series.Rows[0].Sectors["HAM"].Sector1, ShouldEqual, 30.9)
				So(*series.Rows[1].Sectors["HAM"].Sector2, ShouldEqual, 31.1)
				_, ok := series.Rows[0].Sectors["RUS"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a lap has no splits", func() {
			series := analytics.SectorComparison([]model.LapRecord{timed("HAM", 1, 93)}, []string{"HAM"})

			Convey("Then its sectors are nil", func() {
				So(series.Rows, ShouldHaveLength, 1)
				So(series.Rows[0].Sectors["HAM"].Sector1, ShouldBeNil)
			})
		})
	})
}

func TestPitStopDurations(t *testing.T) {
	Convey("Given stops with and without a measured duration", t, func() {
		stops := []model.PitStopRecord{
			stop("VER", 18, model.Float(2.4), model.String("HARD")),
			stop("NOR", 20, nil, nil),
		}

		Convey("When every driver is kept", func() {
			bars := analytics.PitStopDurations(stops, nil)

			Convey("Then bars follow the stop order and unknown durations are zero", func() {
				So(bars, ShouldHaveLength, 2)
				So(bars[0].Key, ShouldEqual, "VER Full L18")
				So(bars[0].Duration, ShouldEqual, 2.4)
				So(*bars[0].Compound, ShouldEqual, "HARD")
				So(bars[0].Team, ShouldEqual, "VER Racing")
				So(bars[1].Duration, ShouldEqual, 0)
				So(bars[1].Compound, ShouldBeNil)
			})
		})

		Convey("When a driver filter is given", func() {
			bars := analytics.PitStopDurations(stops, func(id string) bool { return id == "NOR" })

			Convey("Then other drivers are dropped", func() {
				So(bars, ShouldHaveLength, 1)
				So(bars[0].Lap, ShouldEqual, 20)
			})
		})
	})
}
