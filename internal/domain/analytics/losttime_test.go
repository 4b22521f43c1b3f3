package analytics_test

import (
	"testing"

	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// raceWithStopAt30 builds laps 20..40 for driver with a slow in-lap at 30 and
// out-lap at 31; every other lap runs 24.0s.
func raceWithStopAt30(driver string) []model.LapRecord {
	var laps []model.LapRecord
	for n := 20; n <= 40; n++ {
		switch n {
		case 30:
			laps = append(laps, timed(driver, n, 25.0))
		case 31:
			laps = append(laps, timed(driver, n, 28.0))
		default:
			laps = append(laps, timed(driver, n, 24.0))
		}
	}
	return laps
}

func TestLostTimes(t *testing.T) {
	Convey("Given a driver who pitted on lap 30", t, func() {
		laps := raceWithStopAt30("VER")

		Convey("When the stop has a measured duration", func() {
			records := analytics.LostTimes(laps, []model.PitStopRecord{
				stop("VER", 30, model.Float(2.5), model.String("HARD")),
			})

			Convey("Then the baseline is the median of the other laps", func() {
				So(records, ShouldHaveLength, 1)
				r := records[0]
				So(r.Baseline, ShouldEqual, 24.0)
				So(*r.OutLap, ShouldEqual, 28.0)
				So(*r.OutLapDelta, ShouldEqual, 4.0)
				So(*r.LostTime, ShouldEqual, 6.5)
				So(r.Duration, ShouldEqual, 2.5)
				So(r.Lap, ShouldEqual, 30)
				So(*r.Compound, ShouldEqual, "HARD")
				So(r.Team, ShouldEqual, "VER Racing")
			})
		})

		Convey("When the stop duration is unknown", func() {
			records := analytics.LostTimes(laps, []model.PitStopRecord{stop("VER", 30, nil, nil)})

			Convey("Then a degraded record is produced", func() {
				So(records, ShouldHaveLength, 1)
				So(records[0].Duration, ShouldEqual, 0)
				So(records[0].LostTime, ShouldBeNil)
				So(records[0].OutLap, ShouldBeNil)
				So(records[0].OutLapDelta, ShouldBeNil)
				So(records[0].Baseline, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a stop whose out-lap is missing", t, func() {
		laps := []model.LapRecord{timed("HAM", 1, 80), timed("HAM", 2, 81), timed("HAM", 3, 82)}
		records := analytics.LostTimes(laps, []model.PitStopRecord{stop("HAM", 3, model.Float(3.1), nil)})

		Convey("Then lost time is unknown but the duration is kept", func() {
			So(records, ShouldHaveLength, 1)
			So(records[0].LostTime, ShouldBeNil)
			So(records[0].OutLap, ShouldBeNil)
			So(records[0].Duration, ShouldEqual, 3.1)
			So(records[0].Baseline, ShouldEqual, 0)
		})
	})

	Convey("Given an out-lap without a recorded time", t, func() {
		laps := []model.LapRecord{timed("LEC", 1, 80), timed("LEC", 2, 95), lap("LEC", 3, nil), timed("LEC", 4, 81)}
		records := analytics.LostTimes(laps, []model.PitStopRecord{stop("LEC", 2, model.Float(2.2), nil)})

		Convey("Then it is treated as absent", func() {
			So(records[0].LostTime, ShouldBeNil)
		})
	})

	Convey("Given only the in-lap and out-lap are timed", t, func() {
		laps := []model.LapRecord{timed("NOR", 10, 95), timed("NOR", 11, 99)}
		records := analytics.LostTimes(laps, []model.PitStopRecord{stop("NOR", 10, model.Float(2.0), nil)})

		Convey("Then no baseline can be computed", func() {
			So(records, ShouldHaveLength, 1)
			So(records[0].LostTime, ShouldBeNil)
			So(records[0].Baseline, ShouldEqual, 0)
		})
	})

	Convey("Given an even number of baseline laps", t, func() {
		laps := []model.LapRecord{
			timed("PIA", 1, 90), timed("PIA", 2, 92), timed("PIA", 3, 91), timed("PIA", 4, 93),
			timed("PIA", 5, 100), timed("PIA", 6, 96),
		}
		records := analytics.LostTimes(laps, []model.PitStopRecord{stop("PIA", 5, model.Float(2.0), nil)})

		Convey("Then the upper of the two middle values is used", func() {
			// remaining: 90 91 92 93 -> index 2
			So(records[0].Baseline, ShouldEqual, 92)
			So(*records[0].OutLapDelta, ShouldEqual, 4)
			So(*records[0].LostTime, ShouldEqual, 6)
		})
	})

	Convey("Given a stop for a driver without timed laps", t, func() {
		laps := []model.LapRecord{timed("VER", 1, 80), lap("SAR", 1, nil)}
		stops := []model.PitStopRecord{
			stop("SAR", 1, model.Float(2.5), nil),
			stop("VER", 1, model.Float(2.5), nil),
			stop("ZHO", 1, model.Float(2.5), nil),
		}
		records := analytics.LostTimes(laps, stops)

		Convey("Then that stop is skipped entirely", func() {
			So(records, ShouldHaveLength, 1)
			So(records[0].DriverID, ShouldEqual, "VER")
		})
	})

	Convey("Given laps from another round", t, func() {
		other := timed("VER", 31, 28)
		other.Round = 2
		laps := []model.LapRecord{timed("VER", 29, 24), timed("VER", 30, 25), other}
		records := analytics.LostTimes(laps, []model.PitStopRecord{stop("VER", 30, model.Float(2.5), nil)})

		Convey("Then they are not used as the out-lap", func() {
			So(records[0].OutLap, ShouldBeNil)
		})
	})

	Convey("Given several stops out of lap order", t, func() {
		laps := append(raceWithStopAt30("VER"), raceWithStopAt30("HAM")...)
		stops := []model.PitStopRecord{
			stop("HAM", 30, model.Float(3.0), nil),
			stop("VER", 20, model.Float(2.0), nil),
		}
		records := analytics.LostTimes(laps, stops)

		Convey("Then records keep the input order", func() {
			So(records, ShouldHaveLength, 2)
			So(records[0].DriverID, ShouldEqual, "HAM")
			So(records[1].DriverID, ShouldEqual, "VER")
		})

		Convey("And the output is identical on a second call", func() {
			So(analytics.LostTimes(laps, stops), ShouldResemble, records)
		})
	})
}

func TestChartableLostTimes(t *testing.T) {
	Convey("Given lost-time records with unknown and non-positive costs", t, func() {
		records := []model.LostTimeRecord{
			{DriverID: "VER", Lap: 40, LostTime: model.Float(21)},
			{DriverID: "HAM", Lap: 12, LostTime: nil},
			{DriverID: "LEC", Lap: 5, LostTime: model.Float(-1)},
			{DriverID: "NOR", Lap: 18, LostTime: model.Float(19)},
			{DriverID: "VER", Lap: 18, LostTime: model.Float(22)},
		}

		Convey("When no driver filter is given", func() {
			out := analytics.ChartableLostTimes(records, nil)

			Convey("Then only positive costs remain ordered by lap", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].DriverID, ShouldEqual, "NOR")
				So(out[1].DriverID, ShouldEqual, "VER")
				So(out[1].Lap, ShouldEqual, 18)
				So(out[2].Lap, ShouldEqual, 40)
			})
		})

		Convey("When a driver filter is given", func() {
			out := analytics.ChartableLostTimes(records, func(id string) bool { return id == "VER" })

			Convey("Then other drivers are dropped", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].Lap, ShouldEqual, 18)
			})
		})
	})
}
