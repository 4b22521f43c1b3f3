package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitwall/internal/adapters/source"
	"github.com/okian/pitwall/internal/domain/model"
)

const lapsJSON = `[
  {"season": 2025, "round": 1, "event": "Australian Grand Prix", "driver": "NOR",
   "driver_fullname": "Lando Norris", "driver_number": 4, "team": "McLaren",
   "lap_number": 1, "lap_time": 91.234, "sector1": 30.1, "sector2": null, "sector3": 31.0,
   "compound": "MEDIUM", "isPersonalBest": true, "timestamp": 3600.5},
  {"season": 2025, "round": 1, "event": "Australian Grand Prix", "driver": "NOR",
   "driver_fullname": "Lando Norris", "driver_number": 4, "team": "McLaren",
   "lap_number": 2, "lap_time": null, "sector1": null, "sector2": null, "sector3": null,
   "compound": null, "isPersonalBest": false, "timestamp": null}
]`

const pitStopsJSON = `[
  {"season": 2025, "round": 1, "event": "Australian Grand Prix", "lapNumber": 1,
   "driverId": "NOR", "driverName": "Lando Norris", "team": "McLaren",
   "duration": 22.4, "compound": "hard", "timestamp": 3700.0},
  {"season": 2025, "round": 1, "event": "Australian Grand Prix", "lapNumber": 2,
   "driverId": "NOR", "driverName": "Lando Norris", "team": "McLaren",
   "duration": null, "compound": null, "timestamp": null}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJSONFiles(t *testing.T) {
	Convey("Given the dataset as two JSON files", t, func() {
		dir := t.TempDir()
		src := source.JSONFiles{
			LapsPath:     writeFile(t, dir, "laps.json", lapsJSON),
			PitStopsPath: writeFile(t, dir, "pitstops.json", pitStopsJSON),
		}

		Convey("When loading", func() {
			ds, err := src.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then values decode and nulls stay nil", func() {
				So(ds.Laps, ShouldHaveLength, 2)
				first := ds.Laps[0]
				So(first.Driver, ShouldEqual, "NOR")
				So(first.DriverFullName, ShouldEqual, "Lando Norris")
				So(*first.LapTime, ShouldEqual, 91.234)
				So(first.Sector2, ShouldBeNil)
				So(*first.Compound, ShouldEqual, "MEDIUM")
				So(first.IsPersonalBest, ShouldBeTrue)

				second := ds.Laps[1]
				So(second.LapTime, ShouldBeNil)
				So(second.Compound, ShouldBeNil)
				So(second.Timestamp, ShouldBeNil)

				So(ds.PitStops, ShouldHaveLength, 2)
				So(*ds.PitStops[0].Duration, ShouldEqual, 22.4)
				So(ds.PitStops[1].Duration, ShouldBeNil)
				So(ds.PitStops[1].Compound, ShouldBeNil)
			})
		})

		Convey("When the laps file is missing", func() {
			src.LapsPath = filepath.Join(dir, "missing.json")
			_, err := src.Load(context.Background())
			So(err, ShouldWrap, source.ErrLoad)
		})

		Convey("When a file is not valid JSON", func() {
			src.PitStopsPath = writeFile(t, dir, "broken.json", `[{"season": `)
			_, err := src.Load(context.Background())
			So(err, ShouldWrap, source.ErrLoad)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := src.Load(ctx)
			So(err, ShouldWrap, context.Canceled)
		})

		Convey("Then Paths lists both files", func() {
			So(src.Paths(), ShouldResemble, []string{src.LapsPath, src.PitStopsPath})
		})
	})
}

func TestSQLite(t *testing.T) {
	Convey("Given an initialised SQLite database", t, func() {
		ctx := context.Background()
		db := source.SQLite{DSN: filepath.Join(t.TempDir(), "pitwall.db")}
		So(db.Init(ctx), ShouldBeNil)

		Convey("When it is empty", func() {
			ds, err := db.Load(ctx)

			Convey("Then the dataset has no records", func() {
				So(err, ShouldBeNil)
				So(ds.Laps, ShouldBeEmpty)
				So(ds.PitStops, ShouldBeEmpty)
			})
		})

		Convey("When saving a dataset with null columns", func() {
			in := &source.Dataset{
				Laps: []model.LapRecord{
					{
						Lap:       model.Lap{Season: 2025, Round: 1, Event: "Australian Grand Prix", Driver: "PIA", DriverFullName: "Oscar Piastri"},
						Team:      "McLaren",
						LapNumber: 1,
						LapTime:   model.Float(92.5),
						Compound:  model.String("soft"),

						IsPersonalBest: true,
					},
					{
						Lap:       model.Lap{Season: 2025, Round: 1, Driver: "PIA"},
						LapNumber: 2,
					},
				},
				PitStops: []model.PitStopRecord{
					{Season: 2025, Round: 1, LapNumber: 1, DriverID: "PIA", DriverName: "Oscar Piastri", Duration: model.Float(23.1)},
					{Season: 2025, Round: 1, LapNumber: 2, DriverID: "PIA"},
				},
			}
			So(db.Save(ctx, in), ShouldBeNil)

			out, err := db.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then loading returns the same records in order", func() {
				So(out.Laps, ShouldHaveLength, 2)
				So(out.Laps[0].DriverFullName, ShouldEqual, "Oscar Piastri")
				So(*out.Laps[0].LapTime, ShouldEqual, 92.5)
				So(*out.Laps[0].Compound, ShouldEqual, "soft")
				So(out.Laps[0].IsPersonalBest, ShouldBeTrue)
				So(out.Laps[0].Sector1, ShouldBeNil)
				So(out.Laps[1].LapTime, ShouldBeNil)
				So(out.Laps[1].Compound, ShouldBeNil)

				So(out.PitStops, ShouldHaveLength, 2)
				So(*out.PitStops[0].Duration, ShouldEqual, 23.1)
				So(out.PitStops[1].Duration, ShouldBeNil)
			})

			Convey("Then saving again replaces the previous rows", func() {
				So(db.Save(ctx, &source.Dataset{Laps: in.Laps[:1]}), ShouldBeNil)
				again, err := db.Load(ctx)
				So(err, ShouldBeNil)
				So(again.Laps, ShouldHaveLength, 1)
				So(again.PitStops, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a database without the schema", t, func() {
		db := source.SQLite{DSN: filepath.Join(t.TempDir(), "empty.db")}

		Convey("Then loading fails with ErrLoad", func() {
			_, err := db.Load(context.Background())
			So(err, ShouldWrap, source.ErrLoad)
		})
	})
}
