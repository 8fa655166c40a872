package sampledata_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/paysheet/internal/domain/timesheet"
	"github.com/okian/paysheet/internal/sampledata"
	"github.com/okian/paysheet/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func TestRender(t *testing.T) {
	Convey("Given a seeded config", t, func() {
		cfg := sampledata.DefaultConfig(t.TempDir())
		cfg.Seed = 42
		cfg.Rows = 10

		Convey("When rendering the same index twice", func() {
			a, fa := sampledata.Render(cfg, 0)
			b, fb := sampledata.Render(cfg, 0)

			Convey("Then the output is identical", func() {
				So(a, ShouldEqual, b)
				So(fa, ShouldResemble, fb)
			})
		})

		Convey("When rendering with another seed", func() {
			a, _ := sampledata.Render(cfg, 0)
			cfg.Seed = 43
			b, _ := sampledata.Render(cfg, 0)

			Convey("Then the output differs", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When rendering a file", func() {
			content, f := sampledata.Render(cfg, 1)
			lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
			header := strings.Split(lines[0], ",")

			Convey("Then the header carries every required column and one rate alias", func() {
				So(len(lines), ShouldEqual, cfg.Rows+1)
				for _, col := range timesheet.RequiredColumns() {
					So(header, ShouldContain, col)
				}
				So(cfg.RateAliases, ShouldContain, f.RateColumn)
				So(header, ShouldContain, f.RateColumn)
				So(len(header), ShouldEqual, 6)
			})

			Convey("Then the parser accepts every row", func() {
				res, err := timesheet.New().Parse(context.Background(), "sample.csv", strings.NewReader(content))
				So(err, ShouldBeNil)
				So(len(res.Records), ShouldEqual, cfg.Rows)
				So(res.Skipped, ShouldBeEmpty)
				So(res.RateColumn, ShouldEqual, f.RateColumn)
				for _, r := range res.Records {
					So(r.HoursWorked, ShouldBeBetweenOrEqual, 1.0, 60.0)
					So(r.HourlyRate, ShouldBeBetweenOrEqual, 15.0, 90.0)
					So(cfg.Departments, ShouldContain, r.Department)
				}
			})
		})

		Convey("When malformed rows are requested", func() {
			cfg.MalformedEvery = 3
			content, f := sampledata.Render(cfg, 0)

			Convey("Then every third row is skipped by the parser", func() {
				So(f.Malformed, ShouldEqual, 3)
				res, err := timesheet.New().Parse(context.Background(), "sample.csv", strings.NewReader(content))
				So(err, ShouldBeNil)
				So(len(res.Records), ShouldEqual, 7)
				So(len(res.Skipped), ShouldEqual, 3)
				So(res.Skipped[0].Line, ShouldEqual, 4)
			})
		})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given a config for several files", t, func() {
		dir := filepath.Join(t.TempDir(), "nested")
		cfg := sampledata.DefaultConfig(dir)
		cfg.Files = 4
		cfg.Rows = 5
		cfg.Seed = 7
		cfg.MalformedEvery = 5
		cfg.Workers = 2

		Convey("When generating", func() {
			files, stats, err := sampledata.Generate(context.Background(), cfg)

			Convey("Then the files exist in index order with their rendered content", func() {
				So(err, ShouldBeNil)
				So(len(files), ShouldEqual, 4)
				So(stats.Files, ShouldEqual, 4)
				So(stats.Rows, ShouldEqual, 20)
				So(stats.Malformed, ShouldEqual, 4)
				So(filepath.Base(files[0].Path), ShouldEqual, "timesheet_001.csv")
				So(filepath.Base(files[3].Path), ShouldEqual, "timesheet_004.csv")

				data, readErr := os.ReadFile(files[2].Path)
				So(readErr, ShouldBeNil)
				want, _ := sampledata.Render(cfg, 2)
				So(string(data), ShouldEqual, want)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, _, err := sampledata.Generate(ctx, cfg)

			Convey("Then generation stops with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given invalid configs", t, func() {
		base := sampledata.DefaultConfig(t.TempDir())

		cases := []struct {
			name   string
			mutate func(*sampledata.Config)
		}{
			{"no directory", func(c *sampledata.Config) { c.Dir = "" }},
			{"zero files", func(c *sampledata.Config) { c.Files = 0 }},
			{"negative rows", func(c *sampledata.Config) { c.Rows = -1 }},
			{"no departments", func(c *sampledata.Config) { c.Departments = nil }},
			{"no rate aliases", func(c *sampledata.Config) { c.RateAliases = nil }},
			{"negative cadence", func(c *sampledata.Config) { c.MalformedEvery = -2 }},
		}
		for _, tc := range cases {
			Convey("When the config has "+tc.name, func() {
				cfg := base
				tc.mutate(&cfg)
				_, _, err := sampledata.Generate(context.Background(), cfg)
				So(errors.Is(err, sampledata.ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}
