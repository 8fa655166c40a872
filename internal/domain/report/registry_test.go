package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/paysheet/internal/domain/model"
	"github.com/okian/paysheet/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given the default registry", t, func() {
		reg := report.Default()

		Convey("Then payout is the only report", func() {
			So(reg.Names(), ShouldResemble, []string{"payout"})
		})

		Convey("When looking up payout", func() {
			gen, err := reg.Lookup("payout")

			Convey("Then the payout generator is returned", func() {
				So(err, ShouldBeNil)
				out := gen.Generate([]model.Employee{employee("Alice", "Eng", 40, 25)})
				So(out, ShouldContainSubstring, "Department: Eng")
			})
		})

		Convey("When looking up an unregistered report", func() {
			gen, err := reg.Lookup("summary")

			Convey("Then the error lists the available reports", func() {
				So(gen, ShouldBeNil)
				var unknown *report.UnknownReportError
				So(errors.As(err, &unknown), ShouldBeTrue)
				So(unknown.Name, ShouldEqual, "summary")
				So(unknown.Available, ShouldResemble, []string{"payout"})
				So(errors.Is(err, report.ErrUnknownReport), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "available: payout")
			})
		})

		Convey("When registering a new report", func() {
			count := report.GeneratorFunc(func(records []model.Employee) string {
				return strings.Repeat("x", len(records))
			})
			err := reg.Register("count", count)

			Convey("Then it is dispatched by name without touching payout", func() {
				So(err, ShouldBeNil)
				So(reg.Names(), ShouldResemble, []string{"count", "payout"})
				gen, lookupErr := reg.Lookup("count")
				So(lookupErr, ShouldBeNil)
				So(gen.Generate(make([]model.Employee, 3)), ShouldEqual, "xxx")
			})
		})

		Convey("When registering a duplicate name", func() {
			err := reg.Register("payout", report.Payout{})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, report.ErrDuplicateReport), ShouldBeTrue)
				So(func() { reg.MustRegister("payout", report.Payout{}) }, ShouldPanic)
			})
		})

		Convey("When registering without a name or generator", func() {
			So(errors.Is(reg.Register("", report.Payout{}), report.ErrInvalidReport), ShouldBeTrue)
			So(errors.Is(reg.Register("nil", nil), report.ErrInvalidReport), ShouldBeTrue)
		})
	})

	Convey("Given an empty registry", t, func() {
		reg := report.NewRegistry()

		Convey("Then lookups fail with no alternatives", func() {
			_, err := reg.Lookup("payout")
			var unknown *report.UnknownReportError
			So(errors.As(err, &unknown), ShouldBeTrue)
			So(unknown.Available, ShouldBeEmpty)
		})
	})
}
