package timesheet_test

import (
	"errors"
	"testing"

	"github.com/okian/paysheet/internal/domain/timesheet"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveRateColumn(t *testing.T) {
	Convey("Given the default rate aliases", t, func() {
		aliases := timesheet.DefaultRateAliases()

		Convey("When a single alias is present", func() {
			col, err := timesheet.ResolveRateColumn([]string{"id", "salary", "name"}, aliases)

			Convey("Then it is returned", func() {
				So(err, ShouldBeNil)
				So(col, ShouldEqual, "salary")
			})
		})

		Convey("When several aliases are present", func() {
			col, err := timesheet.ResolveRateColumn([]string{"salary", "hourly_rate", "rate"}, aliases)

			Convey("Then the first in header order wins", func() {
				So(err, ShouldBeNil)
				So(col, ShouldEqual, "salary")
			})
		})

		Convey("When no alias is present", func() {
			col, err := timesheet.ResolveRateColumn([]string{"id", "Rate", "wage"}, aliases)

			Convey("Then a missing column error lists the aliases", func() {
				So(col, ShouldBeEmpty)
				var missing *timesheet.MissingColumnError
				So(errors.As(err, &missing), ShouldBeTrue)
				So(missing.Column, ShouldEqual, "hourly_rate|rate|salary")
			})
		})

		Convey("When the header is empty", func() {
			_, err := timesheet.ResolveRateColumn(nil, aliases)

			Convey("Then resolution fails", func() {
				So(errors.Is(err, timesheet.ErrMissingColumn), ShouldBeTrue)
			})
		})
	})
}

func TestNewSchema(t *testing.T) {
	Convey("Given a header with every column", t, func() {
		headers := []string{"name", "id", "rate", "email", "hours_worked", "department"}
		s, err := timesheet.NewSchema("a.csv", headers, timesheet.DefaultRateAliases())

		Convey("Then fields resolve by name regardless of order", func() {
			So(err, ShouldBeNil)
			So(s.Width(), ShouldEqual, 6)
			So(s.RateColumn, ShouldEqual, "rate")
			row := []string{"Alice", "1", "25", "a@x.com", "40", "Eng"}
			So(s.Field(row, timesheet.ColumnID), ShouldEqual, "1")
			So(s.Field(row, timesheet.ColumnDepartment), ShouldEqual, "Eng")
			So(s.Field(row, s.RateColumn), ShouldEqual, "25")
		})
	})

	Convey("Given headers missing columns", t, func() {
		Convey("When both the rate and a required column are missing", func() {
			_, err := timesheet.NewSchema("b.csv", []string{"email"}, timesheet.DefaultRateAliases())

			Convey("Then the rate column is reported first", func() {
				var missing *timesheet.MissingColumnError
				So(errors.As(err, &missing), ShouldBeTrue)
				So(missing.File, ShouldEqual, "b.csv")
				So(missing.Column, ShouldEqual, "hourly_rate|rate|salary")
			})
		})

		Convey("When only hours_worked is missing", func() {
			_, err := timesheet.NewSchema("c.csv", []string{"id", "email", "name", "department", "rate"}, timesheet.DefaultRateAliases())

			Convey("Then hours_worked is named", func() {
				var missing *timesheet.MissingColumnError
				So(errors.As(err, &missing), ShouldBeTrue)
				So(missing.Column, ShouldEqual, timesheet.ColumnHoursWorked)
			})
		})
	})
}

func TestKind(t *testing.T) {
	Convey("Given parse errors", t, func() {
		So(timesheet.Kind(nil), ShouldEqual, "")
		So(timesheet.Kind(&timesheet.EmptyInputError{File: "x"}), ShouldEqual, "empty_input")
		So(timesheet.Kind(&timesheet.MissingColumnError{File: "x", Column: "id"}), ShouldEqual, "missing_column")
		So(timesheet.Kind(&timesheet.MalformedValueError{File: "x"}), ShouldEqual, "malformed_value")
		So(timesheet.Kind(errors.New("other")), ShouldEqual, "unknown")
	})
}
