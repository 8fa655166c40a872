package model_test

import (
	"testing"

	"github.com/okian/paysheet/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmployee_Payout(t *testing.T) {
	Convey("Given an employee record", t, func() {
		e := model.Employee{
			ID:          "1",
			Email:       "a@x.com",
			Name:        "Alice",
			Department:  "Eng",
			HoursWorked: 40,
			HourlyRate:  25,
			Source:      model.Source{File: "a.csv", Line: 2},
		}

		Convey("Then payout is hours times rate", func() {
			So(e.Payout(), ShouldEqual, 1000.0)
		})

		Convey("When hours are fractional", func() {
			e.HoursWorked = 37.5
			e.HourlyRate = 19.99

			Convey("Then payout keeps full precision", func() {
				So(e.Payout(), ShouldAlmostEqual, 749.625, 1e-9)
			})
		})

		Convey("When either factor is zero", func() {
			e.HourlyRate = 0

			Convey("Then payout is zero", func() {
				So(e.Payout(), ShouldEqual, 0.0)
			})
		})
	})
}
