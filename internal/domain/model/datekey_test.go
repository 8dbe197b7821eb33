package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/okian/agenda/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDateKey(t *testing.T) {
	convey.Convey("Given explicit year, month and day integers", t, func() {
		convey.Convey("When the month is zero-indexed January", func() {
			convey.So(model.NewDateKey(2025, 0, 1), convey.ShouldEqual, model.DateKey("2025-01-01"))
		})

		convey.Convey("When month and day need padding", func() {
			convey.So(model.NewDateKey(2024, 8, 9), convey.ShouldEqual, model.DateKey("2024-09-09"))
		})

		convey.Convey("When the month is December", func() {
			convey.So(model.NewDateKey(2025, 11, 31), convey.ShouldEqual, model.DateKey("2025-12-31"))
		})

		convey.Convey("Then Date inverts NewDateKey", func() {
			d := model.NewDateKey(2026, 9, 14).Date()
			convey.So(d, convey.ShouldResemble, model.Date{Year: 2026, Month: 9, Day: 14})
		})

		convey.Convey("Then Date on a short key is the zero Date", func() {
			convey.So(func() { _ = model.DateKey("2025").Date() }, convey.ShouldNotPanic)
			convey.So(model.DateKey("2025").Date(), convey.ShouldResemble, model.Date{})
		})
	})

	convey.Convey("Given inbound date strings", t, func() {
		valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
		for _, s := range valid {
			k, err := model.ParseDateKey(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(k), convey.ShouldEqual, s)
		}

		invalid := []string{"", "2025-1-01", "2025/01/01", "2025-13-01", "2025-00-10", "2025-02-29", "2025-04-31", "20a5-01-01", "2025-01-01T00:00"}
		for _, s := range invalid {
			_, err := model.ParseDateKey(s)
			convey.So(errors.Is(err, model.ErrInvalidDateKey), convey.ShouldBeTrue)
		}
	})
}

func TestDate(t *testing.T) {
	convey.Convey("Given calendar dates", t, func() {
		a := model.Date{Year: 2025, Month: 0, Day: 31}
		b := model.Date{Year: 2025, Month: 1, Day: 1}

		convey.So(a.Before(b), convey.ShouldBeTrue)
		convey.So(b.Before(a), convey.ShouldBeFalse)
		convey.So(a.Before(a), convey.ShouldBeFalse)
		convey.So(model.Date{Year: 2024, Month: 11, Day: 31}.Before(a), convey.ShouldBeTrue)

		convey.Convey("Then weekdays follow the Gregorian calendar", func() {
			convey.So(model.Date{Year: 2025, Month: 0, Day: 1}.Weekday(), convey.ShouldEqual, time.Wednesday)
			convey.So(model.Date{Year: 2026, Month: 9, Day: 14}.Weekday(), convey.ShouldEqual, time.Wednesday)
		})

		convey.Convey("Then DateOf reads the local calendar fields", func() {
			ts := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.Local)
			convey.So(model.DateOf(ts), convey.ShouldResemble, model.Date{Year: 2025, Month: 2, Day: 7})
		})
	})

	convey.Convey("Given month lengths", t, func() {
		convey.So(model.DaysInMonth(2025, 1), convey.ShouldEqual, 28)
		convey.So(model.DaysInMonth(2024, 1), convey.ShouldEqual, 29)
		convey.So(model.DaysInMonth(1900, 1), convey.ShouldEqual, 28)
		convey.So(model.DaysInMonth(2000, 1), convey.ShouldEqual, 29)
		convey.So(model.DaysInMonth(2025, 3), convey.ShouldEqual, 30)
		convey.So(model.DaysInMonth(2025, 11), convey.ShouldEqual, 31)
	})
}
