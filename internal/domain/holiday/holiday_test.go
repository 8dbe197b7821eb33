package holiday_test

import (
	"testing"

	"github.com/okian/agenda/internal/domain/holiday"
	"github.com/okian/agenda/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEaster(t *testing.T) {
	Convey("Given known Easter Sundays", t, func() {
		cases := map[int]model.Date{
			2019: {Year: 2019, Month: 3, Day: 21},
			2024: {Year: 2024, Month: 2, Day: 31},
			2025: {Year: 2025, Month: 3, Day: 20},
			2026: {Year: 2026, Month: 3, Day: 5},
			2038: {Year: 2038, Month: 3, Day: 25},
		}
		for year, want := range cases {
			So(holiday.Easter(year), ShouldResemble, want)
		}

		Convey("Then Good Friday is two days earlier, across month ends", func() {
			So(holiday.GoodFriday(2025), ShouldResemble, model.Date{Year: 2025, Month: 3, Day: 18})
			So(holiday.GoodFriday(2024), ShouldResemble, model.Date{Year: 2024, Month: 2, Day: 29})
			So(holiday.GoodFriday(2026), ShouldResemble, model.Date{Year: 2026, Month: 3, Day: 3})
		})
	})
}

func TestGenerator_Build(t *testing.T) {
	Convey("Given a generator with default options", t, func() {
		gen := holiday.New()
		m := gen.Build(2025)

		Convey("Then it tags the map with the year", func() {
			So(m.Year(), ShouldEqual, 2025)
			So(m.Regional(), ShouldBeTrue)
		})

		Convey("Then it contains nine fixed, one movable and two regional entries", func() {
			So(m.Len(), ShouldEqual, 12)
		})

		Convey("Then New Year's Day is a read-only holiday", func() {
			hs := m.Get("2025-01-01")
			So(hs, ShouldHaveLength, 1)
			So(hs[0].Title(), ShouldEqual, "Año Nuevo")
			So(hs[0].ReadOnly(), ShouldBeTrue)
			So(hs[0].ID(), ShouldEqual, holiday.ID("2025-01-01", "Año Nuevo"))
		})

		Convey("Then Good Friday follows Easter", func() {
			hs := m.Get("2025-04-18")
			So(hs, ShouldHaveLength, 1)
			So(hs[0].Title(), ShouldEqual, "Viernes Santo")
		})

		Convey("Then regional dates are present", func() {
			So(m.Get("2025-05-02"), ShouldHaveLength, 1)
			So(m.Get("2025-05-15")[0].Title(), ShouldEqual, "San Isidro")
		})

		Convey("Then ordinary dates have no holidays", func() {
			So(m.Get("2025-03-03"), ShouldBeEmpty)
		})

		Convey("When building the same year again", func() {
			again := gen.Build(2025)

			Convey("Then the output is identical", func() {
				So(again.Keys(), ShouldResemble, m.Keys())
				for _, k := range m.Keys() {
					So(again.Get(k), ShouldResemble, m.Get(k))
				}
			})
		})

		Convey("When mutating a returned slice", func() {
			hs := m.Get("2025-12-25")
			hs[0] = model.NewHolidayEvent("x", "x", "2025-12-25")

			Convey("Then the map is unchanged", func() {
				So(m.Get("2025-12-25")[0].Title(), ShouldEqual, "Navidad")
			})
		})
	})

	Convey("Given a generator without regional entries", t, func() {
		m := holiday.New(holiday.WithRegional(false)).Build(2025)

		So(m.Len(), ShouldEqual, 10)
		So(m.Regional(), ShouldBeFalse)
		So(m.Get("2025-05-02"), ShouldBeEmpty)
	})

	Convey("Given a Good Friday override", t, func() {
		gen := holiday.New(holiday.WithGoodFridayOverrides(map[int]model.DateKey{
			2025: "2025-04-17",
			2030: "2031-01-01", // wrong year, ignored
		}))

		So(gen.Build(2025).Get("2025-04-17")[0].Title(), ShouldEqual, "Viernes Santo")
		So(gen.Build(2025).Get("2025-04-18"), ShouldBeEmpty)
		So(gen.Build(2030).Get(model.NewDateKey(2030, holiday.GoodFriday(2030).Month, holiday.GoodFriday(2030).Day)), ShouldHaveLength, 1)
	})

	Convey("Given malformed Good Friday overrides", t, func() {
		var gen *holiday.Generator
		So(func() {
			gen = holiday.New(holiday.WithGoodFridayOverrides(map[int]model.DateKey{
				2025: "2025",
				2026: "2026-13-01",
			}))
		}, ShouldNotPanic)

		Convey("Then the computed Good Friday is kept", func() {
			So(gen.Build(2025).Get("2025-04-18"), ShouldHaveLength, 1)
			So(gen.Build(2026).Get("2026-04-03"), ShouldHaveLength, 1)
		})
	})

	Convey("Given different years", t, func() {
		gen := holiday.New()
		a := gen.Build(2025).Get("2025-12-25")[0]
		b := gen.Build(2026).Get("2026-12-25")[0]

		So(a.ID(), ShouldNotEqual, b.ID())
	})

	Convey("Given a nil map", t, func() {
		var m *holiday.Map
		So(m.Get("2025-01-01"), ShouldBeEmpty)
		So(m.Keys(), ShouldBeEmpty)
		So(m.Len(), ShouldEqual, 0)
	})
}

func TestCache(t *testing.T) {
	Convey("Given a holiday cache", t, func() {
		c := holiday.NewCache(holiday.New())

		first := c.For(2025)

		Convey("When asking for the same year", func() {
			So(c.For(2025), ShouldPointTo, first)
		})

		Convey("When the year changes", func() {
			next := c.For(2026)
			So(next, ShouldNotPointTo, first)
			So(next.Year(), ShouldEqual, 2026)
		})
	})
}
