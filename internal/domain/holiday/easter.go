package holiday

import (
	"time"

	"github.com/okian/agenda/internal/domain/model"
)

// Easter returns Easter Sunday of year (Gregorian, Meeus/Jones/Butcher).
func Easter(year int) model.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return model.Date{Year: year, Month: month - 1, Day: day}
}

// GoodFriday returns the Friday before Easter Sunday.
func GoodFriday(year int) model.Date {
	e := Easter(year)
	// Noon UTC so AddDate never crosses a day boundary.
	t := time.Date(e.Year, time.Month(e.Month+1), e.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -2)
	return model.Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}
