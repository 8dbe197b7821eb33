// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDateKey is returned by ParseDateKey for non-canonical input.
var ErrInvalidDateKey = errors.New("invalid date key")

// dateKeyLen is the length of a canonical YYYY-MM-DD key.
const dateKeyLen = 10

// DateKey identifies one calendar date as YYYY-MM-DD (zero padded).
// It is the only join key between user events and holidays.
type DateKey string

// NewDateKey formats a key from explicit integers. month0 is zero-indexed
// (0 = January) and is converted to 1-indexed here.
func NewDateKey(year, month0, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day))
}

// ParseDateKey accepts only canonical keys naming a real date.
// Used for inbound presentation input; internal code builds keys with NewDateKey.
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != dateKeyLen || s[4] != '-' || s[7] != '-' {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	year, errY := atoiDigits(s[0:4])
	month, errM := atoiDigits(s[5:7])
	day, errD := atoiDigits(s[8:10])
	if errY != nil || errM != nil || errD != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month-1) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return NewDateKey(year, month-1, day), nil
}

// Date returns the (year, month0, day) triple of a canonical key.
// Keys of the wrong length yield the zero Date; compose with ParseDateKey
// for anything not built by NewDateKey.
func (k DateKey) Date() Date {
	if len(k) != dateKeyLen {
		return Date{}
	}
	year, _ := strconv.Atoi(string(k[0:4]))
	month, _ := strconv.Atoi(string(k[5:7]))
	day, _ := strconv.Atoi(string(k[8:10]))
	return Date{Year: year, Month: month - 1, Day: day}
}

// String implements fmt.Stringer.
func (k DateKey) String() string { return string(k) }

func atoiDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidDateKey
		}
	}
	return strconv.Atoi(s)
}

// Date is a calendar date in the host's local calendar. Month is zero-indexed.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// Key returns the canonical key for d.
func (d Date) Key() DateKey { return NewDateKey(d.Year, d.Month, d.Day) }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Weekday returns the native weekday (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	// Noon UTC keeps the date stable regardless of the host zone.
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// DaysInMonth returns the number of days in the zero-indexed month.
func DaysInMonth(year, month0 int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month0+2), 0, 12, 0, 0, 0, time.UTC).Day()
}
