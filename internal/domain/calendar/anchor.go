// Package calendar builds the month grid and the per-day detail list.
package calendar

import (
	"fmt"
	"time"

	"github.com/okian/agenda/internal/domain/model"
)

// Anchor is the (year, month) a grid is built around. Values are immutable;
// navigation returns new anchors.
type Anchor struct {
	year  int
	month int // zero-indexed
	ok    bool
}

// NewAnchor validates month (0 = January).
func NewAnchor(year, month int) (Anchor, error) {
	if month < 0 || month > 11 {
		return Anchor{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return Anchor{year: year, month: month, ok: true}, nil
}

// AnchorFor returns the anchor of t in t's location.
func AnchorFor(t time.Time) Anchor {
	return Anchor{year: t.Year(), month: int(t.Month()) - 1, ok: true}
}

// Year returns the anchor year.
func (a Anchor) Year() int { return a.year }

// Month returns the zero-indexed anchor month.
func (a Anchor) Month() int { return a.month }

// Valid reports whether a was built by NewAnchor, AnchorFor or navigation.
func (a Anchor) Valid() bool { return a.ok }

// Prev returns the previous month, wrapping to December of the previous year.
func (a Anchor) Prev() Anchor {
	if a.month == 0 {
		return Anchor{year: a.year - 1, month: 11, ok: true}
	}
	return Anchor{year: a.year, month: a.month - 1, ok: true}
}

// Next returns the following month, wrapping to January of the next year.
func (a Anchor) Next() Anchor {
	if a.month == 11 {
		return Anchor{year: a.year + 1, month: 0, ok: true}
	}
	return Anchor{year: a.year, month: a.month + 1, ok: true}
}

// Contains reports whether d falls inside the anchor month.
func (a Anchor) Contains(d model.Date) bool {
	return d.Year == a.year && d.Month == a.month
}

// String returns YYYY-MM.
func (a Anchor) String() string {
	return fmt.Sprintf("%04d-%02d", a.year, a.month+1)
}
