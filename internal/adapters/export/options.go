// Package export renders a calendar grid as an iCalendar (RFC 5545) feed.
package export

import "time"

// DefaultProductID is written into PRODID.
const DefaultProductID = "-//okian//agenda//ES"

// HolidayCategory tags generated holidays so clients can tell them apart.
const HolidayCategory = "Festivo"

// Option configures a Writer.
type Option func(*Writer)

// WithLocation sets the zone wall-clock times are interpreted in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(w *Writer) {
		if loc != nil {
			w.loc = loc
		}
	}
}

// WithClock sets the source of DTSTAMP.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithProductID overrides PRODID.
func WithProductID(id string) Option {
	return func(w *Writer) {
		if id != "" {
			w.prodID = id
		}
	}
}

// WithAdjacentDays includes the leading and trailing days of neighbouring
// months that fill the grid.
func WithAdjacentDays(include bool) Option {
	return func(w *Writer) {
		w.adjacent = include
	}
}
