package calendar

import (
	"time"

	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/metrics"
)

// Grid dimensions: six Monday-first weeks.
const (
	DaysPerWeek = 7
	Weeks       = 6
	CellCount   = DaysPerWeek * Weeks

	// PreviewLimit is the number of entries shown inside a grid cell.
	PreviewLimit = 3
)

// EventSource is the read side of the event store.
type EventSource interface {
	Get(key model.DateKey) []model.Event
}

// HolidaySource returns the generated holidays of a date.
type HolidaySource interface {
	Get(key model.DateKey) []model.HolidayEvent
}

// Cell is one day of the grid.
type Cell struct {
	Date         model.Date
	Key          model.DateKey
	IsOtherMonth bool
	IsToday      bool
	IsPast       bool
	// Events holds holidays first, then user events in creation order.
	Events   []model.Entry
	Preview  []model.Entry
	Overflow int
}

// Grid is the 6x7 month view around Anchor.
type Grid struct {
	Anchor Anchor
	Today  model.Date
	Cells  [CellCount]Cell
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock replaces time.Now for today/past classification.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// Builder produces grids and day lists.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a Builder using the host clock.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Today returns the current local date.
func (b *Builder) Today() model.Date {
	return model.DateOf(b.now())
}

// Build lays out the month of anchor. It panics when anchor was not built by
// NewAnchor, AnchorFor or navigation. events and holidays may be nil.
func (b *Builder) Build(anchor Anchor, events EventSource, holidays HolidaySource) Grid {
	if !anchor.Valid() {
		panic("calendar: Build called with an invalid anchor")
	}
	start := time.Now()

	year, month := anchor.Year(), anchor.Month()
	prev, next := anchor.Prev(), anchor.Next()

	first := model.Date{Year: year, Month: month, Day: 1}
	leading := (int(first.Weekday()) + 6) % DaysPerWeek
	daysInMonth := model.DaysInMonth(year, month)
	prevDays := model.DaysInMonth(prev.Year(), prev.Month())

	g := Grid{Anchor: anchor, Today: b.Today()}
	for i := range g.Cells {
		var d model.Date
		other := true
		switch {
		case i < leading:
			d = model.Date{Year: prev.Year(), Month: prev.Month(), Day: prevDays - leading + i + 1}
		case i < leading+daysInMonth:
			d = model.Date{Year: year, Month: month, Day: i - leading + 1}
			other = false
		default:
			d = model.Date{Year: next.Year(), Month: next.Month(), Day: i - leading - daysInMonth + 1}
		}
		g.Cells[i] = newCell(d, other, g.Today, events, holidays)
	}

	metrics.RecordGridBuild(float64(time.Since(start).Microseconds()) / 1000)
	return g
}

func newCell(d model.Date, other bool, today model.Date, events EventSource, holidays HolidaySource) Cell {
	c := Cell{
		Date:         d,
		Key:          d.Key(),
		IsOtherMonth: other,
	}
	if !other {
		c.IsToday = d == today
		c.IsPast = d.Before(today)
	}

	c.Events = Merge(c.Key, events, holidays)
	n := min(len(c.Events), PreviewLimit)
	c.Preview = c.Events[:n:n]
	c.Overflow = len(c.Events) - n
	return c
}

// Merge returns holidays[key] followed by events.Get(key), unsorted.
func Merge(key model.DateKey, events EventSource, holidays HolidaySource) []model.Entry {
	var hs []model.HolidayEvent
	if holidays != nil {
		hs = holidays.Get(key)
	}
	var us []model.Event
	if events != nil {
		us = events.Get(key)
	}

	out := make([]model.Entry, 0, len(hs)+len(us))
	for _, h := range hs {
		out = append(out, h)
	}
	for _, e := range us {
		out = append(out, model.UserEvent{Event: e})
	}
	return out
}

// Weeks returns the cells split into rows of seven.
func (g Grid) Weeks() [Weeks][DaysPerWeek]Cell {
	var rows [Weeks][DaysPerWeek]Cell
	for i, c := range g.Cells {
		rows[i/DaysPerWeek][i%DaysPerWeek] = c
	}
	return rows
}
