package export

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/model"
)

// Writer turns grids into iCalendar documents.
type Writer struct {
	loc      *time.Location
	now      func() time.Time
	prodID   string
	adjacent bool
}

// NewWriter creates a Writer. By default only days of the anchor month are
// exported.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		loc:    time.Local,
		now:    time.Now,
		prodID: DefaultProductID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Calendar builds the VCALENDAR for g. Cells keep their grid order and
// entries their display order.
func (w *Writer) Calendar(g calendar.Grid) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(w.prodID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(g.Anchor.Title())

	stamp := w.now().UTC()
	for _, cell := range g.Cells {
		if cell.IsOtherMonth && !w.adjacent {
			continue
		}
		entries := slices.Clone(cell.Events)
		calendar.SortEntries(entries)
		for _, entry := range entries {
			w.addEvent(cal, cell.Date, entry, stamp)
		}
	}
	return cal
}

// Write serializes the calendar of g to out.
func (w *Writer) Write(out io.Writer, g calendar.Grid) error {
	if _, err := io.WriteString(out, w.Calendar(g).Serialize()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (w *Writer) addEvent(cal *ics.Calendar, d model.Date, entry model.Entry, stamp time.Time) {
	e := entry.Details()

	ev := cal.AddEvent(e.ID)
	ev.SetDtStampTime(stamp)
	ev.SetSummary(e.Title)
	if e.Description != "" {
		ev.SetDescription(e.Description)
	}

	if model.IsHoliday(entry) {
		ev.AddProperty(ics.ComponentPropertyCategories, HolidayCategory)
	} else {
		ev.AddProperty(ics.ComponentPropertyCategories, string(e.Type))
		ev.SetProperty(ics.ComponentPropertyPriority, strconv.Itoa(icsPriority(e.Priority)))
	}

	day := time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, w.loc)
	start, ok := clockOn(day, e.Time)
	if !ok {
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}
	ev.SetStartAt(start)
	if e.Duration != nil && *e.Duration > 0 {
		ev.SetEndAt(start.Add(time.Duration(*e.Duration) * time.Minute))
	}
}

// clockOn places an "HH:MM" wall-clock time on day.
func clockOn(day time.Time, hhmm string) (time.Time, bool) {
	if hhmm == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

// icsPriority maps onto the RFC 5545 scale where 1 is highest.
func icsPriority(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 1
	case model.PriorityLow:
		return 9
	default:
		return 5
	}
}
