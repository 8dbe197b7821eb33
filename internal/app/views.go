package service

import (
	"slices"

	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/internal/domain/types"
)

// monthView flattens g. Every cell draws holidays from the anchor year's
// overlay only, so a trailing 1 January in a December grid shows no holiday
// even though SelectDate on that date lists one.
func monthView(g calendar.Grid) types.Month {
	m := types.Month{
		Year:     g.Anchor.Year(),
		Month:    g.Anchor.Month(),
		Title:    g.Anchor.Title(),
		Weekdays: slices.Clone(calendar.WeekdayHeaders[:]),
		Today:    g.Today.Key().String(),
		Cells:    make([]types.Cell, len(g.Cells)),

		NoSelection: calendar.NoSelectionMessage,
	}
	for i, c := range g.Cells {
		m.Cells[i] = types.Cell{
			Date:          c.Key.String(),
			Day:           c.Date.Day,
			IsOtherMonth:  c.IsOtherMonth,
			IsToday:       c.IsToday,
			IsPast:        c.IsPast,
			Preview:       entryViews(c.Preview),
			Overflow:      c.Overflow,
			OverflowLabel: calendar.OverflowLabel(c.Overflow),
		}
	}
	return m
}

func dayView(key model.DateKey, entries []model.Entry) types.Day {
	d := types.Day{
		Date:    key.String(),
		Title:   calendar.FormatLongDate(key.Date()),
		Entries: entryViews(entries),
	}
	if len(entries) == 0 {
		d.Empty = calendar.EmptyDayMessage
	}
	return d
}

func entryViews(entries []model.Entry) []types.Entry {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = entryView(e)
	}
	return out
}

func entryView(e model.Entry) types.Entry {
	d := e.Details()
	return types.Entry{
		ID:            d.ID,
		Title:         d.Title,
		Type:          string(d.Type),
		Time:          d.Time,
		Duration:      d.Duration,
		Description:   d.Description,
		Priority:      string(d.Priority),
		PriorityLabel: calendar.PriorityLabel(d.Priority),
		ReadOnly:      e.ReadOnly(),
	}
}
