package calendar

import (
	"slices"

	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/metrics"
)

// Day returns the combined entries of key for the detail view: holidays
// first, then timed entries by time, then untimed ones. Ties keep their
// merged order.
func Day(key model.DateKey, events EventSource, holidays HolidaySource) []model.Entry {
	entries := Merge(key, events, holidays)
	SortEntries(entries)
	metrics.RecordDayDetailBuild()
	return entries
}

// SortEntries orders merged entries in place the way Day does.
func SortEntries(entries []model.Entry) {
	slices.SortStableFunc(entries, compareEntries)
}

func compareEntries(a, b model.Entry) int {
	ha, hb := rank(a), rank(b)
	if ha != hb {
		return ha - hb
	}

	ta, tb := a.Details().Time, b.Details().Time
	switch {
	case ta == "" && tb == "":
		return 0
	case ta == "":
		return 1
	case tb == "":
		return -1
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	}
	return 0
}

func rank(e model.Entry) int {
	if model.IsHoliday(e) {
		return 0
	}
	return 1
}
