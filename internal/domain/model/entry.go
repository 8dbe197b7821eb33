package model

// Entry is one line of a day's combined list: either a UserEvent or a
// HolidayEvent. The set of implementations is closed.
type Entry interface {
	// Details returns a copy of the entry's fields.
	Details() Event
	// ReadOnly reports whether the entry is generated and cannot be edited.
	ReadOnly() bool

	entry()
}

// UserEvent wraps a user-created event.
type UserEvent struct {
	Event
}

// Details implements Entry.
func (u UserEvent) Details() Event { return u.Event.Clone() }

// ReadOnly implements Entry.
func (UserEvent) ReadOnly() bool { return false }

func (UserEvent) entry() {}

// HolidayEvent is a generated, read-only entry. Its fields are reachable only
// through accessors.
type HolidayEvent struct {
	id    string
	title string
	key   DateKey
}

// NewHolidayEvent builds a holiday entry.
func NewHolidayEvent(id, title string, key DateKey) HolidayEvent {
	return HolidayEvent{id: id, title: title, key: key}
}

// ID returns the deterministic holiday id.
func (h HolidayEvent) ID() string { return h.id }

// Title returns the holiday name.
func (h HolidayEvent) Title() string { return h.title }

// Key returns the date the holiday falls on.
func (h HolidayEvent) Key() DateKey { return h.key }

// Details implements Entry.
func (h HolidayEvent) Details() Event {
	return Event{ID: h.id, Title: h.title, Type: TypeHoliday, Priority: PriorityLow}
}

// ReadOnly implements Entry.
func (HolidayEvent) ReadOnly() bool { return true }

func (HolidayEvent) entry() {}

// IsHoliday reports whether e is a generated holiday.
func IsHoliday(e Entry) bool {
	_, ok := e.(HolidayEvent)
	return ok
}
