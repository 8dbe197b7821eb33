package model

import (
	"github.com/google/uuid"
)

// Type is the category of an event.
type Type string

// Event categories. Holiday is reserved for generated entries.
const (
	TypeWork     Type = "work"
	TypePersonal Type = "personal"
	TypeMeeting  Type = "meeting"
	TypeBirthday Type = "birthday"
	TypeHealth   Type = "health"
	TypeOther    Type = "other"
	TypeHoliday  Type = "holiday"
)

// UserTypes lists the categories a user may pick, in display order.
var UserTypes = []Type{TypeWork, TypePersonal, TypeMeeting, TypeBirthday, TypeHealth, TypeOther}

// IsUserType reports whether t is a category a user may submit.
func IsUserType(t Type) bool {
	for _, u := range UserTypes {
		if u == t {
			return true
		}
	}
	return false
}

// Priority ranks an event.
type Priority string

// Priorities. Medium is the default and the fallback for unknown values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Event is the persisted shape of a user-created calendar entry.
// Fields mirror the stored JSON blob.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        Type     `json:"type"`
	Time        string   `json:"time,omitempty"`     // "HH:MM", empty when untimed
	Duration    *int     `json:"duration,omitempty"` // minutes
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	if e.Duration != nil {
		d := *e.Duration
		e.Duration = &d
	}
	return e
}

// NewEventID returns a unique id for a new user event. UUIDv7 ids sort by
// creation time.
func NewEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Buckets maps a date to its user events in creation order.
// A key is never present with an empty slice.
type Buckets map[DateKey][]Event

// Clone returns a deep copy of b.
func (b Buckets) Clone() Buckets {
	out := make(Buckets, len(b))
	for k, events := range b {
		cp := make([]Event, len(events))
		for i, e := range events {
			cp[i] = e.Clone()
		}
		out[k] = cp
	}
	return out
}

// Count returns the total number of events across all buckets.
func (b Buckets) Count() int {
	n := 0
	for _, events := range b {
		n += len(events)
	}
	return n
}
