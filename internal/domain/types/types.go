// Package types contains the plain view and input shapes exchanged with the
// presentation layer.
package types

// Entry is one event line as shown to the user.
type Entry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Time          string `json:"time,omitempty"`
	Duration      *int   `json:"duration,omitempty"`
	Description   string `json:"description,omitempty"`
	Priority      string `json:"priority"`
	PriorityLabel string `json:"priorityLabel"`
	ReadOnly      bool   `json:"readOnly"`
}

// Cell is one day of the month grid.
type Cell struct {
	Date          string  `json:"date"`
	Day           int     `json:"day"`
	IsOtherMonth  bool    `json:"isOtherMonth"`
	IsToday       bool    `json:"isToday"`
	IsPast        bool    `json:"isPast"`
	Preview       []Entry `json:"preview"`
	Overflow      int     `json:"overflow"`
	OverflowLabel string  `json:"overflowLabel,omitempty"`
}

// Month is the month grid view.
type Month struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"` // zero-indexed
	Title    string   `json:"title"`
	Weekdays []string `json:"weekdays"`
	Today    string   `json:"today"`
	Cells    []Cell   `json:"cells"`

	// NoSelection is the detail panel placeholder before a day is picked.
	NoSelection string `json:"noSelection"`
}

// Day is the detail view of one selected date.
type Day struct {
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
	Empty   string  `json:"emptyMessage,omitempty"`
}

// EventInput is a create or update submission. An empty ID creates.
type EventInput struct {
	Date        string `json:"date"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Time        string `json:"time,omitempty"`
	Duration    *int   `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// SubmitResult is returned after a create or update.
type SubmitResult struct {
	Event   Entry  `json:"event"`
	Created bool   `json:"created"`
	Day     Day    `json:"day"`
	Warning string `json:"warning,omitempty"`
}

// DeleteResult is returned after a delete.
type DeleteResult struct {
	ID      string `json:"id"`
	Day     Day    `json:"day"`
	Warning string `json:"warning,omitempty"`
}
