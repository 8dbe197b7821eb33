package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/agenda/internal/domain/model"
)

const clockLayout = "15:04"

// storedEvent is the on-disk shape of one event. It is more permissive than
// model.Event so older or hand-edited files still load.
type storedEvent struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Type        model.Type      `json:"type"`
	Time        string          `json:"time,omitempty"`
	Duration    json.RawMessage `json:"duration,omitempty"`
	Description string          `json:"description,omitempty"`
	Priority    string          `json:"priority"`
}

// Encode serializes buckets as {dateKey: [event, ...]}.
func Encode(b model.Buckets) ([]byte, error) {
	out := make(map[model.DateKey][]model.Event, len(b))
	for k, events := range b {
		if len(events) == 0 {
			continue
		}
		out[k] = events
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode events: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. Unusable entries are skipped and counted in
// dropped; a blob that is not a JSON object fails with ErrCorrupt.
func Decode(data []byte) (b model.Buckets, dropped int, err error) {
	b = model.Buckets{}
	if len(bytes.TrimSpace(data)) == 0 {
		return b, 0, nil
	}

	var raw map[string][]storedEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Buckets{}, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	for k, events := range raw {
		key, err := model.ParseDateKey(k)
		if err != nil {
			dropped += len(events)
			continue
		}
		for _, se := range events {
			e, ok := se.toModel()
			if !ok {
				dropped++
				continue
			}
			b[key] = append(b[key], e)
		}
	}
	return b, dropped, nil
}

func (se storedEvent) toModel() (model.Event, bool) {
	title := strings.TrimSpace(se.Title)
	if se.ID == "" || title == "" || se.Type == model.TypeHoliday {
		return model.Event{}, false
	}

	e := model.Event{
		ID:          se.ID,
		Title:       se.Title,
		Type:        se.Type,
		Time:        normalizeClock(se.Time),
		Description: se.Description,
		Priority:    model.Priority(se.Priority),
	}
	if !model.IsUserType(e.Type) {
		e.Type = model.TypeOther
	}
	if !e.Priority.IsValid() {
		e.Priority = model.PriorityMedium
	}
	e.Duration = parseDuration(se.Duration)
	return e, true
}

// normalizeClock zero-pads H:MM to HH:MM so times order as strings.
// Anything that is not a clock time reads as untimed.
func normalizeClock(raw string) string {
	t, err := time.Parse(clockLayout, strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return t.Format(clockLayout)
}

// parseDuration accepts a number, a numeric string, or nothing.
func parseDuration(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return nil
		}
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
