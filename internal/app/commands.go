package service

import (
	"context"
	"fmt"

	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/internal/domain/types"
	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

// Action is a month navigation step.
type Action string

// Navigation actions. NavNone redisplays the given anchor.
const (
	NavNone  Action = ""
	NavPrev  Action = "prev"
	NavNext  Action = "next"
	NavToday Action = "today"
)

// Navigate applies action to from and returns the resulting month view.
// An invalid (zero) from anchor means the current month.
func (s *Service) Navigate(ctx context.Context, from calendar.Anchor, action Action) (types.Month, error) {
	if !from.Valid() {
		from = calendar.AnchorFor(s.now())
	}

	var to calendar.Anchor
	switch action {
	case NavNone:
		to = from
	case NavPrev:
		to = from.Prev()
	case NavNext:
		to = from.Next()
	case NavToday:
		to = calendar.AnchorFor(s.now())
	default:
		return types.Month{}, fmt.Errorf("%w: %q", ErrInvalidNav, action)
	}

	s.logger.Debug(ctx, "navigate",
		logger.String("from", from.String()),
		logger.String("to", to.String()),
		logger.String("action", string(action)),
	)
	return monthView(s.Grid(ctx, to)), nil
}

// SelectDate returns the detail view of key.
func (s *Service) SelectDate(ctx context.Context, key model.DateKey) (types.Day, error) {
	if _, err := model.ParseDateKey(string(key)); err != nil {
		return types.Day{}, &ValidationError{Fields: []FieldError{{Field: "date", Message: msgDateInvalid}}}
	}
	return s.day(key), nil
}

func (s *Service) day(key model.DateKey) types.Day {
	entries := calendar.Day(key, s.store, s.holidays.For(key.Date().Year))
	return dayView(key, entries)
}

// SubmitEvent creates (empty ID) or updates an event on in.Date.
func (s *Service) SubmitEvent(ctx context.Context, in types.EventInput) (types.SubmitResult, error) {
	key, e, err := validate(in)
	if err != nil {
		return types.SubmitResult{}, err
	}

	created := e.ID == ""
	if created {
		e.ID = model.NewEventID()
	} else if err := s.checkEditable(key, e.ID); err != nil {
		return types.SubmitResult{}, err
	}

	var notFound bool
	warning := s.apply(ctx, func() bool {
		if !created {
			// Re-check under the write lock; a concurrent delete may have won.
			if _, ok := s.store.Find(key, e.ID); !ok {
				notFound = true
				return false
			}
		}
		s.store.Upsert(key, e)
		return true
	})
	if notFound {
		return types.SubmitResult{}, fmt.Errorf("%w: %s on %s", ErrNotFound, e.ID, key)
	}

	s.logger.Debug(ctx, "event saved",
		logger.String("date", key.String()),
		logger.String("id", e.ID),
		logger.Bool("created", created),
	)
	return types.SubmitResult{
		Event:   entryView(model.UserEvent{Event: e}),
		Created: created,
		Day:     s.day(key),
		Warning: warning,
	}, nil
}

// DeleteEvent removes event id from date key.
func (s *Service) DeleteEvent(ctx context.Context, key model.DateKey, id string) (types.DeleteResult, error) {
	if _, err := model.ParseDateKey(string(key)); err != nil {
		return types.DeleteResult{}, &ValidationError{Fields: []FieldError{{Field: "date", Message: msgDateInvalid}}}
	}
	if err := s.checkEditable(key, id); err != nil {
		return types.DeleteResult{}, err
	}

	var removed bool
	warning := s.apply(ctx, func() bool {
		removed = s.store.Remove(key, id)
		return removed
	})
	if !removed {
		return types.DeleteResult{}, fmt.Errorf("%w: %s on %s", ErrNotFound, id, key)
	}

	s.logger.Debug(ctx, "event deleted", logger.String("date", key.String()), logger.String("id", id))
	return types.DeleteResult{ID: id, Day: s.day(key), Warning: warning}, nil
}

// checkEditable rejects holiday ids and unknown ids.
func (s *Service) checkEditable(key model.DateKey, id string) error {
	for _, h := range s.holidays.For(key.Date().Year).Get(key) {
		if h.ID() == id {
			metrics.RecordErrorByComponent("service", "read_only")
			return fmt.Errorf("%w: %s", ErrReadOnly, h.Title())
		}
	}
	if _, ok := s.store.Find(key, id); !ok {
		return fmt.Errorf("%w: %s on %s", ErrNotFound, id, key)
	}
	return nil
}
