package service

import (
	"strings"

	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/internal/domain/types"
	"github.com/okian/agenda/pkg/metrics"
)

// User-facing validation messages.
const (
	msgDateRequired  = "Por favor selecciona un día primero"
	msgDateInvalid   = "La fecha no es válida"
	msgTitleRequired = "El título del evento es obligatorio"
	msgTypeRequired  = "Por favor selecciona un tipo de evento"
	msgTypeUnknown   = "El tipo de evento no es válido"
	msgTimeInvalid   = "La hora debe tener el formato HH:MM"
	msgDurationNeg   = "La duración no puede ser negativa"
	msgPriorityBad   = "La prioridad no es válida"
)

// validate checks in and returns the normalized key and event. The event id
// is copied from in and may be empty.
func validate(in types.EventInput) (model.DateKey, model.Event, error) {
	verr := &ValidationError{}

	var key model.DateKey
	switch date := strings.TrimSpace(in.Date); date {
	case "":
		verr.add("date", msgDateRequired)
	default:
		k, err := model.ParseDateKey(date)
		if err != nil {
			verr.add("date", msgDateInvalid)
		}
		key = k
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.add("title", msgTitleRequired)
	}

	typ := model.Type(strings.TrimSpace(in.Type))
	switch {
	case typ == "":
		verr.add("type", msgTypeRequired)
	case !model.IsUserType(typ):
		verr.add("type", msgTypeUnknown)
	}

	tm := strings.TrimSpace(in.Time)
	if tm != "" && !validClock(tm) {
		verr.add("time", msgTimeInvalid)
	}

	if in.Duration != nil && *in.Duration < 0 {
		verr.add("duration", msgDurationNeg)
	}

	prio := model.Priority(strings.TrimSpace(in.Priority))
	switch {
	case prio == "":
		prio = model.PriorityMedium
	case !prio.IsValid():
		verr.add("priority", msgPriorityBad)
	}

	if err := verr.orNil(); err != nil {
		for _, f := range verr.Fields {
			metrics.RecordValidationError(f.Field)
		}
		return "", model.Event{}, err
	}

	e := model.Event{
		ID:          strings.TrimSpace(in.ID),
		Title:       title,
		Type:        typ,
		Time:        tm,
		Description: strings.TrimSpace(in.Description),
		Priority:    prio,
	}
	if in.Duration != nil {
		d := *in.Duration
		e.Duration = &d
	}
	return key, e, nil
}

// validClock accepts HH:MM on a 24 hour clock.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}
