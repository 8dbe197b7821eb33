package api

import (
	"context"
	"net/http"

	app "github.com/okian/agenda/internal/app"
	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/types"
)

// CalendarDependencies defines the month navigation dependency.
type CalendarDependencies interface {
	Navigate(ctx context.Context, from calendar.Anchor, action app.Action) (types.Month, error)
}

// CalendarHandler serves the month grid.
type CalendarHandler struct {
	deps CalendarDependencies
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(deps CalendarDependencies) *CalendarHandler {
	return &CalendarHandler{deps: deps}
}

// HandleGetCalendar handles GET /calendar?year=&month=&nav= requests.
func (h *CalendarHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar"
	anchor, err := anchorFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	month, err := h.deps.Navigate(r.Context(), anchor, app.Action(r.URL.Query().Get("nav")))
	if err != nil {
		writeCommandError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, month)
}
