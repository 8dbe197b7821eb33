package api

import (
	"context"
	"net/http"

	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/internal/domain/types"
)

// DayDependencies defines the detail-view and editing dependencies.
type DayDependencies interface {
	SelectDate(ctx context.Context, key model.DateKey) (types.Day, error)
	SubmitEvent(ctx context.Context, in types.EventInput) (types.SubmitResult, error)
	DeleteEvent(ctx context.Context, key model.DateKey, id string) (types.DeleteResult, error)
}

// DayHandler serves one date and its events.
type DayHandler struct {
	deps DayDependencies
}

// NewDayHandler creates a new day handler.
func NewDayHandler(deps DayDependencies) *DayHandler {
	return &DayHandler{deps: deps}
}

// HandleGetDay handles GET /days/{date} requests.
func (h *DayHandler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_day"
	key, err := pathDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	day, err := h.deps.SelectDate(r.Context(), key)
	if err != nil {
		writeCommandError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// HandlePostEvent handles POST /days/{date}/events requests.
// A save warning does not fail the request; the event is kept in memory.
func (h *DayHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	in, ok := h.input(w, r, op)
	if !ok {
		return
	}
	in.ID = ""

	res, err := h.deps.SubmitEvent(r.Context(), in)
	if err != nil {
		writeCommandError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// HandlePutEvent handles PUT /days/{date}/events/{id} requests.
func (h *DayHandler) HandlePutEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_event"
	in, ok := h.input(w, r, op)
	if !ok {
		return
	}
	in.ID = r.PathValue("id")

	res, err := h.deps.SubmitEvent(r.Context(), in)
	if err != nil {
		writeCommandError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDeleteEvent handles DELETE /days/{date}/events/{id} requests.
func (h *DayHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_event"
	key, err := pathDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.DeleteEvent(r.Context(), key, r.PathValue("id"))
	if err != nil {
		writeCommandError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// input decodes the body and pins its date to the path.
func (h *DayHandler) input(w http.ResponseWriter, r *http.Request, op string) (types.EventInput, bool) {
	key, err := pathDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return types.EventInput{}, false
	}
	in, err := decodeInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return types.EventInput{}, false
	}
	in.Date = key.String()
	return in, true
}
