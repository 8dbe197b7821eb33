// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/agenda/internal/adapters/export"
	app "github.com/okian/agenda/internal/app"
	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/internal/domain/types"
)

// maxBodyBytes bounds event submissions.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CalendarDependencies
	DayDependencies
	ExportDependencies
}

// Server wires HTTP routes for the calendar API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	calendarHandler *CalendarHandler
	dayHandler      *DayHandler
	exportHandler   *ExportHandler
}

// NewServer creates a new API server with all handlers. exportOpts configure
// the iCalendar writer.
func NewServer(deps Dependencies, statsProvider StatsProvider, exportOpts ...export.Option) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		calendarHandler: NewCalendarHandler(deps),
		dayHandler:      NewDayHandler(deps),
		exportHandler:   NewExportHandler(deps, exportOpts...),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", instrument("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /stats", instrument("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("GET /calendar", instrument("calendar", s.calendarHandler.HandleGetCalendar))
	mux.HandleFunc("GET /calendar.ics", instrument("calendar_ics", s.exportHandler.HandleGetICS))
	mux.HandleFunc("GET /days/{date}", instrument("day", s.dayHandler.HandleGetDay))
	mux.HandleFunc("POST /days/{date}/events", instrument("events", s.dayHandler.HandlePostEvent))
	mux.HandleFunc("PUT /days/{date}/events/{id}", instrument("event", s.dayHandler.HandlePutEvent))
	mux.HandleFunc("DELETE /days/{date}/events/{id}", instrument("event", s.dayHandler.HandleDeleteEvent))
}

type errorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Fields  []app.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeCommandError translates service errors into status codes.
func writeCommandError(w http.ResponseWriter, op string, err error) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: WrapKind(op, ErrBadRequest, err).Error(),
			Fields:  verr.Fields,
		})
	case errors.Is(err, app.ErrInvalidNav),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, model.ErrInvalidDateKey):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, app.ErrReadOnly):
		writeError(w, http.StatusForbidden, "read_only", WrapKind(op, ErrForbidden, err))
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}

// anchorFromQuery reads year and month (zero-indexed). Both absent means the
// zero Anchor, which the service resolves to the current month.
func anchorFromQuery(r *http.Request) (calendar.Anchor, error) {
	q := r.URL.Query()
	ys, ms := q.Get("year"), q.Get("month")
	if ys == "" && ms == "" {
		return calendar.Anchor{}, nil
	}
	if ys == "" || ms == "" {
		return calendar.Anchor{}, errors.New("year and month must be given together")
	}
	year, err := strconv.Atoi(ys)
	if err != nil {
		return calendar.Anchor{}, errors.New("invalid year")
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return calendar.Anchor{}, errors.New("invalid month")
	}
	return calendar.NewAnchor(year, month)
}

// pathDate reads the {date} wildcard.
func pathDate(r *http.Request) (model.DateKey, error) {
	return model.ParseDateKey(r.PathValue("date"))
}

func decodeInput(w http.ResponseWriter, r *http.Request) (types.EventInput, error) {
	var in types.EventInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return types.EventInput{}, err
	}
	return in, nil
}
