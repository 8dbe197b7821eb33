package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/okian/agenda/internal/adapters/export"
	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/model"
)

// ExportDependencies defines the grid source for iCalendar export.
type ExportDependencies interface {
	Grid(ctx context.Context, anchor calendar.Anchor) calendar.Grid
	Today() model.Date
}

// ExportHandler serves the displayed month as text/calendar.
type ExportHandler struct {
	deps   ExportDependencies
	writer *export.Writer
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies, opts ...export.Option) *ExportHandler {
	return &ExportHandler{deps: deps, writer: export.NewWriter(opts...)}
}

// HandleGetICS handles GET /calendar.ics?year=&month= requests.
func (h *ExportHandler) HandleGetICS(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar_ics"
	anchor, err := anchorFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !anchor.Valid() {
		today := h.deps.Today()
		anchor, _ = calendar.NewAnchor(today.Year, today.Month)
	}

	// Buffer so a serialization failure still yields a clean 500.
	var buf bytes.Buffer
	if err := h.writer.Write(&buf, h.deps.Grid(r.Context(), anchor)); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "agenda-"+anchor.String()+".ics"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
