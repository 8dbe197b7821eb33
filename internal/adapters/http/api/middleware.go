package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/agenda/pkg/metrics"
)

// instrument records request count, latency and error metrics for one route.
func instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		ms := float64(time.Since(start).Milliseconds())
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, ms)

		kind, severity := errorKind(rec.status)
		if kind == "" {
			return
		}
		metrics.RecordErrorByEndpoint(endpoint, r.Method, kind)
		metrics.RecordErrorByType(kind, severity)
		metrics.RecordErrorLatency("http", kind, ms)
	}
}

// errorKind maps a response status to the error code the handlers write for
// it. Successful statuses map to "".
func errorKind(status int) (kind, severity string) {
	switch {
	case status < http.StatusBadRequest:
		return "", ""
	case status == http.StatusBadRequest:
		return "bad_request", "low"
	case status == http.StatusForbidden:
		return "read_only", "low"
	case status == http.StatusNotFound:
		return "not_found", "low"
	case status == http.StatusServiceUnavailable:
		return "unavailable", "high"
	case status >= http.StatusInternalServerError:
		return "internal_error", "high"
	default:
		return "client_error", "medium"
	}
}

// statusRecorder remembers the first status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
