package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/justinas/alice"

	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

// Chain returns the middleware stack wrapped around the whole mux:
// panic recovery outermost, then request logging.
func Chain(log logger.Logger) alice.Chain {
	if log == nil {
		log = logger.Get().Named("http")
	}
	return alice.New(Recoverer(log), RequestLogger(log))
}

// Recoverer turns a handler panic into a 500 response.
func Recoverer(log logger.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				log.Error(r.Context(), "handler panicked",
					logger.Any("panic", rec),
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
				)
				metrics.RecordErrorByComponent("http", "panic")
				writeError(w, http.StatusInternalServerError, "internal_error", NewKind("api.recover", ErrInternal))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one debug line per request.
func RequestLogger(log logger.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			log.Debug(r.Context(), "http request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", wrapped.status),
				logger.Duration("duration", time.Since(start)),
			)
		})
	}
}
