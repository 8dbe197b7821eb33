package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/agenda/internal/adapters/http/api"
	"github.com/okian/agenda/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChain(t *testing.T) {
	Convey("Given the middleware chain around a mux", t, func() {
		var buf bytes.Buffer
		if err := logger.Init(logger.WithWriter(&buf)); err != nil {
			t.Fatalf("logger init: %v", err)
		}
		_ = logger.SetLevelString("debug")
		defer func() { _ = logger.SetLevelString("info") }()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) { panic("kaput") })
		mux.HandleFunc("GET /ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		h := api.Chain(logger.Get().Named("http")).Then(mux)

		Convey("When a handler panics", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

			Convey("Then the client gets a 500 and the panic is logged", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "internal_error")
				So(buf.String(), ShouldContainSubstring, "handler panicked")
			})
		})

		Convey("When a handler succeeds", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

			Convey("Then the status passes through and the request is logged", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
				So(buf.String(), ShouldContainSubstring, "http request")
				So(buf.String(), ShouldContainSubstring, "/ok")
			})
		})
	})
}
