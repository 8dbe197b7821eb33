package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/agenda/internal/adapters/blob"
	"github.com/okian/agenda/internal/adapters/http/api"
	app "github.com/okian/agenda/internal/app"
	"github.com/okian/agenda/internal/domain/holiday"
	"github.com/okian/agenda/internal/domain/types"
	"github.com/okian/agenda/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func fixedClock() time.Time { return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local) }

func newMux(t *testing.T, opts ...app.Option) (*http.ServeMux, *app.Service) {
	t.Helper()
	opts = append([]app.Option{app.WithLogger(logger.NewNop()), app.WithClock(fixedClock)}, opts...)
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux, svc
}

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	_ = json.NewDecoder(w.Body).Decode(&v)
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fields  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a server wired to a started service", t, func() {
		mux, _ := newMux(t)

		Convey("Then health exposes Prometheus metrics", func() {
			w := do(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "agenda_")
		})

		Convey("Then stats reports the service state", func() {
			w := do(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			stats := decode[map[string]interface{}](w)
			So(stats["started"], ShouldEqual, true)
			So(stats["storeKey"], ShouldEqual, "calendarEvents")
		})

		Convey("Then unknown paths are not found", func() {
			So(do(mux, "GET", "/unknown", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then wrong methods are rejected by the mux", func() {
			So(do(mux, "POST", "/calendar", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestCalendarHandler(t *testing.T) {
	Convey("Given the calendar endpoint", t, func() {
		mux, _ := newMux(t)

		Convey("When no month is given", func() {
			w := do(mux, "GET", "/calendar", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			m := decode[types.Month](w)

			Convey("Then the current month grid is returned", func() {
				So(m.Title, ShouldEqual, "Enero 2025")
				So(m.Cells, ShouldHaveLength, 42)
				So(m.Today, ShouldEqual, "2025-01-15")
			})
		})

		Convey("When navigating back from January", func() {
			m := decode[types.Month](do(mux, "GET", "/calendar?year=2025&month=0&nav=prev", ""))
			So(m.Title, ShouldEqual, "Diciembre 2024")
			So(m.Month, ShouldEqual, 11)
		})

		Convey("When navigating forward from December", func() {
			m := decode[types.Month](do(mux, "GET", "/calendar?year=2025&month=11&nav=next", ""))
			So(m.Title, ShouldEqual, "Enero 2026")
		})

		Convey("When the query is malformed", func() {
			cases := []string{
				"/calendar?year=2025",
				"/calendar?year=2025&month=12",
				"/calendar?year=abc&month=1",
				"/calendar?year=2025&month=1&nav=sideways",
			}
			for _, target := range cases {
				w := do(mux, "GET", target, "")
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "bad_request")
			}
		})
	})
}

func TestDayHandler(t *testing.T) {
	Convey("Given the day endpoints", t, func() {
		mux, _ := newMux(t)

		Convey("When reading a holiday", func() {
			w := do(mux, "GET", "/days/2025-01-01", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			day := decode[types.Day](w)
			So(day.Title, ShouldEqual, "miércoles, 1 de enero de 2025")
			So(day.Entries, ShouldHaveLength, 1)
			So(day.Entries[0].ReadOnly, ShouldBeTrue)
		})

		Convey("When reading an empty day", func() {
			day := decode[types.Day](do(mux, "GET", "/days/2025-01-20", ""))
			So(day.Entries, ShouldBeEmpty)
			So(day.Empty, ShouldEqual, "No hay eventos para este día")
		})

		Convey("When the date is malformed", func() {
			So(do(mux, "GET", "/days/2025-1-2", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When creating an event", func() {
			w := do(mux, "POST", "/days/2025-01-20/events",
				`{"title":"  Dentista ","type":"health","time":"09:30","duration":30,"priority":"high"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			res := decode[types.SubmitResult](w)

			Convey("Then the stored event is returned", func() {
				So(res.Created, ShouldBeTrue)
				So(res.Event.ID, ShouldNotBeEmpty)
				So(res.Event.Title, ShouldEqual, "Dentista")
				So(res.Event.PriorityLabel, ShouldEqual, "Alta")
				So(res.Day.Entries, ShouldHaveLength, 1)
				So(res.Warning, ShouldBeEmpty)
			})

			Convey("Then it can be updated", func() {
				w := do(mux, "PUT", "/days/2025-01-20/events/"+res.Event.ID, `{"title":"Dentista (revisión)","type":"health"}`)
				So(w.Code, ShouldEqual, http.StatusOK)
				upd := decode[types.SubmitResult](w)
				So(upd.Created, ShouldBeFalse)
				So(upd.Event.ID, ShouldEqual, res.Event.ID)
				So(upd.Event.Title, ShouldEqual, "Dentista (revisión)")
			})

			Convey("Then it can be deleted once", func() {
				w := do(mux, "DELETE", "/days/2025-01-20/events/"+res.Event.ID, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				del := decode[types.DeleteResult](w)
				So(del.ID, ShouldEqual, res.Event.ID)
				So(del.Day.Entries, ShouldBeEmpty)

				So(do(mux, "DELETE", "/days/2025-01-20/events/"+res.Event.ID, "").Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("Then the month preview shows it", func() {
				m := decode[types.Month](do(mux, "GET", "/calendar?year=2025&month=0", ""))
				for _, c := range m.Cells {
					if c.Date == "2025-01-20" {
						So(c.Preview, ShouldHaveLength, 1)
					}
				}
			})
		})

		Convey("When a POST body carries an id", func() {
			w := do(mux, "POST", "/days/2025-01-21/events", `{"id":"forged","title":"Gym","type":"personal"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(decode[types.SubmitResult](w).Event.ID, ShouldNotEqual, "forged")
		})

		Convey("When the submission is invalid", func() {
			w := do(mux, "POST", "/days/2025-01-20/events", `{"title":"   ","type":"holiday"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decode[errorBody](w)
			So(body.Code, ShouldEqual, "validation_error")
			So(len(body.Fields), ShouldBeGreaterThanOrEqualTo, 2)
		})

		Convey("When the body is not JSON", func() {
			So(do(mux, "POST", "/days/2025-01-20/events", `{`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When editing a holiday", func() {
			id := holiday.ID("2025-01-01", "Año Nuevo")
			w := do(mux, "PUT", "/days/2025-01-01/events/"+id, `{"title":"Otro","type":"work"}`)
			So(w.Code, ShouldEqual, http.StatusForbidden)
			So(decode[errorBody](w).Code, ShouldEqual, "read_only")

			So(do(mux, "DELETE", "/days/2025-01-01/events/"+id, "").Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("When updating an unknown id", func() {
			w := do(mux, "PUT", "/days/2025-01-20/events/missing", `{"title":"X","type":"work"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a store that cannot hold the blob", t, func() {
		mux, _ := newMux(t, app.WithBlobStore(blob.NewMemoryStore(blob.WithQuota(16))))

		Convey("When an event is created", func() {
			w := do(mux, "POST", "/days/2025-01-20/events", `{"title":"Reunión larga","type":"meeting"}`)

			Convey("Then the request succeeds with a save warning", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				res := decode[types.SubmitResult](w)
				So(res.Warning, ShouldEqual, app.SaveWarning)
				So(res.Day.Entries, ShouldHaveLength, 1)
			})
		})
	})
}

func TestExportHandler(t *testing.T) {
	Convey("Given the ICS endpoint", t, func() {
		mux, _ := newMux(t)
		do(mux, "POST", "/days/2025-01-20/events", `{"title":"Dentista","type":"health","time":"09:30","duration":30}`)

		Convey("When exporting January 2025", func() {
			w := do(mux, "GET", "/calendar.ics?year=2025&month=0", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "text/calendar")
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "agenda-2025-01.ics")

			body := w.Body.String()
			So(body, ShouldStartWith, "BEGIN:VCALENDAR")
			So(body, ShouldContainSubstring, "SUMMARY:Año Nuevo")
			So(body, ShouldContainSubstring, "SUMMARY:Dentista")
		})

		Convey("When no month is given the current one is exported", func() {
			w := do(mux, "GET", "/calendar.ics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "agenda-2025-01.ics")
		})

		Convey("When the month is out of range", func() {
			So(do(mux, "GET", "/calendar.ics?year=2025&month=-1", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		handler := api.NewStatsHandler(&mockStatsProvider{
			stats: map[string]interface{}{"events": 3, "buckets": 2},
		})

		Convey("Then it returns the provider's stats as JSON", func() {
			w := httptest.NewRecorder()
			handler.HandleStats(w, httptest.NewRequest("GET", "/stats", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			stats := decode[map[string]interface{}](w)
			So(stats["events"], ShouldEqual, 3)
			So(stats["buckets"], ShouldEqual, 2)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		cause := errors.New("boom")
		err := api.WrapKind("api.op", api.ErrBadRequest, cause)

		So(err.Error(), ShouldEqual, "api.op: bad request: boom")
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(api.NewKind("api.op", api.ErrNotFound).Error(), ShouldEqual, "api.op: not found")
	})
}
