package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithRegistry(reg), WithNamespace("test"))

		Convey("When requests and seeds are recorded", func() {
			m.ObserveRequest(http.MethodGet, "/birds", http.StatusOK, 3*time.Millisecond)
			m.ObserveRequest(http.MethodGet, "/birds", http.StatusOK, 5*time.Millisecond)
			m.AddSeededRows(2)
			m.AddSeededRows(0)

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/birds", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.seededRows), ShouldEqual, 2)
				So(m.Registry(), ShouldEqual, reg)
			})

			Convey("Then the handler exposes them", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "test_store_seeded_rows_total 2")
				So(rec.Body.String(), ShouldContainSubstring, "test_http_request_duration_seconds")
			})
		})
	})
}
