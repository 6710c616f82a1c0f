package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/rexbot/internal/adapters/http/api"
	. "github.com/smartystreets/goconvey/convey"
)

type stubStats map[string]interface{}

func (s stubStats) Stats() map[string]interface{} { return s }

func newOpsServer() *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(stubStats{"started": true, "requests": 7}).Register(mux)
	return httptest.NewServer(mux)
}

func TestOpsEndpoints(t *testing.T) {
	Convey("Given an ops server", t, func() {
		server := newOpsServer()
		defer server.Close()

		Convey("Healthz reports ok", func() {
			resp, err := http.Get(server.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var body map[string]string
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("Stats returns the provider's view", func() {
			resp, err := http.Get(server.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var body map[string]interface{}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body["started"], ShouldEqual, true)
			So(body["requests"], ShouldEqual, float64(7))
		})

		Convey("Metrics serves the Prometheus registry", func() {
			resp, err := http.Get(server.URL + "/metrics")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Non-GET methods are rejected", func() {
			resp, err := http.Post(server.URL+"/stats", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
