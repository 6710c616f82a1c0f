package metrics_test

import (
	"testing"

	"github.com/okian/rexbot/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("bot"),
		)
		So(m, ShouldNotBeNil)

		Convey("All metrics register without collision", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Counters report no families until first increment; gathering
			// must still succeed on a freshly initialized registry.
			So(families, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Recording helpers do not panic", func() {
			metrics.RecordCommandProcessed("raids")
			metrics.RecordCommandError("raids")
			metrics.RecordCommandDuration("raids", 12.5)
			metrics.RecordScoringDuration(3.2)
			metrics.RecordReportRendered()
			metrics.RecordRosterFetchDuration(88.0)
			metrics.RecordRosterFetchError()
			metrics.UpdateRegisteredUsers(10)
			metrics.UpdateRegisteredGuilds(2)
			metrics.RecordOpsRequest("stats", "GET", "200")
			metrics.RecordOpsRequestDuration("stats", "GET", 1.5)
		})

		Convey("The shared registry gathers the recorded samples", func() {
			families, err := metrics.Registry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
