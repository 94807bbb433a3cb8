// Package stats exposes Prometheus instrumentation for the routing instance.
package stats

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stats holds the counters and gauges the routing instance publishes, plus
// the config timestamp snapshot the admin "config_age" command reads.
// All methods are safe for concurrent use.
type Stats struct {
	registry *prometheus.Registry

	// configLoadedAt is unix seconds of the last config publish, 0 = never.
	configLoadedAt atomic.Int64

	adminCommands        *prometheus.CounterVec
	recordingWalks       prometheus.Counter
	destinationsRecorded prometheus.Counter
}

// New creates a Stats with its own registry, so tests never collide on the
// default global registry.
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		adminCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "krouter_admin_commands_total",
			Help: "Admin commands served, by command name and outcome.",
		}, []string{"command", "outcome"}),
		recordingWalks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "krouter_recording_walks_total",
			Help: "Dry-run recording walks completed.",
		}),
		destinationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "krouter_recording_destinations_total",
			Help: "Destinations reported across all recording walks.",
		}),
	}
	configAge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "krouter_config_age_seconds",
		Help: "Seconds since the current routing configuration was published.",
	}, func() float64 {
		return s.ConfigAge(time.Now()).Seconds()
	})

	s.registry.MustRegister(s.adminCommands, s.recordingWalks, s.destinationsRecorded, configAge)
	return s
}

// AdminCommand counts one served admin command. outcome is "ok" or "error".
func (s *Stats) AdminCommand(command, outcome string) {
	s.adminCommands.WithLabelValues(command, outcome).Inc()
}

// RecordingWalk counts one completed dry-run walk and the destinations it
// reported.
func (s *Stats) RecordingWalk(destinations int) {
	s.recordingWalks.Inc()
	s.destinationsRecorded.Add(float64(destinations))
}

// SetConfigLoaded records the instant the current configuration was
// published. Called on startup and on every atomic tree swap.
func (s *Stats) SetConfigLoaded(t time.Time) {
	s.configLoadedAt.Store(t.Unix())
}

// ConfigAge returns how long the current configuration has been live, or 0
// when no configuration has been published yet.
func (s *Stats) ConfigAge(now time.Time) time.Duration {
	loaded := s.configLoadedAt.Load()
	if loaded == 0 {
		return 0
	}
	age := now.Unix() - loaded
	if age < 0 {
		age = 0
	}
	return time.Duration(age) * time.Second
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func (s *Stats) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}
