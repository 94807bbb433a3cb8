package stats

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigAge(t *testing.T) {
	s := New()
	now := time.Unix(1_700_000_000, 0)

	assert.Equal(t, time.Duration(0), s.ConfigAge(now), "unset config has age zero")

	s.SetConfigLoaded(now.Add(-42 * time.Second))
	assert.Equal(t, 42*time.Second, s.ConfigAge(now))

	// Clock skew never yields a negative age.
	s.SetConfigLoaded(now.Add(10 * time.Second))
	assert.Equal(t, time.Duration(0), s.ConfigAge(now))
}

func TestCounters(t *testing.T) {
	s := New()
	s.AdminCommand("route", "ok")
	s.AdminCommand("route", "ok")
	s.AdminCommand("version", "error")
	s.RecordingWalk(3)
	s.RecordingWalk(0)

	families, err := s.Registry().Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		byName[mf.GetName()] = total
	}
	assert.Equal(t, float64(3), byName["krouter_admin_commands_total"])
	assert.Equal(t, float64(2), byName["krouter_recording_walks_total"])
	assert.Equal(t, float64(3), byName["krouter_recording_destinations_total"])
}

func TestLintMetrics(t *testing.T) {
	s := New()
	problems, err := testutil.GatherAndLint(s.Registry())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestHandlerServesScrapes(t *testing.T) {
	s := New()
	s.AdminCommand("version", "ok")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "krouter_admin_commands_total")
	assert.Contains(t, body, "krouter_config_age_seconds")
}
