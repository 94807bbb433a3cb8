package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krouter-io/krouter/internal/admin"
	"github.com/krouter-io/krouter/internal/route"
	"github.com/krouter-io/krouter/internal/stats"
	"github.com/krouter-io/krouter/internal/tasks"
)

type staticTrees struct {
	root route.Node
}

func (s staticTrees) Root() route.Node { return s.root }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	proxy, err := route.BuildTree(route.TreeSpec{
		Root: "fan",
		Nodes: map[string]route.NodeSpec{
			"fan": {Type: "all-sync", Children: []string{"x", "y"}},
			"x":   {Type: "destination", Address: "x:11211"},
			"y":   {Type: "destination", Address: "y:11211"},
		},
	}, nil)
	require.NoError(t, err)

	runner := tasks.NewRunner(4, nil)
	t.Cleanup(runner.Close)

	svc, err := admin.New(admin.ServiceConfig{
		Trees:   staticTrees{root: proxy},
		Runner:  runner,
		Version: "krouter test",
	})
	require.NoError(t, err)

	st := stats.New()
	return New(Config{
		Addr:    "127.0.0.1:0",
		Admin:   svc,
		Metrics: st.Handler(),
	})
}

func get(t *testing.T, handler http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestAdminEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()

	code, body := get(t, handler, "/admin?cmd=version")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "krouter test", body)
}

func TestAdminEndpointRouteCommand(t *testing.T) {
	handler := newTestServer(t).Handler()

	target := "/admin?cmd=" + url.QueryEscape("route(get,widget)")
	code, body := get(t, handler, target)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "x:11211\r\ny:11211", body)
}

func TestAdminEndpointMissingCmd(t *testing.T) {
	handler := newTestServer(t).Handler()

	code, _ := get(t, handler, "/admin")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminEndpointInvalidKey(t *testing.T) {
	handler := newTestServer(t).Handler()

	code, _ := get(t, handler, "/admin?cmd="+url.QueryEscape("has space"))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()

	code, body := get(t, handler, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "krouter_config_age_seconds")
}

func TestStartAndClose(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, srv.Start())
	defer srv.Close()

	addr := srv.Addr()
	require.NotEqual(t, "127.0.0.1:0", addr, "Addr reports the bound port")

	resp, err := http.Get("http://" + addr + "/admin?cmd=version")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "krouter test", string(body))

	require.NoError(t, srv.Close())
}
