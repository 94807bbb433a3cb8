package main

import (
	"strconv"
	"sync/atomic"

	"github.com/krouter-io/krouter/internal/admin"
	"github.com/krouter-io/krouter/internal/config"
	"github.com/krouter-io/krouter/internal/route"
)

// treeHolder publishes the routing tree behind an atomic pointer so
// reconfiguration swaps the whole tree while walks are in flight.
type treeHolder struct {
	root atomic.Pointer[route.ProxyNode]
}

func (h *treeHolder) Store(tree *route.ProxyNode) {
	h.root.Store(tree)
}

// Root implements admin.TreeSource. Returns a typed nil-free Node or nil
// when no tree has been published yet.
func (h *treeHolder) Root() route.Node {
	if tree := h.root.Load(); tree != nil {
		return tree
	}
	return nil
}

// configSource adapts the loaded config to admin.ConfigSource.
type configSource struct {
	cfg *config.Config
}

func (c *configSource) ConfigString() string {
	// A file-backed config is reported through config_file instead.
	if c.cfg.Path != "" {
		return ""
	}
	return c.cfg.Source
}

func (c *configSource) ConfigFile() string {
	return c.cfg.Path
}

// optionsSource adapts the loaded config to admin.OptionsSource.
type optionsSource struct {
	cfg *config.Config
}

func (o *optionsSource) Options() []admin.Option {
	return []admin.Option{
		{Name: "admin_addr", Value: o.cfg.Proxy.AdminAddr},
		{Name: "max_background_tasks", Value: strconv.FormatInt(o.cfg.Proxy.MaxBackgroundTasks, 10)},
		{Name: "log_level", Value: o.cfg.Observability.LogLevel},
		{Name: "log_format", Value: o.cfg.Observability.LogFormat},
	}
}

func (o *optionsSource) Option(name string) (string, bool) {
	for _, opt := range o.Options() {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return "", false
}

var (
	_ admin.TreeSource    = (*treeHolder)(nil)
	_ admin.ConfigSource  = (*configSource)(nil)
	_ admin.OptionsSource = (*optionsSource)(nil)
)
