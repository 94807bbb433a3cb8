package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krouter-io/krouter/internal/admin"
	"github.com/krouter-io/krouter/internal/config"
	"github.com/krouter-io/krouter/internal/logging"
	"github.com/krouter-io/krouter/internal/route"
	"github.com/krouter-io/krouter/internal/server"
	"github.com/krouter-io/krouter/internal/stats"
	"github.com/krouter-io/krouter/internal/tasks"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	fs := flag.NewFlagSet("krouterd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	adminAddr := fs.String("admin-addr", "", "Override admin/metrics HTTP address (e.g., :5555)")
	logLevel := fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "Print version information and exit")

	fs.Usage = func() {
		fmt.Println(`Usage: krouterd [options]

Start the krouter routing instance.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("krouterd version %s (built %s, commit %s)\n", version, buildTime, gitCommit)
		return
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI overrides
	if *adminAddr != "" {
		cfg.Proxy.AdminAddr = *adminAddr
	}
	if *logLevel != "" {
		cfg.Observability.LogLevel = *logLevel
	}

	logger := logging.Configure(cfg.Observability.LogLevel, cfg.Observability.LogFormat)

	st := stats.New()

	// Build and publish the routing tree. The data-plane transport toward
	// backends is provided by the proxy frontend collaborator; the routing
	// instance itself builds transportless destinations, which fully serve
	// the dry-run introspection surface.
	trees := &treeHolder{}
	if len(cfg.Routing.Nodes) > 0 {
		tree, err := route.BuildTree(cfg.Routing, nil)
		if err != nil {
			logger.Errorf("failed to build routing tree", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		trees.Store(tree)
		st.SetConfigLoaded(time.Now())
		logger.Infof("routing tree published", map[string]any{
			"root":  cfg.Routing.Root,
			"nodes": len(cfg.Routing.Nodes),
		})
	} else {
		logger.Warn("no routing section configured; admin route commands will fail")
	}

	runner := tasks.NewRunner(cfg.Proxy.MaxBackgroundTasks, logger)

	svc, err := admin.New(admin.ServiceConfig{
		Trees:   trees,
		Runner:  runner,
		Config:  &configSource{cfg: cfg},
		Options: &optionsSource{cfg: cfg},
		Stats:   st,
		Version: fmt.Sprintf("krouter %s", version),
		Logger:  logger,
	})
	if err != nil {
		logger.Errorf("failed to create admin service", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	srv := server.New(server.Config{
		Addr:    cfg.Proxy.AdminAddr,
		Admin:   svc,
		Metrics: st.Handler(),
		Logger:  logger,
	})
	if err := srv.Start(); err != nil {
		logger.Errorf("failed to start admin http server", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Infof("received shutdown signal", map[string]any{"signal": sig.String()})

	if err := srv.Close(); err != nil {
		logger.Errorf("shutdown error", map[string]any{"error": err.Error()})
	}
	runner.Close()
	logger.Info("shutdown complete")
}
