package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/config"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
	"github.com/dd0wney/cluso-explorer/pkg/metrics"
	"github.com/dd0wney/cluso-explorer/pkg/tui"
)

func main() {
	configPath := flag.String("config", "", "path to explorer.yaml")
	backendURL := flag.String("backend", "", "backend URL override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "explorer: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}

	// stdout belongs to the TUI; logs go to stderr.
	log := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)

	client := api.New(cfg.Backend.URL, cfg.Backend.Timeout(), log, reg)
	var cache *api.SnapshotCache
	if cfg.Cache.Path != "" {
		cache = api.NewSnapshotCache(cfg.Cache.Path, log)
	}

	app := tui.New(cfg, client, cache, reg, log)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Error("program exited", logging.Error(err))
		os.Exit(1)
	}
}
