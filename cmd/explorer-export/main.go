// explorer-export renders the graph without a terminal: fetch (or load
// the cached snapshot), run the layout to rest, and write a PNG and/or
// a view-model JSON for embedding elsewhere.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/config"
	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/layout"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
	"github.com/dd0wney/cluso-explorer/pkg/render"
	"github.com/dd0wney/cluso-explorer/pkg/session"
)

type viewModelExport struct {
	Nodes     []graph.ViewNode           `json:"nodes"`
	Links     []graph.ViewLink           `json:"links"`
	Positions map[string]layout.Position `json:"positions"`
}

func main() {
	configPath := flag.String("config", "", "path to explorer.yaml")
	pngPath := flag.String("png", "graph.png", "output PNG path (empty to skip)")
	jsonPath := flag.String("json", "", "output view-model JSON path (empty to skip)")
	mode := flag.String("mode", "graph", "view mode: graph or clusters")
	minDegree := flag.Int("min-degree", 1, "minimum degree filter")
	steps := flag.Int("steps", 300, "layout steps to run")
	fromSnapshot := flag.Bool("snapshot", false, "render the cached snapshot instead of fetching")
	flag.Parse()

	if err := run(*configPath, *pngPath, *jsonPath, *mode, *minDegree, *steps, *fromSnapshot); err != nil {
		fmt.Fprintf(os.Stderr, "explorer-export: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, pngPath, jsonPath, mode string, minDegree, steps int, fromSnapshot bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	payload, err := loadPayload(cfg, log, fromSnapshot)
	if err != nil {
		return err
	}

	sess := session.New(graph.New(payload.Nodes, payload.Edges), log)
	if mode == "clusters" {
		sess.SetMode(session.ModeClusters)
	}
	sess.SetMinDegree(minDegree)
	nodes, links := sess.ViewModel()

	pxW, pxH := float64(cfg.Canvas.Width), float64(cfg.Canvas.Height)
	sim := layout.NewForceSimulator(pxW, pxH)
	engine := layout.NewEngine(sim, cfg.ClustersParams(), cfg.DetailParams(), nil)
	engine.Apply(nodes, links, sess.LayoutSignal())
	for i := 0; i < steps; i++ {
		engine.Step()
	}

	style := render.StyleBoard
	if mode == "clusters" {
		style = render.StyleCircles
	}
	frame := render.Frame{
		Width:     pxW,
		Height:    pxH,
		Style:     style,
		Nodes:     nodes,
		Links:     links,
		Positions: engine.Positions(),
	}

	if pngPath != "" {
		if err := writePNG(cfg, frame, pngPath); err != nil {
			return err
		}
		log.Info("png written", logging.Path(pngPath), logging.Count(len(nodes)))
	}
	if jsonPath != "" {
		if err := writeJSON(frame, jsonPath); err != nil {
			return err
		}
		log.Info("view model written", logging.Path(jsonPath))
	}
	return nil
}

func loadPayload(cfg config.Config, log logging.Logger, fromSnapshot bool) (*api.GraphPayload, error) {
	if fromSnapshot {
		cache := api.NewSnapshotCache(cfg.Cache.Path, log)
		payload, err := cache.Load()
		if err != nil {
			return nil, err
		}
		if payload == nil {
			return nil, fmt.Errorf("no snapshot at %s", cfg.Cache.Path)
		}
		return payload, nil
	}

	client := api.New(cfg.Backend.URL, cfg.Backend.Timeout(), log, nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout())
	defer cancel()
	return client.FetchGraph(ctx, false)
}

func writePNG(cfg config.Config, frame render.Frame, path string) error {
	pal, err := cfg.RenderPalette()
	if err != nil {
		return err
	}
	surface := render.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height)
	render.New(pal).Paint(surface, frame)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	return png.Encode(f, surface.Image())
}

func writeJSON(frame render.Frame, path string) error {
	out := viewModelExport{
		Nodes:     frame.Nodes,
		Links:     frame.Links,
		Positions: frame.Positions,
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
