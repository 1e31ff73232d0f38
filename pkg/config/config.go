// Package config loads explorer settings from YAML. Every field has a
// working default, so a missing file yields a fully usable config
// pointed at a local backend.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-explorer/pkg/layout"
	"github.com/dd0wney/cluso-explorer/pkg/render"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "explorer.yaml"

// Config is the root of explorer.yaml.
type Config struct {
	Backend  Backend      `yaml:"backend"`
	Canvas   Canvas       `yaml:"canvas"`
	Layout   LayoutTuning `yaml:"layout"`
	Palette  PaletteHex   `yaml:"palette"`
	Cache    Cache        `yaml:"cache"`
	LogLevel string       `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Backend names the graph server and its request budget.
type Backend struct {
	URL            string `yaml:"url" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gt=0"`
}

// Timeout converts the configured budget to a duration.
func (b Backend) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Canvas sets the drawing surface size in pixels.
type Canvas struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// Force tunes one view mode's physics.
type Force struct {
	Charge            float64 `yaml:"charge" validate:"lt=0"`
	LinkDistanceBase  float64 `yaml:"link_distance_base" validate:"gt=0"`
	LinkDistanceScale float64 `yaml:"link_distance_scale" validate:"gte=0"`
	MinLinkDistance   float64 `yaml:"min_link_distance" validate:"gt=0"`
}

// LayoutTuning carries the per-mode force parameters.
type LayoutTuning struct {
	Clusters Force `yaml:"clusters"`
	Detail   Force `yaml:"detail"`
}

// PaletteHex overrides renderer colours with hex strings. Empty fields
// keep the stock theme.
type PaletteHex struct {
	Clusters      []string `yaml:"clusters" validate:"dive,hexcolor"`
	Background    string   `yaml:"background" validate:"omitempty,hexcolor"`
	SelectionGlow string   `yaml:"selection_glow" validate:"omitempty,hexcolor"`
}

// Cache locates the on-disk graph snapshot.
type Cache struct {
	Path string `yaml:"path"`
}

// Default returns the stock configuration.
func Default() Config {
	clusters := layout.ClustersParams()
	detail := layout.DetailParams()
	return Config{
		Backend: Backend{URL: "http://localhost:8000", TimeoutSeconds: 15},
		Canvas:  Canvas{Width: 1280, Height: 800},
		Layout: LayoutTuning{
			Clusters: forceFromParams(clusters),
			Detail:   forceFromParams(detail),
		},
		Cache:    Cache{Path: ".explorer/graph.snap"},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path, layered over Default. A missing
// file is not an error; a present but invalid file is.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ClustersParams converts the clusters-mode tuning for the engine.
func (c Config) ClustersParams() layout.ForceParams {
	return paramsFromForce(c.Layout.Clusters)
}

// DetailParams converts the detail-mode tuning for the engine.
func (c Config) DetailParams() layout.ForceParams {
	return paramsFromForce(c.Layout.Detail)
}

// RenderPalette builds the renderer palette: the stock theme with the
// configured hex overrides applied.
func (c Config) RenderPalette() (render.Palette, error) {
	pal := render.DefaultPalette()

	if len(c.Palette.Clusters) > 0 {
		clusters := make([]color.RGBA, 0, len(c.Palette.Clusters))
		for _, hex := range c.Palette.Clusters {
			col, err := parseHex(hex)
			if err != nil {
				return render.Palette{}, err
			}
			clusters = append(clusters, col)
		}
		pal.Clusters = clusters
	}
	if c.Palette.Background != "" {
		col, err := parseHex(c.Palette.Background)
		if err != nil {
			return render.Palette{}, err
		}
		pal.Background = col
	}
	if c.Palette.SelectionGlow != "" {
		col, err := parseHex(c.Palette.SelectionGlow)
		if err != nil {
			return render.Palette{}, err
		}
		pal.SelectionGlow = col
	}
	return pal, nil
}

func parseHex(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func forceFromParams(p layout.ForceParams) Force {
	return Force{
		Charge:            p.Charge,
		LinkDistanceBase:  p.LinkDistanceBase,
		LinkDistanceScale: p.LinkDistanceScale,
		MinLinkDistance:   p.MinLinkDistance,
	}
}

func paramsFromForce(f Force) layout.ForceParams {
	return layout.ForceParams{
		Charge:            f.Charge,
		LinkDistanceBase:  f.LinkDistanceBase,
		LinkDistanceScale: f.LinkDistanceScale,
		MinLinkDistance:   f.MinLinkDistance,
	}
}
