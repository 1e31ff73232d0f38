package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "explorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, 1280, cfg.Canvas.Width)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_OverridesLayeredOverDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: https://graphs.internal:8443
  timeout_seconds: 30
log_level: debug
palette:
  background: "#101018"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://graphs.internal:8443", cfg.Backend.URL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, 800, cfg.Canvas.Height)

	pal, err := cfg.RenderPalette()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x10), pal.Background.R)
	assert.Equal(t, uint8(0x18), pal.Background.B)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad url":       "backend:\n  url: not-a-url\n",
		"zero timeout":  "backend:\n  timeout_seconds: 0\n",
		"bad log level": "log_level: loud\n",
		"bad hex":       "palette:\n  clusters: [\"#zzz\"]\n",
		"zero canvas":   "canvas:\n  width: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestForceParamsRoundtrip(t *testing.T) {
	cfg := Default()

	clusters := cfg.ClustersParams()
	detail := cfg.DetailParams()

	assert.Negative(t, clusters.Charge)
	assert.Negative(t, detail.Charge)
	assert.Less(t, clusters.Charge, detail.Charge, "clusters mode repels harder")
	assert.Greater(t, clusters.LinkDistanceBase, detail.LinkDistanceBase)
}

func TestDefaultPaletteNeedsNoOverrides(t *testing.T) {
	pal, err := Default().RenderPalette()
	require.NoError(t, err)
	assert.NotEmpty(t, pal.Clusters)
}
