package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `
catalog_path = "templates/catalog.yaml"
max_stack_height = 6
log_level = "debug"
verify_invariants = true

[grid]
width = 5
height = 7
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Grid.Width)
	assert.Equal(t, 7, s.Grid.Height)
	assert.Equal(t, 6, s.MaxStackHeight)
	assert.True(t, s.VerifyInvariants)
	assert.Equal(t, log.DebugLevel, s.Level())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "templates", "catalog.yaml"), s.CatalogPath)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(writeSettings(t, ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultGridWidth, s.Grid.Width)
	assert.Equal(t, DefaultGridHeight, s.Grid.Height)
	assert.Equal(t, DefaultMaxStackHeight, s.MaxStackHeight)
	assert.Equal(t, log.InfoLevel, s.Level())
	assert.False(t, s.VerifyInvariants)
}

func TestLoadSettingsRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "colour = \"red\"\n",
		"negative stack": "max_stack_height = -1\n",
		"bad level":      "log_level = \"loud\"\n",
		"negative grid":  "[grid]\nwidth = -3\n",
		"not toml":       "grid = [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}

func TestShippedSettingsLoad(t *testing.T) {
	path := filepath.Join("..", "..", "assets", "settings.toml")
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Grid.Width)
	assert.Equal(t, filepath.Join("..", "..", "assets", "templates", "catalog.yaml"), s.CatalogPath)
	assert.FileExists(t, s.CatalogPath)
}
