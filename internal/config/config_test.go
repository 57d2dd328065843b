package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/Snowfall/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := LoadSettingsFrom(path, nil)

	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"flake_spacing": 6`)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeSettings(t, `{"seed": 99, "repopulate_on_resize": true}`)

	settings, err := LoadSettingsFrom(path, nil)

	require.NoError(t, err)
	assert.Equal(t, uint64(99), settings.Seed)
	assert.True(t, settings.RepopulateOnResize)
	assert.True(t, settings.VSync)
	assert.Equal(t, 6.0, settings.FlakeSpacing)
	assert.Equal(t, 1280, settings.WindowWidth)
}

func TestLoadWarnsOnUnknownKeys(t *testing.T) {
	path := writeSettings(t, `{"overlay_alpha": 0.5}`)
	var buf bytes.Buffer

	settings, err := LoadSettingsFrom(path, logging.NewWriter(&buf, false))

	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	assert.Contains(t, buf.String(), "unrecognised setting key")
	assert.Contains(t, buf.String(), "overlay_alpha")
}

func TestLoadReplacesInvalidValues(t *testing.T) {
	path := writeSettings(t, `{"flake_spacing": -2, "window_width": 0, "window_height": -5}`)
	var buf bytes.Buffer

	settings, err := LoadSettingsFrom(path, logging.NewWriter(&buf, false))

	require.NoError(t, err)
	assert.Equal(t, 6.0, settings.FlakeSpacing)
	assert.Equal(t, 1280, settings.WindowWidth)
	assert.Equal(t, 720, settings.WindowHeight)
	assert.Contains(t, buf.String(), "flake_spacing")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeSettings(t, `{not json`)

	settings, err := LoadSettingsFrom(path, nil)

	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
}

func TestLoadUnreadable(t *testing.T) {
	_, err := LoadSettingsFrom(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestGetSettingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetSettingsPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "snowfall", "settings.json"), path)
	assert.DirExists(t, filepath.Dir(path))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Default()
	want.Seed = 12
	want.FragmentShader = "/tmp/flake.frag.glsl"

	require.NoError(t, Save(path, want))
	got, err := LoadSettingsFrom(path, nil)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
