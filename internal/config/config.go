package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/Snowfall/internal/logging"
)

type Settings struct {
	FlakeSpacing       float64 `json:"flake_spacing"`
	Seed               uint64  `json:"seed"`
	WindowWidth        int     `json:"window_width"`
	WindowHeight       int     `json:"window_height"`
	VSync              bool    `json:"vsync"`
	Transparent        bool    `json:"transparent"`
	StartPaused        bool    `json:"start_paused"`
	RepopulateOnResize bool    `json:"repopulate_on_resize"`
	VertexShader       string  `json:"vertex_shader"`
	FragmentShader     string  `json:"fragment_shader"`
	Debug              bool    `json:"debug"`
}

func Default() *Settings {
	return &Settings{
		FlakeSpacing: 6,
		WindowWidth:  1280,
		WindowHeight: 720,
		VSync:        true,
		Transparent:  true,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "snowfall")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings(logger *slog.Logger) (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath, logger)
}

// LoadSettingsFrom reads settings from path. A missing file is created with
// defaults; an unreadable one falls back to defaults. Out-of-range values
// are replaced by their defaults.
func LoadSettingsFrom(settingsPath string, logger *slog.Logger) (*Settings, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	defaultSettings := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("creating default settings file", "path", settingsPath)
			if err := Save(settingsPath, defaultSettings); err != nil {
				logger.Warn("failed to create default settings file", "error", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]any
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		logger.Warn("invalid settings file, using defaults", "error", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			logger.Warn("unrecognised setting key in settings file", "key", key)
		}
	}

	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		logger.Warn("invalid settings file, using defaults", "error", err)
		return defaultSettings, nil
	}

	settings.validate(defaultSettings, logger)
	return settings, nil
}

func (s *Settings) validate(defaults *Settings, logger *slog.Logger) {
	if s.FlakeSpacing <= 0 {
		logger.Warn("invalid flake_spacing, must be positive",
			"value", s.FlakeSpacing, "default", defaults.FlakeSpacing)
		s.FlakeSpacing = defaults.FlakeSpacing
	}
	if s.WindowWidth <= 0 {
		logger.Warn("invalid window_width, must be positive",
			"value", s.WindowWidth, "default", defaults.WindowWidth)
		s.WindowWidth = defaults.WindowWidth
	}
	if s.WindowHeight <= 0 {
		logger.Warn("invalid window_height, must be positive",
			"value", s.WindowHeight, "default", defaults.WindowHeight)
		s.WindowHeight = defaults.WindowHeight
	}
}

// Save writes settings as indented JSON.
func Save(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
