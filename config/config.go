package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Default port for the local static gateway when none is configured.
const DefaultStaticPort = 8642

// Settings is the environment-driven configuration surface.
// Values are read once per Load call, not cached process-wide.
type Settings struct {
	DataDir         string `json:"dataDir"`         // managed data directory for generated artifacts
	TempDir         string `json:"tempDir"`         // scratch directory for user-supplied files
	UserConfigPath  string `json:"userConfigPath"`  // optional externally supplied config file
	LayoutsDir      string `json:"layoutsDir"`      // layout template catalog root
	CanChangeKeys   bool   `json:"canChangeKeys"`   // whether credential editing is permitted
	RendererBaseURL string `json:"rendererBaseUrl"` // base URL the page renderer composes against
	StaticPort      int    `json:"staticPort"`      // static gateway listen port
}

// Load reads settings from the environment, falling back to ~/SlideSmith
// for the data directory and the OS temp directory for scratch space.
func Load() Settings {
	s := Settings{
		DataDir:         os.Getenv("APP_DATA_DIRECTORY"),
		TempDir:         os.Getenv("TEMP_DIRECTORY"),
		UserConfigPath:  os.Getenv("USER_CONFIG_PATH"),
		LayoutsDir:      os.Getenv("LAYOUTS_DIRECTORY"),
		CanChangeKeys:   true,
		RendererBaseURL: os.Getenv("RENDERER_BASE_URL"),
		StaticPort:      DefaultStaticPort,
	}

	if s.DataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			s.DataDir = filepath.Join(home, "SlideSmith")
		}
	}
	if s.TempDir == "" {
		s.TempDir = os.TempDir()
	}
	if s.LayoutsDir == "" && s.DataDir != "" {
		s.LayoutsDir = filepath.Join(s.DataDir, "layouts")
	}
	if v := os.Getenv("CAN_CHANGE_KEYS"); v != "" {
		// anything other than an explicit false keeps editing enabled
		if parsed, err := strconv.ParseBool(v); err == nil {
			s.CanChangeKeys = parsed
		}
	}
	if v := os.Getenv("STATIC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.StaticPort = port
		}
	}

	return s
}
