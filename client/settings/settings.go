// Package settings persists the user's default view preferences between
// sessions.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/task-manager/client/view"
)

// Settings are the view defaults applied when a session starts.
type Settings struct {
	DefaultSort   view.Sort   `yaml:"default_sort"`
	DefaultStatus view.Status `yaml:"default_status"`
}

// Default returns the settings used before the user saves any. This is the
// session-start preference (due date, soonest first), which deliberately
// differs from view.DefaultState's creation-time ordering: the latter is the
// fallback a view uses when no settings are applied at all.
func Default() Settings {
	return Settings{
		DefaultSort:   view.Sort{Field: view.SortDueDate, Direction: view.Asc},
		DefaultStatus: view.StatusAll,
	}
}

// ViewState builds the initial view state these settings describe.
func (s Settings) ViewState() view.State {
	state := view.DefaultState()
	state.Sort = s.DefaultSort
	state.Status = s.DefaultStatus
	return state
}

// DefaultPath returns the settings file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "task-manager", "settings.yaml"), nil
}

// Load reads settings from path. A missing file is not an error and yields
// the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
