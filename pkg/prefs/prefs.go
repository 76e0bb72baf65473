// Package prefs loads and stores the user's persisted preferences.
//
// Preferences live in a TOML file under the XDG config directory
// (~/.config/stackview/prefs.toml by default):
//
//	[general]
//	disable_full_color_stacks = false
//	highlight_color = "#ff0000"
//
// Renderers receive preferences at construction time. They are not re-read
// while drawing, so edits take effect on the next start.
package prefs

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

const (
	appName  = "stackview"
	fileName = "prefs.toml"
)

// Preference keys accepted by Set.
const (
	KeyDisableFullColorStacks = "DisableFullColorStacks"
	KeyHighlightColor         = "HighlightColor"
)

// Preferences is the persisted preference file.
type Preferences struct {
	General General `toml:"general"`
}

// General holds the preferences shown on the general tab.
type General struct {
	DisableFullColorStacks bool   `toml:"disable_full_color_stacks"`
	HighlightColor         string `toml:"highlight_color,omitempty"`
}

// Option describes a registered preference.
type Option struct {
	Key     string
	Label   string
	Default string
}

// Options lists every registered preference in display order.
func Options() []Option {
	return []Option{
		{Key: KeyDisableFullColorStacks, Label: "Disable full color stacks (requires restart)", Default: "false"},
		{Key: KeyHighlightColor, Label: "Selection highlight color", Default: ""},
	}
}

// Default returns the preferences used when no file exists.
func Default() Preferences {
	return Preferences{}
}

// DefaultPath returns the preference file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads preferences from path. A missing file yields Default.
func Load(path string) (Preferences, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidPreference, err, "read %s", path)
	}
	if _, err := toml.Decode(string(data), &p); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidPreference, err, "parse %s", path)
	}
	return p, nil
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Preferences) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode preferences")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Get returns the value of key formatted as a string.
func (p Preferences) Get(key string) (string, error) {
	switch key {
	case KeyDisableFullColorStacks:
		return strconv.FormatBool(p.General.DisableFullColorStacks), nil
	case KeyHighlightColor:
		return p.General.HighlightColor, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPreference, "unknown preference: %s", key)
	}
}

// Set parses value and stores it under key.
func (p *Preferences) Set(key, value string) error {
	switch key {
	case KeyDisableFullColorStacks:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreference, err, "%s expects true or false", key)
		}
		p.General.DisableFullColorStacks = b
	case KeyHighlightColor:
		if value != "" {
			if _, ok := surface.ParseHex(value); !ok {
				return errors.New(errors.ErrCodeInvalidPreference, "%s expects #rgb or #rrggbb, got %q", key, value)
			}
		}
		p.General.HighlightColor = value
	default:
		return errors.New(errors.ErrCodeInvalidPreference, "unknown preference: %s", key)
	}
	return nil
}
