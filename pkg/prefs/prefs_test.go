package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stackview/pkg/errors"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want defaults", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Preferences{General: General{DisableFullColorStacks: true, HighlightColor: "#00ff00"}}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	data := "[general]\ndisable_full_color_stacks = true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !p.General.DisableFullColorStacks {
		t.Error("disable_full_color_stacks not read")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidPreference) {
		t.Errorf("Load() error = %v, want INVALID_PREFERENCE", err)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"enable fallback", KeyDisableFullColorStacks, "true", "true", false},
		{"bad bool", KeyDisableFullColorStacks, "maybe", "", true},
		{"highlight color", KeyHighlightColor, "#0f0", "#0f0", false},
		{"bad color", KeyHighlightColor, "green", "", true},
		{"unknown key", "Nope", "1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Preferences
			err := p.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got, err := p.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/cfg", "stackview", "prefs.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestOptionsRegistered(t *testing.T) {
	opts := Options()
	if len(opts) == 0 || opts[0].Key != KeyDisableFullColorStacks {
		t.Fatalf("Options() = %+v", opts)
	}
	if opts[0].Default != "false" {
		t.Errorf("default = %q, want false", opts[0].Default)
	}
}
