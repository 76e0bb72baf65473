package errors

import (
	"math"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "unit", false},
		{"with dash", "unit-a", false},
		{"with colon", "hex:0101", false},
		{"uuid", "7c9e6679-7425-40de-944b-e07fc1f90ae7", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"leading dash", "-unit", true},
		{"space", "unit a", true},
		{"slash", "a/b", true},
		{"quote", `a"b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidateZoom(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"one", 1, false},
		{"fraction", 0.25, false},
		{"max", MaxZoom, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"too large", MaxZoom * 2, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoom(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZoom(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidZoom) {
				t.Errorf("ValidateZoom(%v) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#ff0000", false},
		{"#F00", false},
		{"#00aaFF", false},
		{"", true},
		{"ff0000", true},
		{"#ff00", true},
		{"#gg0000", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "scenes/battle.toml", false},
		{"absolute", "/tmp/scene.yaml", false},
		{"dotted", "../scene.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "scene\x00.toml", true},
		{"newline", "scene\n.toml", true},
		{"backslash", "scenes\\a.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidScene,
		ErrCodeInvalidFormat,
		ErrCodeInvalidZoom,
		ErrCodeInvalidPreference,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeStackNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
