package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/piece"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Scene is a parsed scene file.
type Scene struct {
	Board  Board   `toml:"board" yaml:"board" json:"board"`
	Stacks []Stack `toml:"stack" yaml:"stacks" json:"stacks"`
}

// Board holds the map settings.
type Board struct {
	Name           string  `toml:"name" yaml:"name" json:"name"`
	Zoom           float64 `toml:"zoom" yaml:"zoom" json:"zoom"`
	Width          float64 `toml:"width" yaml:"width" json:"width"`
	Height         float64 `toml:"height" yaml:"height" json:"height"`
	OriginX        float64 `toml:"origin_x" yaml:"origin_x" json:"origin_x"`
	OriginY        float64 `toml:"origin_y" yaml:"origin_y" json:"origin_y"`
	HighlightColor string  `toml:"highlight_color" yaml:"highlight_color" json:"highlight_color"`
}

// Stack is one stack and its anchor in map space.
type Stack struct {
	ID       string  `toml:"id" yaml:"id" json:"id"`
	X        float64 `toml:"x" yaml:"x" json:"x"`
	Y        float64 `toml:"y" yaml:"y" json:"y"`
	Expanded bool    `toml:"expanded" yaml:"expanded" json:"expanded"`
	Pieces   []Piece `toml:"piece" yaml:"pieces" json:"pieces"`
}

// Piece is one counter, listed bottom to top. Spotted defaults to true.
type Piece struct {
	ID        string  `toml:"id" yaml:"id" json:"id"`
	Name      string  `toml:"name" yaml:"name" json:"name"`
	Width     float64 `toml:"width" yaml:"width" json:"width"`
	Height    float64 `toml:"height" yaml:"height" json:"height"`
	Color     string  `toml:"color" yaml:"color" json:"color"`
	Location  string  `toml:"location" yaml:"location" json:"location"`
	Selected  bool    `toml:"selected" yaml:"selected" json:"selected"`
	Invisible bool    `toml:"invisible" yaml:"invisible" json:"invisible"`
	Spotted   *bool   `toml:"spotted" yaml:"spotted" json:"spotted"`
}

// IsSpotted reports whether the viewer has spotted the piece.
func (p Piece) IsSpotted() bool { return p.Spotted == nil || *p.Spotted }

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", s)
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scene %s", path)
	}
	return Parse(data, format)
}

// Parse decodes data, fills in missing piece ids and validates the result.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &s)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&s); err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", format)
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s in the given format.
func Encode(s *Scene, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		_ = enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return buf.Bytes(), nil
}

func (s *Scene) normalize() {
	if s.Board.Zoom == 0 {
		s.Board.Zoom = 1
	}
	for i := range s.Stacks {
		st := &s.Stacks[i]
		if st.ID == "" {
			st.ID = fmt.Sprintf("stack-%d", i+1)
		}
		for j := range st.Pieces {
			if st.Pieces[j].ID == "" {
				st.Pieces[j].ID = piece.NewID()
			}
		}
	}
}

// Validate checks ids, zoom and colors. Ids must be unique across the scene.
func (s *Scene) Validate() error {
	if err := errors.ValidateZoom(s.Board.Zoom); err != nil {
		return err
	}
	if s.Board.Width < 0 || s.Board.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "board size must not be negative")
	}
	if c := s.Board.HighlightColor; c != "" {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}

	seen := make(map[string]string)
	claim := func(id, what string) error {
		if err := errors.ValidateID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", what)
		}
		if prev, ok := seen[id]; ok {
			return errors.New(errors.ErrCodeInvalidScene, "%s: id %q already used by %s", what, id, prev)
		}
		seen[id] = what
		return nil
	}

	for i, st := range s.Stacks {
		where := fmt.Sprintf("stack %d", i+1)
		if err := claim(st.ID, where); err != nil {
			return err
		}
		for j, p := range st.Pieces {
			what := fmt.Sprintf("%s piece %d", where, j+1)
			if err := claim(p.ID, what); err != nil {
				return err
			}
			if p.Width < 0 || p.Height < 0 {
				return errors.New(errors.ErrCodeInvalidScene, "%s: size must not be negative", what)
			}
			if p.Color != "" {
				if err := errors.ValidateColor(p.Color); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", what)
				}
			}
		}
	}
	return nil
}
