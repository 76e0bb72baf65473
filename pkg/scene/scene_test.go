package scene

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/styles"
)

func TestLoadFormats(t *testing.T) {
	wantBoard := Board{Name: "Hill 621", Zoom: 1.5, Width: 400, Height: 300, HighlightColor: "#00ff00"}

	for _, name := range []string{"hill621.toml", "hill621.yaml", "hill621.json"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if s.Board != wantBoard {
				t.Errorf("Board = %+v, want %+v", s.Board, wantBoard)
			}
			if len(s.Stacks) != 2 {
				t.Fatalf("len(Stacks) = %d, want 2", len(s.Stacks))
			}

			a1 := s.Stacks[0]
			var ids []string
			for _, p := range a1.Pieces {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, []string{"squad-1", "hill", "leader"}) {
				t.Errorf("a1 pieces = %v", ids)
			}
			if a1.Pieces[1].Location != "Hill 621" || !a1.Pieces[2].Selected {
				t.Errorf("a1 properties lost: %+v", a1.Pieces)
			}

			b2 := s.Stacks[1]
			if !b2.Expanded || b2.Pieces[0].IsSpotted() || !b2.Pieces[1].Invisible {
				t.Errorf("b2 = %+v", b2)
			}
			if _, err := uuid.Parse(b2.Pieces[1].ID); err != nil {
				t.Errorf("generated id %q is not a uuid: %v", b2.Pieces[1].ID, err)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("[[stack]]\n[[stack.piece]]\nname = \"a\"\n"), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Board.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", s.Board.Zoom)
	}
	if s.Stacks[0].ID != "stack-1" {
		t.Errorf("stack id = %q, want stack-1", s.Stacks[0].ID)
	}
	if !s.Stacks[0].Pieces[0].IsSpotted() {
		t.Error("pieces should default to spotted")
	}

	empty, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse(empty yaml) error = %v", err)
	}
	if len(empty.Stacks) != 0 {
		t.Errorf("empty scene has %d stacks", len(empty.Stacks))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"bad toml", "[board", FormatTOML, errors.ErrCodeInvalidScene},
		{"unknown toml key", "[board]\ncolour = 1\n", FormatTOML, errors.ErrCodeInvalidScene},
		{"unknown yaml key", "board:\n  colour: red\n", FormatYAML, errors.ErrCodeInvalidScene},
		{"unknown json key", `{"boards": {}}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"negative zoom", "[board]\nzoom = -2\n", FormatTOML, errors.ErrCodeInvalidZoom},
		{"bad highlight", "[board]\nhighlight_color = \"red\"\n", FormatTOML, errors.ErrCodeInvalidInput},
		{"duplicate ids", `{"stacks": [{"id": "a", "pieces": [{"id": "a"}]}]}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"bad piece id", `{"stacks": [{"id": "a", "pieces": [{"id": "a b"}]}]}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"bad piece color", `{"stacks": [{"id": "a", "pieces": [{"color": "blue"}]}]}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"negative size", `{"stacks": [{"id": "a", "pieces": [{"width": -1}]}]}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"unknown format", "", Format("xml"), errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"dir/a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", FormatJSON, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, %v", tt.path, got, err)
			}
		})
	}

	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %q, %v", f, err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBuild(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "hill621.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	b, spotted, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if b.Name() != "Hill 621" || b.Zoom() != 1.5 || b.Len() != 2 {
		t.Errorf("board = %q zoom %v with %d stacks", b.Name(), b.Zoom(), b.Len())
	}
	if ring, ok := b.Highlighter().(styles.Ring); !ok || ring != styles.RingFromHex("#00ff00") {
		t.Errorf("Highlighter() = %#v", b.Highlighter())
	}

	a1, _ := b.Stack("a1")
	if a1.Stack.Owner() != b {
		t.Error("stack owner is not the board")
	}
	hill := a1.Stack.At(1)
	if !piece.IsLocation(hill) || piece.IsSelected(hill) {
		t.Errorf("hill properties wrong")
	}
	if !piece.IsSelected(a1.Stack.At(2)) {
		t.Error("leader not selected")
	}

	b2, _ := b.Stack("b2")
	if !b2.Stack.Expanded() {
		t.Error("b2 not expanded")
	}
	if spotted.Spotted(b2.Stack.At(0)) {
		t.Error("sniper should not be spotted")
	}
	if !piece.IsInvisibleToMe(b2.Stack.At(1)) {
		t.Error("concealed piece should be invisible")
	}
	if spotted.Len() != 4 {
		t.Errorf("spotted.Len() = %d, want 4", spotted.Len())
	}

	b, _, _ = s.Build(WithHighlightColor("#0000ff"), WithExpandAll(true))
	if ring := b.Highlighter().(styles.Ring); ring != styles.RingFromHex("#0000ff") {
		t.Errorf("override highlighter = %#v", ring)
	}
	if a1, _ := b.Stack("a1"); !a1.Stack.Expanded() {
		t.Error("WithExpandAll did not expand a1")
	}
}

func TestEncodeParses(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "hill621.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(s, f)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Parse(data, f)
			if err != nil {
				t.Fatalf("Parse(Encode()) error = %v", err)
			}
			if !reflect.DeepEqual(got, s) {
				t.Errorf("re-parsed scene differs:\n got %+v\nwant %+v", got, s)
			}
		})
	}
}
