package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/scene"
)

const testScene = `
[board]
name = "Hill 621"
width = 300
height = 200

[[stack]]
id = "a1"
x = 100
y = 100

[[stack.piece]]
id = "unitA"

[[stack.piece]]
id = "loc"
location = "X"

[[stack.piece]]
id = "unitB"
selected = true

[[stack]]
id = "b2"
x = 200
y = 150

[[stack.piece]]
id = "far"

[[stack.piece]]
id = "fogged"
spotted = false
`

// testEnv isolates cache and preference directories and writes the test
// scene. It returns the scene path.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))

	path := filepath.Join(t.TempDir(), "hill.toml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args and returns what the command
// wrote to its output writer.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	want := []string{"render", "layout", "inspect", "serve", "prefs", "cache", "completion"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil || cmd == root {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "maps/hill.toml", "maps/hill"},
		{"format extension stripped", "out/board.svg", "hill.toml", "out/board"},
		{"unknown extension kept", "out/board.v2", "hill.toml", "out/board.v2"},
		{"no extension", "out/board", "hill.toml", "out/board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	t.Run("single format uses output verbatim", func(t *testing.T) {
		got := outputPaths("board.image", "hill.toml", []string{"png"})
		if got["png"] != "board.image" {
			t.Errorf("png path = %q, want board.image", got["png"])
		}
	})

	t.Run("multiple formats share a base", func(t *testing.T) {
		got := outputPaths("", "hill.toml", []string{"svg", "png", "json"})
		want := map[string]string{"svg": "hill.svg", "png": "hill.png", "json": "hill.layout.json"}
		for f, p := range want {
			if got[f] != p {
				t.Errorf("%s path = %q, want %q", f, got[f], p)
			}
		}
	})
}

func TestReadScene(t *testing.T) {
	path := testEnv(t)

	data, format, err := readScene(path)
	if err != nil {
		t.Fatalf("readScene() error: %v", err)
	}
	if format != scene.FormatTOML || len(data) == 0 {
		t.Errorf("readScene() = %d bytes, %q", len(data), format)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.toml"), errors.ErrCodeFileNotFound},
		{"unknown extension", filepath.Join(t.TempDir(), "scene.txt"), errors.ErrCodeInvalidFormat},
		{"empty path", "", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := readScene(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("readScene(%q) error = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	path := testEnv(t)
	base := filepath.Join(t.TempDir(), "out", "hill")

	if _, err := runCLI(t, "render", path, "-f", "svg,json", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	for _, want := range []string{`id="stack-a1"`, `id="piece-loc"`, `id="highlight-unitB"`} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("svg missing %s", want)
		}
	}

	data, err := os.ReadFile(base + ".layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	l, err := pipeline.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if l.Board != "Hill 621" || len(l.Stacks) != 2 {
		t.Errorf("layout = %q with %d stacks", l.Board, len(l.Stacks))
	}
}

func TestRenderCommandSingleStack(t *testing.T) {
	path := testEnv(t)
	out := filepath.Join(t.TempDir(), "a1.svg")

	if _, err := runCLI(t, "render", path, "--stack", "a1", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(svg, []byte("piece-far")) {
		t.Error("single stack render should not contain other stacks")
	}

	_, err = runCLI(t, "render", path, "--stack", "zz", "-o", out, "--no-cache")
	if !errors.Is(err, errors.ErrCodeStackNotFound) {
		t.Errorf("unknown stack error = %v, want %s", err, errors.ErrCodeStackNotFound)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	path := testEnv(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"invalid format", []string{"render", path, "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"invalid zoom", []string{"render", path, "--zoom=-1", "--no-cache"}, errors.ErrCodeInvalidZoom},
		{"invalid highlight", []string{"render", path, "--highlight", "red", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"missing scene", []string{"render", filepath.Join(t.TempDir(), "missing.toml")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommandUsesCache(t *testing.T) {
	path := testEnv(t)
	out := filepath.Join(t.TempDir(), "hill.svg")

	for i := 0; i < 2; i++ {
		if _, err := runCLI(t, "render", path, "-o", out); err != nil {
			t.Fatalf("render #%d error: %v", i+1, err)
		}
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	if len(entries) == 0 {
		t.Error("render should populate the cache")
	}

	// One layout entry and one svg artifact.
	info, err := runCLI(t, "cache", "info")
	if err != nil {
		t.Fatalf("cache info error: %v", err)
	}
	if !strings.HasPrefix(info, "2 entries") {
		t.Errorf("cache info = %q, want 2 entries", info)
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	path := testEnv(t)
	out := filepath.Join(t.TempDir(), "hill.layout.json")

	if _, err := runCLI(t, "layout", path, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	l, err := pipeline.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	a1 := l.Stacks[0]
	if !a1.Separated {
		t.Error("stack a1 should report its location moved aside")
	}
	if got := a1.Pieces[1].Position; got.X != 87 || got.Y != 96 {
		t.Errorf("loc position = %+v, want (87,96)", got)
	}
}

func TestWriteLayoutTable(t *testing.T) {
	l := pipeline.Layout{
		Board:     "Hill 621",
		FullColor: false,
		Stacks: []pipeline.StackLayout{{
			ID:        "a1",
			Separated: true,
			Pieces: []pipeline.PieceLayout{
				{ID: "unitA", Name: "4-6-7", Visibility: pipeline.VisibilityUnselected},
				{ID: "loc", Name: "Hill", Location: "X", Visibility: pipeline.VisibilityHidden},
			},
		}},
	}

	var buf bytes.Buffer
	writeLayoutTable(&buf, l)
	out := buf.String()

	for _, want := range []string{"Hill 621", "unitA", "Hill @X", "hidden", "location markers set aside", "full color stacks disabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrefsCommands(t *testing.T) {
	testEnv(t)
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")

	if _, err := runCLI(t, "--prefs", prefsPath, "prefs", "set", "DisableFullColorStacks", "true"); err != nil {
		t.Fatalf("prefs set error: %v", err)
	}
	out, err := runCLI(t, "--prefs", prefsPath, "prefs", "get", "DisableFullColorStacks")
	if err != nil {
		t.Fatalf("prefs get error: %v", err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("prefs get = %q, want true", out)
	}

	out, err = runCLI(t, "--prefs", prefsPath, "prefs", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != prefsPath {
		t.Errorf("prefs path = %q, want %q", out, prefsPath)
	}

	_, err = runCLI(t, "--prefs", prefsPath, "prefs", "set", "DisableFullColorStacks", "maybe")
	if !errors.Is(err, errors.ErrCodeInvalidPreference) {
		t.Errorf("bad value error = %v, want %s", err, errors.ErrCodeInvalidPreference)
	}
	_, err = runCLI(t, "--prefs", prefsPath, "prefs", "get", "Nope")
	if !errors.Is(err, errors.ErrCodeInvalidPreference) {
		t.Errorf("unknown key error = %v, want %s", err, errors.ErrCodeInvalidPreference)
	}
}

func TestRenderHonorsFallbackPreference(t *testing.T) {
	path := testEnv(t)
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	out := filepath.Join(t.TempDir(), "hill.layout.json")

	if _, err := runCLI(t, "--prefs", prefsPath, "prefs", "set", "DisableFullColorStacks", "true"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--prefs", prefsPath, "render", path, "-f", "json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	l, err := pipeline.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if l.FullColor {
		t.Error("layout should report full color disabled")
	}
	if l.Stacks[0].Separated {
		t.Error("fallback layout should not move locations aside")
	}
}

func TestCachePathCommand(t *testing.T) {
	testEnv(t)
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestApplyBoardState(t *testing.T) {
	path := testEnv(t)
	data, format, err := readScene(path)
	if err != nil {
		t.Fatal(err)
	}
	s, b, spotted, err := pipeline.Parse(pipeline.Options{Scene: data, SceneFormat: format})
	if err != nil {
		t.Fatal(err)
	}

	initial := expandedStates(b)
	pl, _ := b.Stack("a1")
	pl.Stack.SetExpanded(true)
	pl.Stack.At(0).(*piece.Basic).SetProperty(piece.Selected, true)
	spotted.Toggle("unitA")
	spotted.Toggle("fogged")

	applyBoardState(s, b, spotted, initial)

	a1 := s.Stacks[0]
	if !a1.Expanded {
		t.Error("a1 should be expanded")
	}
	if !a1.Pieces[0].Selected || a1.Pieces[0].IsSpotted() {
		t.Errorf("unitA = selected %v spotted %v, want selected and concealed", a1.Pieces[0].Selected, a1.Pieces[0].IsSpotted())
	}
	if !s.Stacks[1].Pieces[1].IsSpotted() {
		t.Error("fogged should be spotted after toggling")
	}

	encoded, err := scene.Encode(s, format)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	again, err := scene.Parse(encoded, format)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !again.Stacks[0].Expanded || again.Stacks[0].Pieces[0].IsSpotted() {
		t.Error("saved scene lost the applied state")
	}
}

func TestApplyBoardStateKeepsViewOnlyExpansion(t *testing.T) {
	path := testEnv(t)
	data, format, err := readScene(path)
	if err != nil {
		t.Fatal(err)
	}
	s, b, spotted, err := pipeline.Parse(pipeline.Options{Scene: data, SceneFormat: format, ExpandAll: true})
	if err != nil {
		t.Fatal(err)
	}
	initial := expandedStates(b)

	// b2 is collapsed again by the user; a1 stays expanded only through --expand.
	pl, _ := b.Stack("b2")
	pl.Stack.SetExpanded(false)

	applyBoardState(s, b, spotted, initial)

	for _, st := range s.Stacks {
		if st.Expanded {
			t.Errorf("stack %s expanded = true after write-back, want false", st.ID)
		}
	}
}
