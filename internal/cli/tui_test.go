package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/scene"
)

func newTestInspectModel(t *testing.T) InspectModel {
	t.Helper()
	_, b, spotted, err := pipeline.Parse(pipeline.Options{Scene: []byte(testScene), SceneFormat: scene.FormatTOML})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return NewInspectModel(b, spotted, blindstack.Activate(prefs.Default(), spotted))
}

func press(m InspectModel, keys ...tea.KeyMsg) InspectModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(InspectModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInspectModelInitialLayout(t *testing.T) {
	m := newTestInspectModel(t)

	if len(m.Layout.Stacks) != 2 {
		t.Fatalf("layout has %d stacks, want 2", len(m.Layout.Stacks))
	}
	if !m.Layout.Stacks[0].Separated {
		t.Error("a1 should start with its location moved aside")
	}
	if got := m.Layout.Stacks[1].Pieces[1].Visibility; got != pipeline.VisibilityHidden {
		t.Errorf("fogged visibility = %q, want hidden", got)
	}
}

func TestInspectModelToggles(t *testing.T) {
	tests := []struct {
		name  string
		keys  []tea.KeyMsg
		check func(t *testing.T, m InspectModel)
	}{
		{
			name: "expand stack",
			keys: []tea.KeyMsg{runes("e")},
			check: func(t *testing.T, m InspectModel) {
				if !m.Layout.Stacks[0].Expanded {
					t.Error("a1 should be expanded")
				}
				if m.Layout.Stacks[0].Separated {
					t.Error("expanded stacks keep locations in place")
				}
			},
		},
		{
			name: "conceal piece",
			keys: []tea.KeyMsg{runes(" ")},
			check: func(t *testing.T, m InspectModel) {
				if got := m.Layout.Stacks[0].Pieces[0].Visibility; got != pipeline.VisibilityHidden {
					t.Errorf("unitA visibility = %q, want hidden", got)
				}
			},
		},
		{
			name: "select piece",
			keys: []tea.KeyMsg{{Type: tea.KeyDown}, runes("s")},
			check: func(t *testing.T, m InspectModel) {
				if got := m.Layout.Stacks[0].Pieces[1].Visibility; got != pipeline.VisibilitySelected {
					t.Errorf("loc visibility = %q, want selected", got)
				}
			},
		},
		{
			name: "switch stack resets cursor",
			keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyRight}, {Type: tea.KeyRight}},
			check: func(t *testing.T, m InspectModel) {
				if m.Stack != 1 || m.Cursor != 0 {
					t.Errorf("stack=%d cursor=%d, want 1, 0", m.Stack, m.Cursor)
				}
			},
		},
		{
			name: "cursor stays within stack",
			keys: []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}},
			check: func(t *testing.T, m InspectModel) {
				if m.Cursor != 2 {
					t.Errorf("cursor = %d, want 2", m.Cursor)
				}
			},
		},
		{
			name: "spot fogged piece",
			keys: []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyDown}, runes(" ")},
			check: func(t *testing.T, m InspectModel) {
				if got := m.Layout.Stacks[1].Pieces[1].Visibility; got != pipeline.VisibilityUnselected {
					t.Errorf("fogged visibility = %q, want unselected", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, press(newTestInspectModel(t), tt.keys...))
		})
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := newTestInspectModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := newTestInspectModel(t)
	view := m.View()

	for _, want := range []string{"Hill 621", "a1", "unitB", "locations set aside", "full color"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if view := m.View(); !strings.Contains(view, "fogged") {
		t.Errorf("second stack view missing fogged:\n%s", view)
	}
}
