package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive stack inspection
// =============================================================================

// InspectModel is the bubbletea model for browsing the stacks of a board.
// Toggling a piece re-runs the layout so the table always shows what the
// painter would draw.
type InspectModel struct {
	Board   *board.Board
	Spotted *spotting.Set
	Metrics *blindstack.Metrics
	Layout  pipeline.Layout

	Stack  int // index of the current stack
	Cursor int // index of the current piece within the stack
}

// NewInspectModel creates an inspect model. m must have been activated with
// spotted as its spotter so toggles take effect.
func NewInspectModel(b *board.Board, spotted *spotting.Set, m *blindstack.Metrics) InspectModel {
	model := InspectModel{Board: b, Spotted: spotted, Metrics: m}
	model.relayout()
	return model
}

func (m *InspectModel) relayout() {
	m.Layout = pipeline.ComputeLayout(m.Board, m.Metrics, m.Spotted)
}

// current returns the current stack, or nil for an empty board.
func (m InspectModel) current() *piece.Stack {
	stacks := m.Board.Stacks()
	if len(stacks) == 0 {
		return nil
	}
	return stacks[m.Stack].Stack
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	st := m.current()

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.Stack > 0 {
			m.Stack--
			m.Cursor = 0
		}
	case "right", "l":
		if m.Stack < m.Board.Len()-1 {
			m.Stack++
			m.Cursor = 0
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if st != nil && m.Cursor < st.Len()-1 {
			m.Cursor++
		}
	case "e":
		if st != nil {
			st.SetExpanded(!st.Expanded())
			m.relayout()
		}
	case " ", "space":
		if st != nil && st.Len() > 0 {
			m.Spotted.Toggle(st.At(m.Cursor).ID())
			m.relayout()
		}
	case "s":
		if st != nil && st.Len() > 0 {
			if p, ok := st.At(m.Cursor).(*piece.Basic); ok {
				p.SetProperty(piece.Selected, !piece.IsSelected(p))
				m.relayout()
			}
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Board.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ stack  ↑/↓ piece  space spot  s select  e expand  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Stacks) == 0 {
		b.WriteString(listDimStyle.Render("  (no stacks)"))
		b.WriteString("\n")
		return b.String()
	}

	sl := m.Layout.Stacks[m.Stack]
	state := "collapsed"
	if sl.Expanded {
		state = "expanded"
	}
	header := fmt.Sprintf("%s  %s", listSelectedStyle.Render(sl.ID), listDimStyle.Render(state))
	if sl.Separated {
		header += listDimStyle.Render("  locations set aside")
	}
	b.WriteString(header)
	b.WriteString("\n")

	rows := make([][]string, 0, len(sl.Pieces))
	for i, p := range sl.Pieces {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := p.Name
		if p.Location != "" {
			name += " @" + p.Location
		}
		rows = append(rows, []string{
			cursor,
			p.ID,
			name,
			p.Visibility,
			fmt.Sprintf("%g,%g", p.Position.X, p.Position.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Piece", "Name", "Visibility", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(sl.Pieces) {
				return lipgloss.NewStyle()
			}
			base := listNormalStyle
			switch sl.Pieces[row].Visibility {
			case pipeline.VisibilityHidden:
				base = listDimStyle
			case pipeline.VisibilitySelected:
				base = lipgloss.NewStyle().Foreground(colorGreen)
			}
			if row == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	mode := "full color"
	if !m.Layout.FullColor {
		mode = "fallback painter"
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %s · %d spotted", m.Stack+1, len(m.Layout.Stacks), mode, m.Spotted.Len())))
	return b.String()
}
