package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackview/pkg/pipeline"
)

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, selected pieces
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // hidden pieces, muted text
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// uiOut receives all human-oriented output. Tests swap it.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon lipgloss.Style, glyph, format string, args ...any) {
	fmt.Fprintln(uiOut, icon.Render(glyph)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, format, args...)
}

func printError(format string, args ...any) { printLine(styleIconError, iconError, format, args...) }

func printInfo(format string, args ...any) { printLine(styleIconInfo, iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	printLine(styleIconWarning, iconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the board size and which pipeline stages came from the
// cache, e.g. "2 stacks · 5 pieces · layout cached · render fresh".
func printStats(st pipeline.Stats, ci pipeline.CacheInfo) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d stacks", st.StackCount)),
		StyleDim.Render(fmt.Sprintf("%d pieces", st.PieceCount)),
		cacheState("layout", ci.LayoutHit),
		cacheState("render", ci.RenderHit),
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func cacheState(stage string, hit bool) string {
	if hit {
		return styleCached.Render(stage + " cached")
	}
	return StyleDim.Render(stage + " fresh")
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(uiOut) }
