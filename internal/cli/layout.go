package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting piece placement.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		asJSON    bool
		noCache   bool
		expandAll bool
	)

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Compute piece placement for a scene",
		Long: `Compute where every piece of a scene is placed.

By default the layout is printed as a table, one row per piece, with its
position, bounds and visibility class. Use --json to print the layout
document instead, or --output to write it to a file (same format as
'render -f json').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, asJSON, noCache, expandAll)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON layout to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON layout instead of a table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&expandAll, "expand", false, "expand every stack")

	return cmd
}

// runLayout computes the layout of input and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, input, output string, asJSON, noCache, expandAll bool) error {
	opts, err := c.loadOptions(ctx, input)
	if err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.ExpandAll = expandAll

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	data := result.Artifacts[pipeline.FormatJSON]

	switch {
	case output != "":
		if err := writeArtifact(output, data); err != nil {
			return err
		}
		printSuccess("Layout complete")
		printFile(output)
		printStats(result.Stats, result.CacheInfo)
		printNewline()
		printNextStep("Render", appName+" render "+input)
	case asJSON:
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	default:
		writeLayoutTable(os.Stdout, result.Layout)
	}
	return nil
}

// writeLayoutTable prints one row per piece, grouped by stack.
func writeLayoutTable(w io.Writer, l pipeline.Layout) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	var classes []string
	separated := false
	for _, sl := range l.Stacks {
		stackID := sl.ID
		if sl.Separated {
			stackID += " *"
			separated = true
		}
		for _, p := range sl.Pieces {
			name := p.Name
			if p.Location != "" && name != p.Location {
				name = strings.TrimSpace(name + " @" + p.Location)
			}
			rows = append(rows, []string{
				stackID,
				p.ID,
				name,
				p.Visibility,
				fmt.Sprintf("%g,%g", p.Position.X, p.Position.Y),
				fmt.Sprintf("%gx%g", p.Bounds.W, p.Bounds.H),
			})
			classes = append(classes, p.Visibility)
			stackID = ""
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stack", "Piece", "Name", "Visibility", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(classes) {
				return lipgloss.NewStyle()
			}
			switch classes[row] {
			case pipeline.VisibilitySelected:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case pipeline.VisibilityHidden:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Fprintln(w, StyleTitle.Render(l.Board))
	fmt.Fprintln(w, t.Render())
	if separated {
		fmt.Fprintln(w, StyleDim.Render("* location markers set aside"))
	}
	if !l.FullColor {
		fmt.Fprintln(w, StyleDim.Render("full color stacks disabled"))
	}
}
