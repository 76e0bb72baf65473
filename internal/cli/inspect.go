package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/scene"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// inspectCommand creates the interactive inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		expandAll bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Browse and toggle the pieces of a scene interactively",
		Long: `Browse the stacks of a scene in the terminal.

Pieces can be spotted, concealed, selected and deselected, and stacks
expanded or collapsed; the layout is recomputed after every change. With
--write the final state is saved back to the scene file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], expandAll, write)
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand", false, "start with every stack expanded")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "save changes back to the scene file")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, expandAll, write bool) error {
	opts, err := c.loadOptions(ctx, input)
	if err != nil {
		return err
	}
	opts.ExpandAll = expandAll
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	s, b, spotted, err := pipeline.Parse(opts)
	if err != nil {
		return err
	}
	m := blindstack.Activate(opts.Prefs, spotted)
	// --expand only changes the view; remember the starting state so a
	// write keeps the scene's own flags for stacks the user left alone.
	initial := expandedStates(b)

	final, err := tea.NewProgram(NewInspectModel(b, spotted, m), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	if !write {
		return nil
	}

	model, ok := final.(InspectModel)
	if !ok {
		return nil
	}
	applyBoardState(s, model.Board, model.Spotted, initial)
	data, err := scene.Encode(s, opts.SceneFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(input, data, 0644); err != nil {
		return fmt.Errorf("write scene %s: %w", input, err)
	}
	printSuccess("Saved %s", input)
	return nil
}

// expandedStates records the expanded flag of every stack on b.
func expandedStates(b *board.Board) map[string]bool {
	states := make(map[string]bool, b.Len())
	for _, pl := range b.Stacks() {
		states[pl.Stack.ID] = pl.Stack.Expanded()
	}
	return states
}

// applyBoardState copies selected and spotted flags from the board back
// into the scene it was built from. A stack's expanded flag is copied only
// when it differs from its entry in initial.
func applyBoardState(s *scene.Scene, b *board.Board, spotted spotting.Spotter, initial map[string]bool) {
	for i := range s.Stacks {
		st := &s.Stacks[i]
		pl, ok := b.Stack(st.ID)
		if !ok {
			continue
		}
		if was, ok := initial[st.ID]; !ok || was != pl.Stack.Expanded() {
			st.Expanded = pl.Stack.Expanded()
		}
		for j := range st.Pieces {
			if j >= pl.Stack.Len() {
				break
			}
			p := pl.Stack.At(j)
			sp := spotted.Spotted(p)
			st.Pieces[j].Selected = piece.IsSelected(p)
			st.Pieces[j].Spotted = &sp
		}
	}
}
