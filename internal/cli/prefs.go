package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/prefs"
)

// prefsCommand creates the preference management command.
func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and edit persisted preferences",
		Long: `Show and edit persisted preferences.

Preferences are read once when a command starts. A running 'serve' keeps the
values it started with until it is restarted.`,
	}

	cmd.AddCommand(c.prefsListCommand())
	cmd.AddCommand(c.prefsGetCommand())
	cmd.AddCommand(c.prefsSetCommand())
	cmd.AddCommand(c.prefsPathCommand())

	return cmd
}

// prefsListCommand creates the "prefs list" subcommand.
func (c *CLI) prefsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every preference with its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPrefs()
			if err != nil {
				return err
			}
			for _, opt := range prefs.Options() {
				v, err := p.Get(opt.Key)
				if err != nil {
					return err
				}
				if v == "" {
					v = StyleDim.Render("(unset)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), StyleHighlight.Render(opt.Key)+" "+StyleValue.Render(v))
				printDetail("%s", opt.Label)
			}
			return nil
		},
	}
}

// prefsGetCommand creates the "prefs get" subcommand.
func (c *CLI) prefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "get KEY",
		Short:     "Print one preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: prefKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPrefs()
			if err != nil {
				return err
			}
			v, err := p.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// prefsSetCommand creates the "prefs set" subcommand.
func (c *CLI) prefsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change one preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.prefsFile()
			if err != nil {
				return fmt.Errorf("get prefs path: %w", err)
			}
			p, err := prefs.Load(path)
			if err != nil {
				return err
			}
			if err := p.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := prefs.Save(path, p); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			printSuccess("%s = %s", args[0], args[1])
			printDetail("takes effect on the next start")
			return nil
		},
	}
}

// prefsPathCommand creates the "prefs path" subcommand.
func (c *CLI) prefsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preference file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.prefsFile()
			if err != nil {
				return fmt.Errorf("get prefs path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func prefKeys() []string {
	opts := prefs.Options()
	keys := make([]string, len(opts))
	for i, o := range opts {
		keys[i] = o.Key
	}
	return keys
}
