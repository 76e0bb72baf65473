package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "svg", "png", "json"
	zoom      float64  // 0 keeps the scene zoom
	expandAll bool     // expand every stack
	cull      bool     // skip pieces outside the visible board area
	stack     string   // render only this stack
	highlight string   // highlight color override
	noCache   bool     // disable caching
	refresh   bool     // bypass cache reads
}

// renderCommand creates the render command for painting scene files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene to SVG, PNG or a JSON layout",
		Long: `Render a scene file (.toml, .yaml or .json) to one or more formats.

With a single format, --output names the file. With several, --output is the
base path and each format gets its own extension. Without --output the scene
path is used as the base.

Rendered artifacts are cached locally by scene content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 0, "zoom factor (default: scene zoom)")
	cmd.Flags().BoolVar(&opts.expandAll, "expand", false, "expand every stack")
	cmd.Flags().BoolVar(&opts.cull, "cull", false, "skip pieces outside the visible board area")
	cmd.Flags().StringVar(&opts.stack, "stack", "", "render a single stack by id")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "selection highlight color (#rgb or #rrggbb)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")

	return cmd
}

// runRender runs the pipeline for input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	if opts.cull && opts.stack != "" {
		printWarning("--cull has no effect with --stack")
	}

	popts, err := c.loadOptions(ctx, input)
	if err != nil {
		return err
	}
	popts.Formats = opts.formats
	popts.Zoom = opts.zoom
	popts.ExpandAll = opts.expandAll
	popts.Cull = opts.cull
	popts.Stack = opts.stack
	popts.HighlightColor = opts.highlight
	popts.Refresh = opts.refresh

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, "Rendering scene...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	prog := newProgress(logger)
	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		path := paths[format]
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s (%d bytes)", path, len(result.Artifacts[format]))
	}
	prog.done("Wrote artifacts", "files", len(paths), "stacks", result.Stats.StackCount)

	printSuccess("Rendered %s", result.Scene.Board.Name)
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	printStats(result.Stats, result.CacheInfo)
	if !result.Layout.FullColor {
		printDetail("full color stacks disabled by preference")
	}
	return nil
}

// outputPaths maps each format to its output file. A single format writes to
// output verbatim when one is given.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			paths[f] = base + ".layout.json"
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
