package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// stdinName is the input argument that reads the data view from stdin.
const stdinName = "-"

// renderFlags holds the flags shared by render and watch.
type renderFlags struct {
	formats     string
	output      string
	inputFormat string
	noCache     bool
}

func (c *CLI) bindRenderFlags(cmd *cobra.Command, opts *pipeline.Options, f *renderFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "data view format: csv, json, yaml (default: from extension)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default from config)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "accent color seed (default from config)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default from config)")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "omit SVG animation")
	registerRenderCompletions(cmd)
}

// mergeOptions overlays the flag values in flags onto the configured options.
func (c *CLI) mergeOptions(cmd *cobra.Command, flags pipeline.Options, f renderFlags) pipeline.Options {
	opts := c.baseOptions()
	if cmd.Flags().Changed("width") {
		opts.Width = flags.Width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = flags.Height
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = flags.Seed
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = flags.Scale
	}
	opts.Static = flags.Static
	opts.NoCache = f.noCache
	opts.DataFormat = f.inputFormat
	if formats := parseFormats(f.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags pipeline.Options
		f     renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a data view to SVG, PNG, JSON, DOT or text",
		Long: `Render the first row of a data view as a waffle of one hundred circles.

The input is a CSV, JSON or YAML file, or "-" for stdin. The last numeric
cell of the row is the percentage and the last text cell its description.

Results are cached; use --no-cache to force a fresh render.`,
		Example: `  onepercent render share.csv
  onepercent render share.json -f svg,png -o out/share
  echo '42,answer' | onepercent render - --input-format csv -f txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.mergeOptions(cmd, flags, f)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.InOrStdin(), args[0], opts, f.output)
		},
	}
	c.bindRenderFlags(cmd, &flags, &f)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdin io.Reader, input string, opts pipeline.Options, output string) error {
	if input == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		opts.Data = data
		opts.Source = "stdin"
	} else {
		opts.Input = input
		opts.Source = input
		if opts.DataFormat != "" {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			opts.Data, opts.Input = data, ""
		}
	}

	runner, err := c.newRunner(ctx, opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(ctx)

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Rendering...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(res.Artifacts)))

	return writeArtifacts(c.out, artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		label:     res.Frame.Label.Text,
		circles:   len(res.Frame.Circles),
		cacheHit:  res.CacheHit,
	})
}

// artifactWriteParams describes rendered outputs to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	label     string
	circles   int
	cacheHit  bool
}

// writeArtifacts writes each artifact next to the input, or to output.
// With a single format, output names the file; with several it is a base
// path that gets one extension per format.
func writeArtifacts(w io.Writer, p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess(w, "Rendered %s", p.label)
	for _, format := range p.formats {
		printFile(w, paths[format])
	}
	printStats(w, p.label, p.circles, p.cacheHit)
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + "." + pipeline.Extension(format)
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
