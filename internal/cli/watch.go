package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/pipeline"
	"github.com/matzehuels/onepercent/pkg/render/sink"
)

// defaultDebounce collapses the burst of events editors emit on save.
const defaultDebounce = 100 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    pipeline.Options
		f        renderFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a data view every time the file changes",
		Long: `Watch a data view file and re-render it on every change.

One chart lives for the whole session, so each render animates from the
previous value: circles that change color are updated in place and the
label switches to the new number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.mergeOptions(cmd, flags, f)
			opts.Input = args[0]
			opts.Source = args[0]
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			s := c.newWatchSession(opts, f.output)
			defer s.close()
			return c.runWatch(cmd.Context(), s, debounce)
		},
	}
	c.bindRenderFlags(cmd, &flags, &f)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before rendering")
	return cmd
}

// watchSession owns the long-lived chart of a watch run.
type watchSession struct {
	cli    *CLI
	opts   pipeline.Options
	output string
	rec    *sink.Recorder
	chart  *chart.Controller
}

func (c *CLI) newWatchSession(opts pipeline.Options, output string) *watchSession {
	rec := sink.NewRecorder()
	return &watchSession{
		cli:    c,
		opts:   opts,
		output: output,
		rec:    rec,
		chart:  pipeline.NewChart(rec, opts),
	}
}

// update reloads the input and renders it onto the session's chart.
// A file without rows leaves the chart unchanged.
func (s *watchSession) update(ctx context.Context) error {
	dv, err := s.load()
	if err != nil {
		return err
	}
	res, err := s.chart.Update(ctx, chart.UpdateOptions{
		Viewport:  chart.Viewport{Width: s.opts.Width, Height: s.opts.Height},
		DataViews: []*dataview.DataView{dv},
	})
	if err != nil {
		return err
	}
	if !res.Rendered {
		s.cli.Logger.Warn("no rows, chart unchanged", "file", s.opts.Input)
		return nil
	}

	frame := s.rec.Frame()
	artifacts, err := pipeline.Render(ctx, frame, s.opts)
	if err != nil {
		return err
	}
	s.cli.Logger.Info("updated",
		"value", res.Dataset.Label(),
		"entering", res.Entering,
		"persisting", res.Persisting,
		"exiting", res.Exiting)

	return writeArtifacts(s.cli.out, artifactWriteParams{
		artifacts: artifacts,
		formats:   s.opts.Formats,
		input:     s.opts.Input,
		output:    s.output,
		label:     frame.Label.Text,
		circles:   len(frame.Circles),
	})
}

func (s *watchSession) load() (*dataview.DataView, error) {
	if s.opts.DataFormat == "" {
		return dataview.Load(s.opts.Input)
	}
	data, err := os.ReadFile(s.opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.opts.Input, err)
	}
	return dataview.Parse(data, s.opts.DataFormat)
}

func (s *watchSession) close() { s.chart.Destroy() }

// runWatch renders once, then again after every change to the input until
// ctx is cancelled. Render errors are logged and do not end the session.
func (c *CLI) runWatch(ctx context.Context, s *watchSession, debounce time.Duration) error {
	if err := s.update(ctx); err != nil {
		c.Logger.Error("render failed", "error", err)
	}
	printInfo(c.out, "Watching %s (ctrl+c to stop)", s.opts.Input)

	return watchFile(ctx, s.opts.Input, debounce, func() {
		if err := s.update(ctx); err != nil {
			c.Logger.Error("render failed", "error", err)
		}
	})
}

// watchFile calls onChange after path is written, created or renamed into
// place, once per burst of events separated by less than debounce. It watches
// the parent directory so editors that replace the file are followed.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&relevant == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		case <-timer.C:
			onChange()
		}
	}
}
