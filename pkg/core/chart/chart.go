package chart

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/onepercent/pkg/core/anim"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/core/grid"
	"github.com/matzehuels/onepercent/pkg/core/scene"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/observability"
)

// ErrDestroyed is returned by Update after Destroy.
var ErrDestroyed = errors.New(errors.ErrCodeDestroyed, "chart has been destroyed")

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UpdateOptions carries the inputs of one update.
type UpdateOptions struct {
	Viewport  Viewport
	DataViews []*dataview.DataView
}

// Result describes what an update did.
type Result struct {
	// Rendered is false when the update was ignored for lack of data.
	Rendered   bool
	Dataset    dataset.Dataset
	Layout     grid.Layout
	Entering   int
	Persisting int
	Exiting    int
	Commands   []scene.Command
}

// Option configures a Controller.
type Option func(*Controller)

// WithPicker sets the accent color picker.
func WithPicker(p dataset.Picker) Option {
	return func(c *Controller) {
		if p != nil {
			c.converter.Picker = p
		}
	}
}

// WithPalette replaces the accent palette.
func WithPalette(palette []string) Option {
	return func(c *Controller) {
		if len(palette) > 0 {
			c.converter.Palette = append([]string(nil), palette...)
		}
	}
}

// WithNeutral sets the complement color.
func WithNeutral(color string) Option {
	return func(c *Controller) {
		if color != "" {
			c.converter.Neutral = color
		}
	}
}

// WithAnimation sets the transition timing.
func WithAnimation(cfg anim.Config) Option {
	return func(c *Controller) { c.scheduler = anim.NewScheduler(cfg) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller renders percentage updates onto a Surface.
type Controller struct {
	surface   Surface
	converter dataset.Converter
	scheduler anim.Scheduler
	logger    *log.Logger
	scene     scene.Scene
	destroyed bool
}

// New creates a controller and initialises its surface targets.
// Unless WithPicker is given, the accent color is drawn from a picker seeded
// with the current time.
func New(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		converter: dataset.Converter{Palette: dataset.Palette, Neutral: dataset.Neutral},
		scheduler: anim.NewScheduler(anim.DefaultConfig()),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.converter.Picker == nil {
		c.converter.Picker = dataset.NewRandomPicker(uint64(time.Now().UnixNano()))
	}
	c.surface.Init(DefaultTargets())
	return c
}

// Update renders the first row of the first data view.
//
// Missing data (no data views, a nil first view, no table or no rows) makes
// Update a no-op that returns a Result with Rendered false. After Destroy,
// Update returns ErrDestroyed.
func (c *Controller) Update(ctx context.Context, opts UpdateOptions) (Result, error) {
	if c.destroyed {
		return Result{}, ErrDestroyed
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	row, ok := firstRow(opts.DataViews)
	if !ok {
		c.logger.Debug("update skipped", "reason", "no data")
		observability.Chart().OnSkip(ctx)
		return Result{}, nil
	}

	start := time.Now()
	ds := c.converter.Convert(row)
	items := dataset.Expand(ds)
	layout := grid.Compute(opts.Viewport.Width, opts.Viewport.Height)
	diff := scene.Reconcile(c.scene.Circles(), items, layout)
	cmds := scene.Commands(diff, c.scheduler)

	c.surface.Resize(layout.Width, layout.Height)
	c.surface.Translate(layout.OriginX, layout.OriginY)
	for _, cmd := range cmds {
		c.scene.Apply(cmd)
		c.surface.Apply(cmd)
	}
	c.surface.SetLabel(Label{
		Text:        ds.Label(),
		Color:       ds.Primary.Color,
		Description: ds.Primary.Description,
	})

	res := Result{
		Rendered:   true,
		Dataset:    ds,
		Layout:     layout,
		Entering:   len(diff.Entering),
		Persisting: len(diff.Persisting),
		Exiting:    len(diff.Exiting),
		Commands:   cmds,
	}
	c.logger.Debug("reconciled",
		"value", ds.Primary.Value,
		"entering", res.Entering,
		"persisting", res.Persisting,
		"exiting", res.Exiting)
	observability.Chart().OnUpdate(ctx, observability.UpdateStats{
		Value:      ds.Primary.Value,
		Entering:   res.Entering,
		Persisting: res.Persisting,
		Exiting:    res.Exiting,
		Duration:   time.Since(start),
	})
	return res, nil
}

// Scene returns a copy of the rendered circles.
func (c *Controller) Scene() []scene.Circle { return c.scene.Circles() }

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool { return c.destroyed }

// Destroy releases the surface. It is safe to call more than once.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.scene.Clear()
	c.surface.Release()
	c.surface = nil
	observability.Chart().OnDestroy(context.Background())
}

func firstRow(views []*dataview.DataView) (dataview.Row, bool) {
	if len(views) == 0 || views[0].RowCount() == 0 {
		return nil, false
	}
	return views[0].FirstRow(), true
}
