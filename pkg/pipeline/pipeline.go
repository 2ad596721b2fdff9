// Package pipeline runs the load → update → render sequence shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read a data view from a file, request body or caller
//  2. Frame: drive a chart controller against a recording surface
//  3. Render: encode the recorded frame in each requested format
//
// Rendered artifacts are cached by the hash of the frame they came from, and
// every run can be recorded in a history store.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "progress.csv",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Long-lived callers that keep one controller across updates, such as the
// file watcher, use [NewChart] and [Render] directly.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/onepercent/pkg/cache"
	"github.com/matzehuels/onepercent/pkg/core/anim"
	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/render/sink"
)

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultSeed seeds the accent color picker.
	DefaultSeed = uint64(42)

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// Output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatNeato = "neato" // Graphviz neato layout rendered to SVG
	FormatText  = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatNeato: true,
	FormatText:  true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatNeato:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	if format == FormatNeato {
		return "neato.svg"
	}
	return format
}

// Options configures one pipeline run.
type Options struct {
	// Input selection, first match wins: DataView, Data, Input.
	DataView   *dataview.DataView `json:"-"`
	Data       []byte             `json:"-"`
	DataFormat string             `json:"data_format,omitempty"`
	Input      string             `json:"input,omitempty"`

	// Chart options
	Width     float64     `json:"width,omitempty"`
	Height    float64     `json:"height,omitempty"`
	Seed      uint64      `json:"seed,omitempty"`
	Palette   []string    `json:"palette,omitempty"`
	Neutral   string      `json:"neutral,omitempty"`
	Animation anim.Config `json:"-"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Static  bool     `json:"static,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	NoCache bool     `json:"no_cache,omitempty"`

	// Background fills the svg and png canvas; empty leaves svg transparent
	// and png white. Font sets the svg label font family.
	Background string `json:"background,omitempty"`
	Font       string `json:"font,omitempty"`

	// Source labels the history entry, e.g. a file name or "http".
	Source string `json:"source,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in the history store.
	ID string

	// Frame is the recorded chart state.
	Frame sink.Frame

	// Chart is the controller's report of the update.
	Chart chart.Result

	// FrameHash is the content hash of the encoded frame.
	FrameHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	// FrameCacheHit is true when the frame was restored from the cache
	// instead of being recorded.
	FrameCacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	FrameTime  time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataView == nil && len(o.Data) == 0 && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	o.SetChartDefaults()
	o.SetRenderDefaults()
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if len(o.Palette) > 0 {
		if err := errors.ValidatePalette(o.Palette); err != nil {
			return err
		}
	}
	if o.Neutral != "" {
		if err := errors.ValidateColor(o.Neutral); err != nil {
			return err
		}
	}
	if o.Background != "" {
		if err := errors.ValidateColor(o.Background); err != nil {
			return err
		}
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be a non-negative number, got %v", o.Scale)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := errors.ValidateRaster(o.Width, o.Height, o.Scale); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetChartDefaults fills in viewport, seed and logger.
func (o *Options) SetChartDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills in formats and scale.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		opts.Static = o.Static
		opts.Background = o.Background
		opts.Font = o.Font
	case FormatPNG:
		opts.Scale = o.Scale
		opts.Background = o.Background
	}
	return opts
}

// FrameKeyOpts returns cache key options for the recorded frame.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		Seed:     o.Seed,
		Palette:  o.Palette,
		Neutral:  o.Neutral,
		Duration: o.Animation.Duration,
		Stagger:  o.Animation.Stagger,
	}
}

// String summarises the options for logs.
func (o *Options) String() string {
	return fmt.Sprintf("%gx%g formats=%s seed=%d", o.Width, o.Height, strings.Join(o.Formats, ","), o.Seed)
}
