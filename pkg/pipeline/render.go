package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/render/sink"
)

// NewChart creates a controller drawing onto surface with the chart options
// in opts.
func NewChart(surface chart.Surface, opts Options) *chart.Controller {
	return chart.New(surface,
		chart.WithPicker(dataset.NewRandomPicker(opts.Seed)),
		chart.WithPalette(opts.Palette),
		chart.WithNeutral(opts.Neutral),
		chart.WithAnimation(opts.Animation),
		chart.WithLogger(opts.Logger),
	)
}

// RenderFrame runs one update of a fresh controller and returns the recorded
// frame. A data view without rows is an error here, unlike in the controller.
func RenderFrame(ctx context.Context, dv *dataview.DataView, opts Options) (sink.Frame, chart.Result, error) {
	rec := sink.NewRecorder()
	c := NewChart(rec, opts)
	defer c.Destroy()

	res, err := c.Update(ctx, chart.UpdateOptions{
		Viewport:  chart.Viewport{Width: opts.Width, Height: opts.Height},
		DataViews: []*dataview.DataView{dv},
	})
	if err != nil {
		return sink.Frame{}, chart.Result{}, err
	}
	if !res.Rendered {
		return sink.Frame{}, res, errors.New(errors.ErrCodeInvalidInput, "data view has no rows")
	}
	return rec.Frame(), res, nil
}

// Render encodes f in every format of opts.
func Render(ctx context.Context, f sink.Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, f, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat encodes f in one format.
func RenderFormat(ctx context.Context, f sink.Frame, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Static {
			svgOpts = append(svgOpts, sink.WithStatic())
		}
		if opts.Background != "" {
			svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
		}
		if opts.Font != "" {
			svgOpts = append(svgOpts, sink.WithFont(opts.Font))
		}
		data = sink.RenderSVG(f, svgOpts...)
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.Background != "" {
			pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
		}
		data, err = sink.RenderPNG(f, pngOpts...)
	case FormatJSON:
		data, err = sink.RenderJSON(f)
	case FormatDOT:
		data = []byte(sink.RenderDOT(f))
	case FormatNeato:
		data, err = sink.RenderGraphviz(ctx, f, sink.GraphvizSVG)
	case FormatText:
		data = []byte(sink.RenderText(f))
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
