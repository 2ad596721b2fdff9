package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/onepercent/pkg/core/chart"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static     bool
	background string
	font       string
}

// WithStatic draws the settled state without animation elements.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFont sets the label font family.
func WithFont(family string) SVGOption {
	return func(r *svgRenderer) {
		if family != "" {
			r.font = family
		}
	}
}

// RenderSVG draws f as an SVG document.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := svgRenderer{font: "sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := pixels(f.Width), pixels(f.Height)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.background != "" {
		canvas.Rect(0, 0, w, h, "fill:"+r.background)
	}

	targets := frameTargets(f)
	r.renderLabels(canvas, f, targets)

	canvas.Group(
		fmt.Sprintf(`class=%q`, targets.Circles),
		fmt.Sprintf(`transform="translate(%s,%s)"`, num(f.OriginX), num(f.OriginY)),
	)
	for _, c := range f.Circles {
		r.renderCircle(canvas, c)
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) renderLabels(canvas *svg.SVG, f Frame, targets chart.Targets) {
	top := f.Width * 0.15
	cx := pixels(f.Width / 2)
	numberSize := max(12, top*0.45)
	descSize := max(10, top*0.2)

	canvas.Text(cx, pixels(top*0.55), f.Label.Text,
		fmt.Sprintf(`class=%q`, targets.Number),
		fmt.Sprintf("fill:%s;font-size:%spx;font-family:%s;font-weight:bold;text-anchor:middle", orDefault(f.Label.Color, "#000000"), num(numberSize), r.font))
	if f.Label.Description != "" {
		canvas.Text(cx, pixels(top*0.9), f.Label.Description,
			fmt.Sprintf(`class=%q`, targets.Description),
			fmt.Sprintf("fill:#666666;font-size:%spx;font-family:%s;text-anchor:middle", num(descSize), r.font))
	}
}

func (r svgRenderer) renderCircle(canvas *svg.SVG, c Circle) {
	start := c.From
	if r.static {
		start = c.To
	}
	w := canvas.Writer
	fmt.Fprintf(w, `<circle class=%q cx="%s" cy="%s" r="%s" fill=%q opacity="%s"`,
		chart.ClassCircle, num(c.To.CX), num(c.To.CY), num(start.R), c.To.Fill, num(start.Opacity))
	if r.static || !animated(c) {
		fmt.Fprint(w, " />\n")
		return
	}
	fmt.Fprint(w, ">\n")
	animate(canvas, "r", c.From.R, c.To.R, c.Timing.Delay, c.Timing.Duration)
	animate(canvas, "opacity", c.From.Opacity, c.To.Opacity, c.Timing.Delay, c.Timing.Duration)
	fmt.Fprint(w, "</circle>\n")
}

func frameTargets(f Frame) chart.Targets {
	if f.Targets == (chart.Targets{}) {
		return chart.DefaultTargets()
	}
	return f.Targets
}

func animated(c Circle) bool {
	return c.Timing.Duration > 0 && (c.From.R != c.To.R || c.From.Opacity != c.To.Opacity)
}

func animate(canvas *svg.SVG, attr string, from, to float64, begin, dur time.Duration) {
	fmt.Fprintf(canvas.Writer, `  <animate attributeName=%q from="%s" to="%s" begin="%s" dur="%s" fill="freeze" />`+"\n",
		attr, num(from), num(to), seconds(begin), seconds(dur))
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func pixels(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
