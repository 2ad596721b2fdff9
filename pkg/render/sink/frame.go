package sink

import (
	"time"

	"github.com/matzehuels/onepercent/pkg/core/anim"
	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/core/scene"
)

// Circle is one live circle with the transition that produced it.
type Circle struct {
	Index  int          `json:"index"`
	Op     scene.Op     `json:"op"`
	From   scene.Circle `json:"from"`
	To     scene.Circle `json:"to"`
	Timing anim.Timing  `json:"timing"`
}

// At interpolates the circle elapsed time after its update was issued.
// Position and fill jump to their targets; radius and opacity transition.
func (c Circle) At(elapsed time.Duration) scene.Circle {
	p := c.Timing.Progress(elapsed)
	out := c.To
	out.R = lerp(c.From.R, c.To.R, p)
	out.Opacity = lerp(c.From.Opacity, c.To.Opacity, p)
	return out
}

// Frame is a complete recorded chart state.
type Frame struct {
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	OriginX float64       `json:"origin_x"`
	OriginY float64       `json:"origin_y"`
	Radius  float64       `json:"radius"` // settled circle radius
	Targets chart.Targets `json:"targets"`
	Label   chart.Label   `json:"label"`
	Circles []Circle      `json:"circles"`
}

// Span returns the time until every transition has completed.
func (f Frame) Span() time.Duration {
	var span time.Duration
	for _, c := range f.Circles {
		span = max(span, c.Timing.End())
	}
	return span
}

// Final returns the settled state of every circle.
func (f Frame) Final() []scene.Circle {
	out := make([]scene.Circle, len(f.Circles))
	for i, c := range f.Circles {
		out[i] = c.To
	}
	return out
}

// Snapshot returns a frame frozen at elapsed. Its circles carry no timing and
// start in the interpolated state.
func (f Frame) Snapshot(elapsed time.Duration) Frame {
	s := f
	s.Circles = make([]Circle, len(f.Circles))
	for i, c := range f.Circles {
		at := c.At(elapsed)
		s.Circles[i] = Circle{Index: c.Index, Op: c.Op, From: at, To: at}
	}
	return s
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
