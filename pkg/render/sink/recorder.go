package sink

import (
	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/core/scene"
)

// Recorder is a chart.Surface that records the last frame drawn.
// It is not safe for concurrent use.
type Recorder struct {
	frame    Frame
	inited   bool
	released bool
}

var _ chart.Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init(t chart.Targets) {
	r.frame = Frame{Targets: t}
	r.inited = true
	r.released = false
}

func (r *Recorder) Resize(width, height float64) {
	r.frame.Width, r.frame.Height = width, height
}

func (r *Recorder) Translate(x, y float64) {
	r.frame.OriginX, r.frame.OriginY = x, y
}

func (r *Recorder) Apply(cmd scene.Command) {
	if cmd.Index < 0 {
		return
	}
	circles := r.frame.Circles
	switch cmd.Op {
	case scene.OpCreate, scene.OpUpdate:
		for len(circles) <= cmd.Index {
			circles = append(circles, Circle{Index: len(circles)})
		}
		circles[cmd.Index] = Circle{
			Index:  cmd.Index,
			Op:     cmd.Op,
			From:   cmd.From,
			To:     cmd.To,
			Timing: cmd.Timing,
		}
		r.frame.Radius = cmd.To.R
	case scene.OpRemove:
		if cmd.Index < len(circles) {
			circles = circles[:cmd.Index]
		}
	}
	r.frame.Circles = circles
}

func (r *Recorder) SetLabel(l chart.Label) { r.frame.Label = l }

func (r *Recorder) Release() {
	r.frame = Frame{}
	r.released = true
}

// Frame returns a copy of the recorded frame.
func (r *Recorder) Frame() Frame {
	f := r.frame
	f.Circles = append([]Circle(nil), r.frame.Circles...)
	return f
}

// Initialised reports whether Init has been called since the last Release.
func (r *Recorder) Initialised() bool { return r.inited && !r.released }

// Released reports whether the surface has been released.
func (r *Recorder) Released() bool { return r.released }
