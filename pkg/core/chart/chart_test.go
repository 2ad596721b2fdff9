package chart

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/matzehuels/onepercent/pkg/core/anim"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/core/scene"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
)

type fakeSurface struct {
	calls    []string
	targets  Targets
	width    float64
	height   float64
	originX  float64
	originY  float64
	cmds     []scene.Command
	labels   []Label
	released bool
}

func (f *fakeSurface) Init(t Targets) {
	f.calls = append(f.calls, "init")
	f.targets = t
}

func (f *fakeSurface) Resize(w, h float64) {
	f.calls = append(f.calls, "resize")
	f.width, f.height = w, h
}

func (f *fakeSurface) Translate(x, y float64) {
	f.calls = append(f.calls, "translate")
	f.originX, f.originY = x, y
}

func (f *fakeSurface) Apply(cmd scene.Command) {
	f.calls = append(f.calls, "apply")
	f.cmds = append(f.cmds, cmd)
}

func (f *fakeSurface) SetLabel(l Label) {
	f.calls = append(f.calls, "label")
	f.labels = append(f.labels, l)
}

func (f *fakeSurface) Release() {
	f.calls = append(f.calls, "release")
	f.released = true
}

func newTestController(s Surface) *Controller {
	return New(s, WithPicker(dataset.FixedPicker(0)))
}

func update(t *testing.T, c *Controller, views ...*dataview.DataView) Result {
	t.Helper()
	res, err := c.Update(context.Background(), UpdateOptions{
		Viewport:  Viewport{Width: 300, Height: 200},
		DataViews: views,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	return res
}

func TestNew_InitialisesTargets(t *testing.T) {
	s := &fakeSurface{}
	newTestController(s)

	if len(s.calls) != 1 || s.calls[0] != "init" {
		t.Fatalf("calls = %v, want [init]", s.calls)
	}
	if s.targets != DefaultTargets() {
		t.Errorf("targets = %+v", s.targets)
	}
	if s.targets.Number != "onepercent_circles_number" {
		t.Errorf("number class = %q", s.targets.Number)
	}
}

func TestUpdate_ScenarioA(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	res := update(t, c, dataview.FromRow(42.0, "Done"))

	if !res.Rendered {
		t.Fatal("Rendered = false, want true")
	}
	if res.Entering != 100 || res.Persisting != 0 || res.Exiting != 0 {
		t.Errorf("counts = %d/%d/%d", res.Entering, res.Persisting, res.Exiting)
	}
	if len(s.cmds) != 100 {
		t.Fatalf("surface got %d commands, want 100", len(s.cmds))
	}
	primary := 0
	for i, cmd := range s.cmds {
		if cmd.Index != i || cmd.Op != scene.OpCreate {
			t.Fatalf("cmd %d = %v index %d", i, cmd.Op, cmd.Index)
		}
		if cmd.To.Fill == dataset.Palette[0] {
			primary++
		}
	}
	if primary != 42 {
		t.Errorf("primary circles = %d, want 42", primary)
	}
	if len(s.labels) != 1 {
		t.Fatalf("labels set %d times, want 1", len(s.labels))
	}
	want := Label{Text: "42%", Color: dataset.Palette[0], Description: "Done"}
	if s.labels[0] != want {
		t.Errorf("label = %+v, want %+v", s.labels[0], want)
	}
	if s.width != 300 || s.height != 200 || s.originY != 45 {
		t.Errorf("viewport %vx%v origin y %v", s.width, s.height, s.originY)
	}
	if last := s.calls[len(s.calls)-1]; last != "label" {
		t.Errorf("last call = %q, want label", last)
	}
}

func TestUpdate_ScenarioB_ValueChange(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	update(t, c, dataview.FromRow(42.0))
	s.cmds = nil

	res := update(t, c, dataview.FromRow(150.0))
	if res.Persisting != 100 || res.Entering != 0 || res.Exiting != 0 {
		t.Fatalf("counts = %d/%d/%d", res.Entering, res.Persisting, res.Exiting)
	}
	if res.Dataset.Primary.Value != 100 || res.Dataset.Secondary.Value != 0 {
		t.Errorf("dataset = %+v", res.Dataset)
	}
	for _, cmd := range s.cmds {
		if cmd.Op != scene.OpUpdate {
			t.Fatalf("op = %v, want update", cmd.Op)
		}
		if cmd.To.Fill != dataset.Palette[0] {
			t.Fatalf("circle %d fill = %q after 100%%", cmd.Index, cmd.To.Fill)
		}
	}
	if got := c.Scene(); len(got) != 100 {
		t.Errorf("scene has %d circles", len(got))
	}
}

func TestUpdate_ScenarioC_Negative(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	res := update(t, c, dataview.FromRow(-5.0))

	if res.Dataset.Primary.Value != -5 || res.Dataset.Secondary.Value != 105 {
		t.Errorf("dataset = %+v", res.Dataset)
	}
	for _, cmd := range s.cmds {
		if cmd.To.Fill != dataset.Neutral {
			t.Fatalf("circle %d fill = %q, want neutral", cmd.Index, cmd.To.Fill)
		}
	}
	if s.labels[0].Text != "-5%" {
		t.Errorf("label = %q", s.labels[0].Text)
	}
}

func TestUpdate_NoData(t *testing.T) {
	tests := []struct {
		name  string
		views []*dataview.DataView
	}{
		{"no views", nil},
		{"nil view", []*dataview.DataView{nil}},
		{"no table", []*dataview.DataView{{}}},
		{"no rows", []*dataview.DataView{{Table: &dataview.Table{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSurface{}
			c := newTestController(s)
			res := update(t, c, tt.views...)
			if res.Rendered {
				t.Error("Rendered = true, want false")
			}
			if len(s.calls) != 1 {
				t.Errorf("surface touched: %v", s.calls)
			}
		})
	}
}

func TestUpdate_EmptyRowRendersZero(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	res := update(t, c, dataview.FromRows(dataview.Row{}))
	if !res.Rendered || res.Dataset.Primary.Value != 0 {
		t.Errorf("res = %+v", res)
	}
}

func TestUpdate_Timing(t *testing.T) {
	s := &fakeSurface{}
	c := New(s, WithPicker(dataset.FixedPicker(0)), WithAnimation(anim.Config{Duration: time.Second, Stagger: time.Millisecond}))
	update(t, c, dataview.FromRow(1.0))
	if got := s.cmds[10].Timing; got.Delay != 10*time.Millisecond || got.Duration != time.Second {
		t.Errorf("timing = %+v", got)
	}
}

func TestOptions_Colors(t *testing.T) {
	s := &fakeSurface{}
	c := New(s, WithPicker(dataset.FixedPicker(0)), WithPalette([]string{"#123456"}), WithNeutral("#ffffff"))
	res := update(t, c, dataview.FromRow(50.0))
	if res.Dataset.Primary.Color != "#123456" || res.Dataset.Secondary.Color != "#ffffff" {
		t.Errorf("colors = %q / %q", res.Dataset.Primary.Color, res.Dataset.Secondary.Color)
	}
}

func TestDestroy(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	update(t, c, dataview.FromRow(10.0))
	c.Destroy()
	c.Destroy()

	if !s.released || !c.Destroyed() {
		t.Fatal("surface not released")
	}
	n := len(s.calls)

	_, err := c.Update(context.Background(), UpdateOptions{DataViews: []*dataview.DataView{dataview.FromRow(20.0)}})
	if !stderrors.Is(err, ErrDestroyed) {
		t.Fatalf("Update after Destroy error = %v, want ErrDestroyed", err)
	}
	if !errors.Is(err, errors.ErrCodeDestroyed) {
		t.Errorf("error code = %q", errors.GetCode(err))
	}
	if len(s.calls) != n {
		t.Errorf("surface touched after destroy: %v", s.calls[n:])
	}
}

func TestUpdate_CancelledContext(t *testing.T) {
	s := &fakeSurface{}
	c := newTestController(s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Update(ctx, UpdateOptions{DataViews: []*dataview.DataView{dataview.FromRow(1.0)}}); !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
