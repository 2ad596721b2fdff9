package chart_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/core/scene"
	"github.com/matzehuels/onepercent/pkg/dataview"
)

// countingSurface counts the circles it is asked to draw.
type countingSurface struct {
	live  int
	label chart.Label
}

func (s *countingSurface) Init(chart.Targets)         {}
func (s *countingSurface) Resize(float64, float64)    {}
func (s *countingSurface) Translate(float64, float64) {}
func (s *countingSurface) SetLabel(l chart.Label)     { s.label = l }
func (s *countingSurface) Release()                   {}
func (s *countingSurface) Apply(cmd scene.Command) {
	switch cmd.Op {
	case scene.OpCreate:
		s.live++
	case scene.OpRemove:
		s.live--
	}
}

func ExampleController() {
	s := &countingSurface{}
	c := chart.New(s, chart.WithPicker(dataset.FixedPicker(3)))
	defer c.Destroy()

	res, _ := c.Update(context.Background(), chart.UpdateOptions{
		Viewport:  chart.Viewport{Width: 800, Height: 600},
		DataViews: []*dataview.DataView{dataview.FromRow("Coverage", 87.0)},
	})

	fmt.Println("Rendered:", res.Rendered)
	fmt.Println("Circles:", s.live)
	fmt.Println("Label:", s.label.Text, s.label.Color, s.label.Description)
	// Output:
	// Rendered: true
	// Circles: 100
	// Label: 87% #F1B719 Coverage
}
