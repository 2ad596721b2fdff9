package scene

import (
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/core/grid"
)

// Circle is the visual state of one unit circle. CX and CY are relative to
// the circle group origin.
type Circle struct {
	CX      float64 `json:"cx"`
	CY      float64 `json:"cy"`
	R       float64 `json:"r"`
	Opacity float64 `json:"opacity"`
	Fill    string  `json:"fill"`
}

// Enter creates a circle that was not rendered before.
type Enter struct {
	Index   int
	Initial Circle
	Target  Circle
}

// Update transitions an existing circle.
type Update struct {
	Index  int
	From   Circle
	Target Circle
}

// Exit removes a rendered circle without transition.
type Exit struct {
	Index  int
	Circle Circle
}

// Diff is the outcome of a reconciliation. Each slice is in ascending index
// order, and all persisting indices precede entering ones, which precede
// exiting ones.
type Diff struct {
	Persisting []Update
	Entering   []Enter
	Exiting    []Exit
}

// Len returns the number of circles touched by d.
func (d Diff) Len() int {
	return len(d.Persisting) + len(d.Entering) + len(d.Exiting)
}

// IsIdentity reports whether applying d leaves the scene unchanged.
func (d Diff) IsIdentity() bool {
	if len(d.Entering) > 0 || len(d.Exiting) > 0 {
		return false
	}
	for _, u := range d.Persisting {
		if u.From != u.Target {
			return false
		}
	}
	return true
}

// Target returns the circle item i should settle on under layout l.
func Target(i int, item dataset.Item, l grid.Layout) Circle {
	c := l.Cell(i)
	return Circle{CX: c.X, CY: c.Y, R: c.Radius, Opacity: 1, Fill: item.Color}
}

// Reconcile matches items against the previously rendered circles.
func Reconcile(prev []Circle, items []dataset.Item, l grid.Layout) Diff {
	shared := min(len(prev), len(items))

	var d Diff
	if shared > 0 {
		d.Persisting = make([]Update, shared)
		for i := 0; i < shared; i++ {
			d.Persisting[i] = Update{Index: i, From: prev[i], Target: Target(i, items[i], l)}
		}
	}
	if n := len(items) - shared; n > 0 {
		d.Entering = make([]Enter, n)
		for k := range d.Entering {
			i := shared + k
			target := Target(i, items[i], l)
			initial := target
			initial.R, initial.Opacity = 0, 0
			d.Entering[k] = Enter{Index: i, Initial: initial, Target: target}
		}
	}
	if n := len(prev) - shared; n > 0 {
		d.Exiting = make([]Exit, n)
		for k := range d.Exiting {
			i := shared + k
			d.Exiting[k] = Exit{Index: i, Circle: prev[i]}
		}
	}
	return d
}
