package chart

import "github.com/matzehuels/onepercent/pkg/core/scene"

// Class names of the rendering targets.
const (
	ClassRoot        = "onepercent_circles"
	ClassNumber      = ClassRoot + "_number"
	ClassDescription = ClassRoot + "_description"
	ClassCircle      = ClassRoot + "_circle"
)

// Targets names the three elements a surface creates on init.
type Targets struct {
	Number      string `json:"number"`
	Description string `json:"description"`
	Circles     string `json:"circles"`
}

// DefaultTargets returns the standard class names.
func DefaultTargets() Targets {
	return Targets{Number: ClassNumber, Description: ClassDescription, Circles: ClassRoot}
}

// Label is the text shown above the grid.
type Label struct {
	Text        string `json:"text"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Surface is a drawing target that can hold one chart.
type Surface interface {
	// Init creates the label and circle group targets.
	Init(targets Targets)
	// Resize sets the viewport dimensions.
	Resize(width, height float64)
	// Translate moves the circle group to its origin.
	Translate(x, y float64)
	// Apply executes one circle command.
	Apply(cmd scene.Command)
	// SetLabel replaces the number and description text.
	SetLabel(label Label)
	// Release drops every target.
	Release()
}
