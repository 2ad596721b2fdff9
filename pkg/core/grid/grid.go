package grid

import "math"

const (
	// ElementsPerRow is the number of circles in a full row.
	ElementsPerRow = 13

	// TopMarginRatio is the share of the width reserved above the grid.
	TopMarginRatio = 0.15
	// PaddingShrink is the share of the width not used for circle spacing.
	PaddingShrink = 0.3

	// FallbackPadding replaces a zero or non-finite padding.
	FallbackPadding = 30
	// FallbackRadius replaces a zero or non-finite radius.
	FallbackRadius = 10
)

// Layout holds the grid parameters for one viewport.
type Layout struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	TopMargin      float64 `json:"top_margin"`
	InnerWidth     float64 `json:"inner_width"`
	InnerHeight    float64 `json:"inner_height"`
	ElementsPerRow int     `json:"elements_per_row"`
	Padding        float64 `json:"padding"`
	Radius         float64 `json:"radius"`
	OriginX        float64 `json:"origin_x"`
	OriginY        float64 `json:"origin_y"`
}

// Cell is the position of one item relative to the group origin.
type Cell struct {
	Index  int     `json:"index"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Compute returns the layout for a width×height viewport.
// Negative or NaN dimensions are treated as zero.
func Compute(width, height float64) Layout {
	width, height = sanitize(width), sanitize(height)

	l := Layout{
		Width:          width,
		Height:         height,
		TopMargin:      width * TopMarginRatio,
		InnerWidth:     width,
		ElementsPerRow: ElementsPerRow,
	}
	l.InnerHeight = height - l.TopMargin

	n := float64(ElementsPerRow)
	l.Padding = orFallback((l.InnerWidth-l.InnerWidth*PaddingShrink)/n, FallbackPadding)
	l.Radius = orFallback(l.InnerWidth/(n+n*l.Padding/7), FallbackRadius)

	step := l.Radius + l.Padding
	l.OriginX = l.InnerWidth/2 - step*n/2 + step
	l.OriginY = l.TopMargin
	return l
}

// Cell returns the position of item i.
func (l Layout) Cell(i int) Cell {
	per := l.perRow()
	row := i / per
	return l.cell(i, row)
}

// Cells returns the positions of items 0..n-1 in fill order.
func (l Layout) Cells(n int) []Cell {
	if n <= 0 {
		return nil
	}
	per := l.perRow()
	cells := make([]Cell, n)
	row := -1
	for i := range cells {
		if i%per == 0 {
			row++
		}
		cells[i] = l.cell(i, row)
	}
	return cells
}

// Rows returns the number of rows n items occupy.
func (l Layout) Rows(n int) int {
	if n <= 0 {
		return 0
	}
	per := l.perRow()
	return (n + per - 1) / per
}

// Absolute converts a cell position to viewport coordinates.
func (l Layout) Absolute(c Cell) (x, y float64) {
	return l.OriginX + c.X, l.OriginY + c.Y
}

func (l Layout) cell(i, row int) Cell {
	per := l.perRow()
	return Cell{
		Index:  i,
		Row:    row,
		Column: i % per,
		X:      float64((i+1)-row*per) * l.Padding,
		Y:      float64(row+1) * l.Padding,
		Radius: l.Radius,
	}
}

func (l Layout) perRow() int {
	if l.ElementsPerRow <= 0 {
		return ElementsPerRow
	}
	return l.ElementsPerRow
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func orFallback(v, fallback float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
