// Package grid computes the waffle layout of the chart: 13 circles per row,
// filled left to right and top to bottom.
//
// # Geometry
//
// [Compute] derives every dimension from the viewport width:
//
//   - TopMargin is 15% of the width; the circle group starts below it.
//   - Padding is the spacing between circle centres, (0.7*width)/13.
//   - Radius is width/(13 + 13*padding/7).
//   - OriginX centres the 13-column band horizontally.
//
// A zero or non-finite padding falls back to 30, a zero or non-finite radius to
// 10, so a degenerate viewport still produces a drawable layout.
//
// # Cells
//
// [Layout.Cell] places item i in row i/13 and column i%13, relative to the
// group origin:
//
//	cx = ((i+1) - row*13) * padding
//	cy = (row+1) * padding
//
// [Layout.Cells] walks a run of items in fill order. Layouts are plain values;
// identical inputs always give identical layouts.
package grid
