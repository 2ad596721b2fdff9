package grid_test

import (
	"fmt"

	"github.com/matzehuels/onepercent/pkg/core/grid"
)

func ExampleCompute() {
	l := grid.Compute(700, 400)

	fmt.Printf("Top margin: %.1f\n", l.TopMargin)
	fmt.Printf("Padding: %.1f\n", l.Padding)
	fmt.Printf("Radius: %.2f\n", l.Radius)
	fmt.Println("Rows for 100 items:", l.Rows(100))
	// Output:
	// Top margin: 105.0
	// Padding: 37.7
	// Radius: 8.43
	// Rows for 100 items: 8
}

func ExampleLayout_Cell() {
	l := grid.Compute(700, 400)
	c := l.Cell(14)

	fmt.Println("Row:", c.Row, "Column:", c.Column)
	fmt.Printf("Offset: %.1f, %.1f\n", c.X, c.Y)
	// Output:
	// Row: 1 Column: 1
	// Offset: 75.4, 75.4
}
