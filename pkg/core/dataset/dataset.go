package dataset

import (
	"math"
	"strconv"
)

// Total is the number of unit items in every expanded dataset.
const Total = 100

// Neutral is the color of the complement point.
const Neutral = "#e5e5e5"

// Palette is the fixed set of accent colors for the primary point.
var Palette = []string{"#00ACE4", "#00D8A5", "#9b59b6", "#F1B719", "#e74c3c"}

// Point is one half of the percentage dataset.
type Point struct {
	Color       string  `json:"color"`
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
}

// Dataset is the converted pair: the accent-colored value and its complement.
type Dataset struct {
	Primary   Point `json:"primary"`
	Secondary Point `json:"secondary"`
}

// Label returns the numeric label text, e.g. "42%".
func (d Dataset) Label() string {
	return FormatPercent(d.Primary.Value)
}

// FormatPercent formats v with the shortest exact representation and a % suffix.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Item is one unit circle.
type Item struct {
	Color string `json:"color"`
}

// Expand produces exactly Total items: the primary color first, then the
// secondary color.
func Expand(d Dataset) []Item {
	n := PrimaryCount(d.Primary.Value)
	items := make([]Item, Total)
	for i := range items {
		if i < n {
			items[i].Color = d.Primary.Color
		} else {
			items[i].Color = d.Secondary.Color
		}
	}
	return items
}

// PrimaryCount is the number of accent items drawn for value v.
func PrimaryCount(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(max(0, min(Total, math.Round(v))))
}
