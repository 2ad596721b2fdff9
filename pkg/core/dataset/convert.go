package dataset

import (
	"math"

	"github.com/matzehuels/onepercent/pkg/dataview"
)

// Converter turns a row into a Dataset.
// The zero value uses Palette, Neutral and a picker that always returns the
// first palette entry.
type Converter struct {
	Palette []string
	Neutral string
	Picker  Picker
}

// Convert converts row with the default palette and the given picker.
func Convert(row dataview.Row, pick Picker) Dataset {
	return Converter{Picker: pick}.Convert(row)
}

// Convert scans row and returns the clamped percentage pair.
// A nil row yields zero values. Convert never fails.
func (c Converter) Convert(row dataview.Row) Dataset {
	palette := c.Palette
	if len(palette) == 0 {
		palette = Palette
	}
	neutral := c.Neutral
	if neutral == "" {
		neutral = Neutral
	}
	pick := c.Picker
	if pick == nil {
		pick = FixedPicker(0)
	}

	d := Dataset{
		Primary:   Point{Color: pick.Pick(palette)},
		Secondary: Point{Color: neutral},
	}

	for _, cell := range row {
		if v, ok := numeric(cell); ok {
			d.Primary.Value = min(v, 100)
			d.Secondary.Value = max(100-v, 0)
			continue
		}
		if s, ok := cell.(string); ok {
			d.Primary.Description = s
		}
	}
	return d
}

type float64er interface {
	Float64() (float64, error)
}

// numeric reports whether a cell counts as a number. Strings holding a finite
// decimal number count, matching how spreadsheet hosts deliver values.
func numeric(cell dataview.Cell) (float64, bool) {
	var v float64
	switch n := cell.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case string:
		return dataview.ParseNumber(n)
	case float64er:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
