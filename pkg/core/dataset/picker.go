package dataset

import "math/rand/v2"

// Picker selects the accent color from a palette.
type Picker interface {
	Pick(palette []string) string
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(palette []string) string

// Pick calls f.
func (f PickerFunc) Pick(palette []string) string { return f(palette) }

// FixedPicker always picks palette[i], wrapping around the palette length.
func FixedPicker(i int) Picker {
	return PickerFunc(func(palette []string) string {
		if len(palette) == 0 {
			return ""
		}
		n := len(palette)
		return palette[((i%n)+n)%n]
	})
}

// RandomPicker picks uniformly from the palette.
// It is not safe for concurrent use.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker returns a picker seeded for reproducible sequences.
func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Pick returns a uniformly chosen palette entry.
func (p *RandomPicker) Pick(palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[p.rng.IntN(len(palette))]
}
