// Package dataset converts one row of tabular input into the two-point
// percentage dataset drawn by the chart.
//
// # Conversion
//
// [Convert] scans every cell of a row. Numeric cells set the value, text cells
// set the description; when a row holds several cells of one kind the last one
// wins. The primary point carries min(v, 100) and the secondary point carries
// max(100-v, 0), so the pair always sums to 100. Negative values are not
// raised to zero: -5 yields a primary of -5 and a secondary of 105.
//
// # Colors
//
// The primary point gets an accent color from [Palette]; which one is decided by
// a [Picker]. Production code uses a seeded [NewRandomPicker], tests use
// [FixedPicker] for stable output. The secondary point is always [Neutral].
//
// # Items
//
// [Expand] turns a dataset into exactly [Total] unit items, primary first.
// Item counts come from the primary value rounded and clamped into [0, 100],
// which keeps the count fixed even for out-of-range or fractional values.
package dataset
