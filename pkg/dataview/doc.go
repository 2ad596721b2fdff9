// Package dataview models the tabular input of a chart and loads it from files.
//
// A [DataView] wraps a [Table] of [Row]s. Each row is a sequence of loosely
// typed cells: numbers, strings, or anything else a decoder produced. Only the
// first row is consumed by the chart; later rows are kept so that round trips
// through the loaders are lossless.
//
// # Formats
//
//   - CSV: one record per row. A leading record without numeric cells is
//     treated as a header when more records follow.
//   - JSON: {"columns": [...], "rows": [[...], ...]}, a bare array of rows,
//     or a flat array of cells (a single row).
//   - YAML: the same shapes as JSON.
//
// Numbers are normalized to float64 regardless of format, so downstream code
// only has to handle float64, string and "other".
package dataview
