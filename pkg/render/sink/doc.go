// Package sink turns recorded chart output into files and terminal text.
//
// # Recording
//
// A [Recorder] is a [chart.Surface] that keeps the result of every command it
// receives. After an update, [Recorder.Frame] returns a [Frame]: the viewport,
// the circle group origin, the label and every live circle together with the
// transition that brings it to its final state.
//
//	rec := sink.NewRecorder()
//	c := chart.New(rec)
//	c.Update(ctx, opts)
//	svg, _ := sink.RenderSVG(rec.Frame())
//
// # Formats
//
//   - [RenderSVG]: animated SVG with SMIL transitions, or static with [WithStatic]
//   - [RenderPNG]: raster of the final state, scaled with [WithScale]
//   - [RenderJSON]: the frame as an indented JSON document
//   - [RenderDOT] and [RenderGraphviz]: a pinned-position Graphviz graph laid
//     out by neato
//   - [RenderText]: a colored terminal rendering
//
// [Frame.Snapshot] freezes a frame at a point of its timeline, which lets
// static renderers draw intermediate animation states.
//
// [chart.Surface]: github.com/matzehuels/onepercent/pkg/core/chart
package sink
