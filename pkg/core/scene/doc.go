// Package scene reconciles the rendered circles of a chart with the items of
// a new update.
//
// Circles are keyed by position: item i always maps to circle i. [Reconcile]
// partitions the indices into three variants:
//
//   - [Enter] for indices with no rendered circle. The circle is created at its
//     cell with zero radius and opacity and grows to its target.
//   - [Update] for indices present on both sides. The circle moves to its new
//     cell and takes the new fill.
//   - [Exit] for rendered circles beyond the new item count. They are removed
//     instantly.
//
// [Commands] flattens a [Diff] into index-ordered [Command] values with
// timings from an [anim.Scheduler]. A [Scene] holds the target state of every
// live circle and is changed only by applying commands.
//
// [anim.Scheduler]: github.com/matzehuels/onepercent/pkg/core/anim
package scene
