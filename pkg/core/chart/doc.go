// Package chart drives the lifecycle of a one percent circles chart.
//
// A [Controller] owns the rendered scene and issues instructions to a
// [Surface], the host-provided drawing target. Its lifecycle mirrors a
// visual embedded in a dashboard:
//
//	c := chart.New(surface)                     // init: create targets
//	res, err := c.Update(ctx, chart.UpdateOptions{
//	    Viewport:  chart.Viewport{Width: 800, Height: 600},
//	    DataViews: []*dataview.DataView{dv},
//	})                                          // zero or more times
//	c.Destroy()                                 // release the surface
//
// # Updates
//
// Each update converts the first row of the first data view, expands it into
// 100 items, computes the grid for the viewport and reconciles the items with
// the scene. Commands reach the surface in index order, followed by exactly one
// label update. Updates without usable data are ignored and leave the surface
// untouched.
//
// A controller is single-writer: it starts no goroutines and must not be used
// concurrently. A newer update supersedes transitions still running on the
// surface from an older one.
package chart
