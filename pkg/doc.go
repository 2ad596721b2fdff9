// Package pkg provides the core libraries for onepercent percentage charts.
//
// # Overview
//
// onepercent draws a single percentage as a waffle of one hundred circles laid
// out thirteen to a row: one circle per percent in an accent color, the rest
// in a neutral color, with the number and a description above the grid. The
// pkg directory is organized into four main areas:
//
//  1. [core] - Domain logic (dataset conversion, grid layout, reconciliation)
//  2. [render/sink] - Output encoders for a recorded chart frame
//  3. [pipeline] - Orchestration (load → update → render → cache)
//  4. Infrastructure - [cache], [history], [config], [observability]
//
// # Architecture
//
// The typical data flow through onepercent:
//
//	CSV / JSON / YAML document
//	         ↓
//	    [dataview] package (tabular input)
//	         ↓
//	    [core/dataset] package (first row → primary and secondary points → 100 items)
//	         ↓
//	    [core/grid] + [core/scene] packages (layout + enter/update/exit diff)
//	         ↓
//	    [core/chart] controller → Surface
//	         ↓
//	    SVG/PNG/JSON/DOT/text output
//
// # Quick Start
//
// Record one update and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/onepercent/pkg/core/chart"
//	    "github.com/matzehuels/onepercent/pkg/dataview"
//	    "github.com/matzehuels/onepercent/pkg/render/sink"
//	)
//
//	rec := sink.NewRecorder()
//	c := chart.New(rec)
//	defer c.Destroy()
//
//	_, err := c.Update(context.Background(), chart.UpdateOptions{
//	    Viewport:  chart.Viewport{Width: 800, Height: 600},
//	    DataViews: []*dataview.DataView{dataview.FromRow(42.0, "of builds are green")},
//	})
//
//	svg := sink.RenderSVG(rec.Frame())
//
// For files, caching and history use [pipeline.Runner] instead.
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/dataset] - Converts a row into a primary point (the value, an accent
// color, a description) and its complement, and expands them into exactly one
// hundred colored items.
//
// [core/grid] - Computes the circle layout for a viewport: a top margin for
// the label, a fixed number of circles per row, padding and radius.
//
// [core/scene] - Reconciles the previous circles with the new items into
// persisting, entering and exiting circles and turns the diff into drawing
// commands.
//
// [core/anim] - Staggered transition timing.
//
// [core/chart] - The controller tying these together behind a Surface.
//
// [dataview] - The tabular input model with CSV, JSON and YAML loaders.
//
// ## Infrastructure
//
// [cache] - Artifact cache with null, file and Redis backends.
//
// [history] - Render history in memory or MongoDB.
//
// [config] - TOML configuration file.
//
// [observability] - Hook registry for chart, render, cache and HTTP events.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core
// [core/dataset]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core/dataset
// [core/grid]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core/grid
// [core/scene]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core/scene
// [core/anim]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core/anim
// [core/chart]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/core/chart
// [dataview]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/dataview
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/history
// [config]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/onepercent/pkg/errors
package pkg
