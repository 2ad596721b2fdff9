package pipeline

import (
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
)

// Load resolves the data view named by opts.
func Load(opts Options) (*dataview.DataView, error) {
	switch {
	case opts.DataView != nil:
		return opts.DataView, nil
	case len(opts.Data) > 0:
		format := opts.DataFormat
		if format == "" {
			format = dataview.Sniff(opts.Data)
		}
		return dataview.Parse(opts.Data, format)
	case opts.Input != "":
		return dataview.Load(opts.Input)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
}
