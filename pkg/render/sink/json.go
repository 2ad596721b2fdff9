package sink

import (
	"github.com/goccy/go-json"
)

// RenderJSON encodes f as an indented JSON document.
func RenderJSON(f Frame) ([]byte, error) {
	if f.Circles == nil {
		f.Circles = []Circle{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a frame written by RenderJSON.
func ParseJSON(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, err
	}
	return f, nil
}
