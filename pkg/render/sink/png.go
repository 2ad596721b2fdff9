package sink

import (
	"bytes"
	"fmt"

	"git.sr.ht/~sbinet/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
)

// PNGOption configures RenderPNG.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale multiplies the output resolution. Values below or equal to zero
// are ignored.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGBackground sets the canvas color. The default is white.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterises the settled state of f.
func RenderPNG(f Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	w := max(1, pixels(f.Width*r.scale))
	h := max(1, pixels(f.Height*r.scale))
	dc := gg.NewContext(w, h)
	if err := setColor(dc, r.background, 1); err != nil {
		return nil, err
	}
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	for _, c := range f.Final() {
		if err := setColor(dc, c.Fill, c.Opacity); err != nil {
			return nil, fmt.Errorf("circle fill: %w", err)
		}
		dc.DrawCircle(f.OriginX+c.CX, f.OriginY+c.CY, c.R)
		dc.Fill()
	}

	dc.SetFontFace(basicfont.Face7x13)
	top := f.Width * 0.15
	if f.Label.Text != "" {
		if err := setColor(dc, orDefault(f.Label.Color, "#000000"), 1); err != nil {
			return nil, fmt.Errorf("label color: %w", err)
		}
		dc.DrawStringAnchored(f.Label.Text, f.Width/2, top*0.45, 0.5, 0.5)
	}
	if f.Label.Description != "" {
		dc.SetHexColor("#666666")
		dc.DrawStringAnchored(f.Label.Description, f.Width/2, top*0.8, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, hex string, alpha float64) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", hex, err)
	}
	dc.SetRGBA(c.R, c.G, c.B, max(0, min(1, alpha)))
	return nil
}
