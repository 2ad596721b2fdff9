package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/onepercent/pkg/core/grid"
)

// Glyphs used by RenderText, from empty to fully grown.
const (
	GlyphEmpty = " "
	GlyphSmall = "·"
	GlyphHalf  = "•"
	GlyphFull  = "●"
)

// RenderText draws the settled state of f as colored terminal text: the label
// line followed by one line per grid row. Use Frame.Snapshot to draw a moment
// of the transition instead.
func RenderText(f Frame) string {
	var b strings.Builder

	numberStyle := lipgloss.NewStyle().Bold(true)
	if f.Label.Color != "" {
		numberStyle = numberStyle.Foreground(lipgloss.Color(f.Label.Color))
	}
	b.WriteString(numberStyle.Render(orDefault(f.Label.Text, "–")))
	if f.Label.Description != "" {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(f.Label.Description))
	}
	b.WriteString("\n\n")

	for i, c := range f.Circles {
		if i > 0 && i%grid.ElementsPerRow == 0 {
			b.WriteString("\n")
		}
		s := c.To
		g := glyph(s.R, f.Radius, s.Opacity)
		if i%grid.ElementsPerRow > 0 {
			b.WriteString(" ")
		}
		if s.Fill != "" && g != GlyphEmpty {
			g = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Fill)).Render(g)
		}
		b.WriteString(g)
	}
	if len(f.Circles) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// glyph picks a symbol for a circle grown to r of full radius at opacity.
func glyph(r, full, opacity float64) string {
	if r <= 0 || opacity <= 0 {
		return GlyphEmpty
	}
	p := opacity
	if full > 0 {
		p = min(p, r/full)
	}
	switch {
	case p >= 0.66:
		return GlyphFull
	case p >= 0.33:
		return GlyphHalf
	default:
		return GlyphSmall
	}
}
