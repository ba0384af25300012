// Package export renders a world to a standalone SVG image.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/kalver/physbox/internal/world"
)

// WorldToSVG draws bodies, constraints, trails, and active fields at
// world scale. Output is self-contained and viewable in any browser.
func WorldToSVG(w *world.World) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, w.Width, w.Height, w.Width, w.Height))

	if w.Settings.ShowTrails {
		for _, b := range w.Bodies {
			if len(b.Trail) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.4" points="`, colorOr(b.Color)))
			for i, p := range b.Trail {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			}
			sb.WriteString("\"/>\n")
		}
	}

	for _, c := range w.Constraints {
		a := w.BodyByID(c.BodyA)
		b := w.BodyByID(c.BodyB)
		if a == nil || b == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>
`, a.Position.X, a.Position.Y, b.Position.X, b.Position.Y, colorOr(c.Color)))
	}

	for _, b := range w.Bodies {
		fill := colorOr(b.Color)
		switch s := b.Shape.(type) {
		case world.Circle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Position.X, b.Position.Y, s.Radius, fill))
		case world.Rect:
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>
`, b.Position.X-s.Width/2, b.Position.Y-s.Height/2, s.Width, s.Height, fill,
				b.Rotation*180/math.Pi, b.Position.X, b.Position.Y))
		}
	}

	for _, f := range w.Fields {
		if !f.Active {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#666666" stroke-dasharray="4 4"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="#666666"/>
`, f.Position.X, f.Position.Y, f.Radius, f.Position.X, f.Position.Y))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func colorOr(c string) string {
	if c == "" {
		return "#cccccc"
	}
	return c
}
