package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/stickpoint/internal/verlet"
)

// FrameToSVG draws a frame in world coordinates: a white background, filled
// polygons, then filled black circles for points, then black lines for
// visible sticks.
func FrameToSVG(f verlet.Frame) string {
	var sb strings.Builder
	writeFrame(&sb, f)
	sb.WriteString("</svg>")
	return sb.String()
}

// FrameWithTrails draws the frame and overlays one polyline per trail.
func FrameWithTrails(f verlet.Frame, trails [][]verlet.Vec2, strokeColor string) string {
	var sb strings.Builder
	writeFrame(&sb, f)

	for _, trail := range trails {
		if len(trail) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="`, strokeColor))
		writePath(&sb, trail, func(v verlet.Vec2) (float64, float64) { return v.X, v.Y })
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeFrame(sb *strings.Builder, f verlet.Frame) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, f.Width, f.Height, f.Width, f.Height))

	for _, poly := range f.Polygons {
		fill, opacity := svgColor(poly.Color)
		sb.WriteString(fmt.Sprintf(`<polygon fill="%s" fill-opacity="%.3f" points="`, fill, opacity))
		for i, v := range poly.Vertices {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", v.X, v.Y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(`<g stroke="#000000" stroke-width="1" fill="#000000">` + "\n")
	for _, p := range f.Points {
		if p.Radius <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, p.X, p.Y, p.Radius))
	}
	for _, s := range f.Sticks {
		if s.Hidden {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, s.A.X, s.A.Y, s.B.X, s.B.Y))
	}
	sb.WriteString("</g>\n")
}

func svgColor(c color.NRGBA) (string, float64) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255
}

func writePath(sb *strings.Builder, pts []verlet.Vec2, project func(verlet.Vec2) (float64, float64)) {
	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
}

// TrajectoryToSVG plots a path scaled to fit the image, with 10% padding.
// Screen y grows downward, matching world coordinates.
func TrajectoryToSVG(points []verlet.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	writePath(&sb, points, func(p verlet.Vec2) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), (p.Y - minY) / rangeY * float64(height)
	})

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
