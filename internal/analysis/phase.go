package analysis

import (
	"strings"

	"github.com/san-kum/stickpoint/internal/verlet"
)

// PhasePortrait plots a coordinate against its change per sample.
type PhasePortrait struct {
	Points []verlet.Vec2
}

func NewPhasePortrait(series []float64) *PhasePortrait {
	if len(series) < 2 {
		return nil
	}

	portrait := &PhasePortrait{Points: make([]verlet.Vec2, 0, len(series)-1)}
	for i := 1; i < len(series); i++ {
		portrait.Points = append(portrait.Points, verlet.Vec2{
			X: series[i],
			Y: series[i] - series[i-1],
		})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// zero velocity axis
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// UpwardCrossings returns the fractional sample indices at which the series
// crosses threshold going up, linearly interpolated.
func UpwardCrossings(series []float64, threshold float64) []float64 {
	var out []float64
	for i := 1; i < len(series); i++ {
		prev, curr := series[i-1], series[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			out = append(out, float64(i-1)+frac)
		}
	}
	return out
}

// CrossingPeriod is the mean spacing of upward crossings of the series
// mean, in samples. ok is false with fewer than two crossings.
func CrossingPeriod(series []float64) (period float64, ok bool) {
	if len(series) < 3 {
		return 0, false
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	c := UpwardCrossings(series, mean)
	if len(c) < 2 {
		return 0, false
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1), true
}
