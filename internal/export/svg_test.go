package export

import (
	"encoding/xml"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/stickpoint/internal/verlet"
)

func squareFrame(t *testing.T) verlet.Frame {
	t.Helper()
	w, err := verlet.NewWorld(verlet.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	coords := [][2]float64{{100, 100}, {100, 200}, {200, 200}, {200, 100}}
	ids := make([]verlet.PointID, len(coords))
	for i, c := range coords {
		ids[i], _ = w.AddPoint(verlet.PointConfig{X: c[0], Y: c[1], Radius: 5})
	}
	for i := range ids {
		w.AddStick(verlet.StickConfig{P0: ids[i], P1: ids[(i+1)%len(ids)]})
	}
	w.AddStick(verlet.StickConfig{P0: ids[0], P1: ids[2], Hidden: true})
	w.AddPolygon(verlet.PolygonConfig{Vertices: ids, Color: color.NRGBA{R: 255, B: 255, A: 128}})
	return w.Frame()
}

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed svg: %v", err)
		}
	}
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(squareFrame(t))
	wellFormed(t, svg)

	tests := []struct {
		name string
		frag string
		n    int
	}{
		{"background", `fill="#ffffff"`, 1},
		{"polygon", `<polygon fill="#ff00ff" fill-opacity="0.502"`, 1},
		{"circles", "<circle ", 4},
		{"visible sticks only", "<line ", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Count(svg, tt.frag); got != tt.n {
				t.Errorf("found %d of %q, want %d", got, tt.frag, tt.n)
			}
		})
	}

	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("svg should use world dimensions")
	}
	if !strings.Contains(svg, `<g stroke="#000000" stroke-width="1" fill="#000000">`) {
		t.Error("points should be filled black")
	}
	poly, circle, line := strings.Index(svg, "<polygon "), strings.Index(svg, "<circle "), strings.Index(svg, "<line ")
	if !(poly < circle && circle < line) {
		t.Errorf("draw order polygon %d, circle %d, line %d; want polygons, points, sticks", poly, circle, line)
	}
}

func TestFrameWithTrails(t *testing.T) {
	trails := [][]verlet.Vec2{
		{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}},
		{{X: 5, Y: 5}},
	}
	svg := FrameWithTrails(squareFrame(t), trails, "#ff0000")
	wellFormed(t, svg)

	if got := strings.Count(svg, `stroke="#ff0000"`); got != 1 {
		t.Errorf("expected 1 trail, got %d", got)
	}
	if !strings.Contains(svg, "M1.0,1.0 L2.0,2.0 L3.0,1.0") {
		t.Error("trail path missing")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]verlet.Vec2{{X: 1, Y: 1}}, 100, 100, "#000") != "" {
		t.Error("expected empty output for a single point")
	}

	pts := []verlet.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}}
	svg := TrajectoryToSVG(pts, 120, 120, "#0000ff")
	wellFormed(t, svg)

	// 10% padding on a 12-unit span maps the endpoints to 10 and 110
	if !strings.Contains(svg, "M10.0,10.0 L110.0,110.0") {
		t.Errorf("unexpected path in %s", svg)
	}
}
