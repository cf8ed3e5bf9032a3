package verlet

import "math"

// World owns every point, stick and polygon of a simulation together with
// its constants. Sticks and polygons refer to points by PointID.
type World struct {
	params   Params
	points   []Point
	sticks   []Stick
	polygons []Polygon
	tick     int
}

func NewWorld(p Params) (*World, error) {
	if err := p.validate(); err != nil {
		return nil, &ConfigError{Kind: "params", Wrapped: err}
	}
	return &World{
		params:   p,
		points:   make([]Point, 0),
		sticks:   make([]Stick, 0),
		polygons: make([]Polygon, 0),
	}, nil
}

func (w *World) Params() Params { return w.params }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

func (w *World) NumPoints() int   { return len(w.points) }
func (w *World) NumSticks() int   { return len(w.sticks) }
func (w *World) NumPolygons() int { return len(w.polygons) }

func (w *World) Point(id PointID) Point { return w.points[id] }
func (w *World) Stick(i int) Stick      { return w.sticks[i] }

func (w *World) Polygon(i int) Polygon {
	p := w.polygons[i]
	p.Vertices = append([]PointID(nil), p.Vertices...)
	return p
}

// Points returns a copy of every point in creation order.
func (w *World) Points() []Point {
	out := make([]Point, len(w.points))
	copy(out, w.points)
	return out
}

func (w *World) AddPoint(cfg PointConfig) (PointID, error) {
	idx := len(w.points)
	if !finite(cfg.X, cfg.Y, cfg.Radius, cfg.VX, cfg.VY) {
		return 0, &ConfigError{Kind: "point", Index: idx, Wrapped: ErrNonFinite}
	}
	if cfg.Radius < 0 {
		return 0, &ConfigError{Kind: "point", Index: idx, Wrapped: ErrNegativeRadius}
	}
	if 2*cfg.Radius > w.params.Width || 2*cfg.Radius > w.params.Height {
		return 0, &ConfigError{Kind: "point", Index: idx, Wrapped: ErrRadiusTooLarge}
	}

	w.points = append(w.points, Point{
		X:      cfg.X,
		Y:      cfg.Y,
		PrevX:  cfg.X - cfg.VX,
		PrevY:  cfg.Y - cfg.VY,
		Radius: cfg.Radius,
		Pinned: cfg.Pinned,
	})
	return PointID(idx), nil
}

// AddStick validates cfg and appends a stick, returning its index.
func (w *World) AddStick(cfg StickConfig) (int, error) {
	idx := len(w.sticks)
	fail := func(err error) (int, error) {
		return 0, &ConfigError{Kind: "stick", Index: idx, Wrapped: err}
	}

	if !w.valid(cfg.P0) || !w.valid(cfg.P1) {
		return fail(ErrUnknownPoint)
	}
	if cfg.P0 == cfg.P1 {
		return fail(ErrSelfStick)
	}
	if !finite(cfg.Stiffness, cfg.RestLength) {
		return fail(ErrNonFinite)
	}
	if cfg.Stiffness < 0 {
		return fail(ErrNegativeStiffness)
	}
	if cfg.RestLength < 0 {
		return fail(ErrNegativeRestLength)
	}

	rest := cfg.RestLength
	if rest == 0 {
		p0, p1 := w.points[cfg.P0], w.points[cfg.P1]
		rest = math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
	}
	if rest == 0 && cfg.Stiffness == 0 {
		return fail(ErrZeroLengthStick)
	}

	w.sticks = append(w.sticks, Stick{
		P0:         cfg.P0,
		P1:         cfg.P1,
		Stiffness:  cfg.Stiffness,
		Hidden:     cfg.Hidden,
		RestLength: rest,
	})
	return idx, nil
}

func (w *World) AddPolygon(cfg PolygonConfig) (int, error) {
	idx := len(w.polygons)
	if len(cfg.Vertices) < 3 {
		return 0, &ConfigError{Kind: "polygon", Index: idx, Wrapped: ErrPolygonTooSmall}
	}
	for _, id := range cfg.Vertices {
		if !w.valid(id) {
			return 0, &ConfigError{Kind: "polygon", Index: idx, Wrapped: ErrUnknownPoint}
		}
	}

	w.polygons = append(w.polygons, Polygon{
		Vertices: append([]PointID(nil), cfg.Vertices...),
		Color:    cfg.Color,
	})
	return idx, nil
}

func (w *World) valid(id PointID) bool {
	return id >= 0 && int(id) < len(w.points)
}

// IsValid reports whether every coordinate is finite.
func (w *World) IsValid() bool {
	for _, p := range w.points {
		if !finite(p.X, p.Y, p.PrevX, p.PrevY) {
			return false
		}
	}
	return true
}
