package verlet_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stickpoint/internal/verlet"
)

// rigidSquare builds a 100x100 square hanging from a pinned corner, braced
// by one diagonal.
func rigidSquare(p verlet.Params) *verlet.World {
	w, err := verlet.NewWorld(p)
	Expect(err).NotTo(HaveOccurred())

	coords := [][2]float64{{100, 100}, {100, 200}, {200, 200}, {200, 100}}
	for i, c := range coords {
		_, err := w.AddPoint(verlet.PointConfig{X: c[0], Y: c[1], Pinned: i == 0})
		Expect(err).NotTo(HaveOccurred())
	}
	for _, pair := range [][2]verlet.PointID{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}} {
		_, err := w.AddStick(verlet.StickConfig{P0: pair[0], P1: pair[1]})
		Expect(err).NotTo(HaveOccurred())
	}
	_, err = w.AddPolygon(verlet.PolygonConfig{Vertices: []verlet.PointID{0, 1, 2, 3}, Color: verlet.RGB(255, 0, 255)})
	Expect(err).NotTo(HaveOccurred())
	return w
}

func dist(w *verlet.World, a, b verlet.PointID) float64 {
	p, q := w.Point(a), w.Point(b)
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func stickError(w *verlet.World, i int) float64 {
	s := w.Stick(i)
	return math.Abs(dist(w, s.P0, s.P1) - s.RestLength)
}

var _ = Describe("World", func() {
	var params verlet.Params

	BeforeEach(func() {
		params = verlet.DefaultParams()
	})

	Describe("pinned points", func() {
		It("never move regardless of forces", func() {
			w := rigidSquare(params)
			_, err := w.AddStick(verlet.StickConfig{P0: 0, P1: 2, Stiffness: 0.4, RestLength: 60})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 300; i++ {
				w.Step()
				p := w.Point(0)
				Expect(p.X).To(Equal(100.0))
				Expect(p.Y).To(Equal(100.0))
			}
		})
	})

	Describe("rigid stick relaxation", func() {
		It("drives the length error down on every pass", func() {
			params.Gravity = 0
			params.Friction = 0
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			a, _ := w.AddPoint(verlet.PointConfig{X: 300, Y: 300})
			b, _ := w.AddPoint(verlet.PointConfig{X: 360, Y: 300})
			_, err = w.AddStick(verlet.StickConfig{P0: a, P1: b, RestLength: 50})
			Expect(err).NotTo(HaveOccurred())

			prev := stickError(w, 0)
			for tick := 0; tick < 5; tick++ {
				w.Integrate()
				for pass := 0; pass < verlet.RelaxationPasses; pass++ {
					w.Relax(pass)
					w.Collide()
					cur := stickError(w, 0)
					Expect(cur).To(BeNumerically("<=", prev+1e-9))
					prev = cur
				}
			}
			Expect(prev).To(BeNumerically("<", 1e-6))
		})
	})

	Describe("friction", func() {
		It("strictly drains kinetic energy until points come to rest", func() {
			params.Gravity = 0
			params.Friction = 0.95
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range [][2]float64{{2, 1}, {-1.5, 0.5}, {0, -2}} {
				_, err := w.AddPoint(verlet.PointConfig{X: 400, Y: 300, VX: v[0], VY: v[1]})
				Expect(err).NotTo(HaveOccurred())
			}

			prev := w.KineticEnergy()
			for i := 0; i < 100; i++ {
				w.Step()
				e := w.KineticEnergy()
				Expect(e).To(BeNumerically("<", prev))
				prev = e
			}
		})

		It("reaches a static fixed point", func() {
			params.Gravity = 0
			params.Friction = 0.5
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			_, err = w.AddPoint(verlet.PointConfig{X: 400, Y: 300, VX: 3, VY: -2})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 200; i++ {
				w.Step()
			}
			Expect(w.KineticEnergy()).To(BeNumerically("<", 1e-20))
		})
	})

	Describe("boundary containment", func() {
		It("keeps every unpinned point inside the box after each tick", func() {
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			a, _ := w.AddPoint(verlet.PointConfig{X: 400, Y: 300, VX: 45, VY: -30, Radius: 10})
			b, _ := w.AddPoint(verlet.PointConfig{X: 430, Y: 300, VX: -20, VY: 60, Radius: 10})
			c, _ := w.AddPoint(verlet.PointConfig{X: 415, Y: 330, VX: 80, Radius: 4})
			for _, pair := range [][2]verlet.PointID{{a, b}, {b, c}, {c, a}} {
				_, err := w.AddStick(verlet.StickConfig{P0: pair[0], P1: pair[1]})
				Expect(err).NotTo(HaveOccurred())
			}

			for i := 0; i < 300; i++ {
				w.Step()
				Expect(w.Contained()).To(BeTrue(), "tick %d", w.Tick())
			}
		})
	})

	Describe("determinism", func() {
		It("produces identical positions for identical inputs", func() {
			a, b := rigidSquare(params), rigidSquare(params)
			for i := 0; i < 500; i++ {
				a.Step()
				b.Step()
			}
			Expect(a.Frame().Positions()).To(Equal(b.Frame().Positions()))
		})
	})

	Describe("hanging square", func() {
		var w *verlet.World

		BeforeEach(func() {
			w = rigidSquare(params)
		})

		It("falls and keeps its shape after one tick", func() {
			w.Step()

			free := w.Point(3)
			Expect(free.Y).To(BeNumerically(">", 100))
			Expect(free.Y).To(BeNumerically("<", 101))
			Expect(free.X).To(BeNumerically("~", 200, 0.5))

			for i := 0; i < 4; i++ {
				Expect(stickError(w, i)).To(BeNumerically("<", 1))
			}
			Expect(dist(w, 0, 2)).To(BeNumerically("~", 100*math.Sqrt2, 1))
		})

		It("settles below the pinned corner", func() {
			peak := 0.0
			for i := 0; i < 200; i++ {
				w.Step()
				peak = math.Max(peak, w.KineticEnergy())
				Expect(w.Contained()).To(BeTrue())
			}

			Expect(w.Point(0).X).To(Equal(100.0))
			Expect(w.Point(0).Y).To(Equal(100.0))
			Expect(w.Centroid().Y).To(BeNumerically(">", 100))
			Expect(w.MaxStrain()).To(BeNumerically("<", 0.05))
			Expect(w.KineticEnergy()).To(BeNumerically("<", 0.9*peak))
		})
	})

	Describe("spring sticks", func() {
		It("only push on the first relaxation pass", func() {
			params.Gravity = 0
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			a, _ := w.AddPoint(verlet.PointConfig{X: 300, Y: 300})
			b, _ := w.AddPoint(verlet.PointConfig{X: 360, Y: 380})
			_, err = w.AddStick(verlet.StickConfig{P0: a, P1: b, Stiffness: 0.1, RestLength: 50})
			Expect(err).NotTo(HaveOccurred())

			w.Integrate()
			before := dist(w, a, b)
			w.Relax(0)
			after := dist(w, a, b)
			// stretched by 50, so the ends close by stiffness*50
			Expect(before - after).To(BeNumerically("~", 5, 1e-9))

			p0, p1 := w.Point(a), w.Point(b)
			w.Relax(1)
			w.Relax(2)
			Expect(w.Point(a)).To(Equal(p0))
			Expect(w.Point(b)).To(Equal(p1))
		})
	})

	DescribeTable("construction rejects malformed input",
		func(cfg verlet.StickConfig, want error) {
			w, err := verlet.NewWorld(params)
			Expect(err).NotTo(HaveOccurred())
			w.AddPoint(verlet.PointConfig{X: 10, Y: 10})
			w.AddPoint(verlet.PointConfig{X: 10, Y: 10})
			_, err = w.AddStick(cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("zero-length rigid stick", verlet.StickConfig{P0: 0, P1: 1}, verlet.ErrZeroLengthStick),
		Entry("dangling reference", verlet.StickConfig{P0: 0, P1: 4}, verlet.ErrUnknownPoint),
		Entry("negative stiffness", verlet.StickConfig{P0: 0, P1: 1, Stiffness: -1, RestLength: 1}, verlet.ErrNegativeStiffness),
	)
})
