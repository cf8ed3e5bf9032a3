package metrics

import (
	"math"

	"github.com/san-kum/stickpoint/internal/verlet"
)

// Containment is the fraction of observed ticks on which every unpinned
// point was inside the world rectangle.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(w *verlet.World) {
	c.samples++
	if !w.Contained() {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// MaxStrain is the largest relative length error of any rigid stick seen
// during the run.
type MaxStrain struct {
	name string
	max  float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(w *verlet.World) {
	m.max = math.Max(m.max, w.MaxStrain())
}

func (m *MaxStrain) Value() float64 { return m.max }
func (m *MaxStrain) Reset()         { m.max = 0 }
