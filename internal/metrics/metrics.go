package metrics

import "github.com/san-kum/stickpoint/internal/sim"

// DefaultSettleThreshold is the kinetic energy below which a scene counts
// as at rest.
const DefaultSettleThreshold = 0.01

// Defaults returns fresh instances of every built-in metric.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewFinalEnergy(),
		NewMaxStrain(),
		NewContainment(),
		NewSettleTick(DefaultSettleThreshold),
	}
}
