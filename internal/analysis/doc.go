// Package analysis extracts oscillation properties from recorded runs.
//
// All functions take a uniformly sampled series, usually one coordinate of
// one point read from a stored run:
//
//   - [FFT] and [PowerSpectrum]: radix-2 spectrum of a series
//   - [DominantPeriod]: period of the strongest non-constant component
//   - [UpwardCrossings] and [CrossingPeriod]: time-domain period estimate
//   - [NewPhasePortrait]: position against per-sample velocity
//
// # Periods
//
// Periods are measured in samples. Multiply by the recording interval to
// get ticks:
//
//	period, ok := analysis.DominantPeriod(ys)
//	if ok {
//	    ticks := period * float64(meta.RecordEvery)
//	}
package analysis
