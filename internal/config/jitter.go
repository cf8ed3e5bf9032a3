package config

import "github.com/aquilax/go-perlin"

const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
)

// field returns a deterministic velocity field, or nil when jitter is off.
func (j JitterConfig) field() func(x, y float64) (float64, float64) {
	if j.Amplitude == 0 {
		return nil
	}
	scale := j.Scale
	if scale == 0 {
		scale = DefaultNoiseScale
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, j.Seed)
	return func(x, y float64) (float64, float64) {
		// offset the second sample so vx and vy are not correlated
		vx := j.Amplitude * noise.Noise2D(x*scale, y*scale)
		vy := j.Amplitude * noise.Noise2D(y*scale+17.3, x*scale+5.1)
		return vx, vy
	}
}
