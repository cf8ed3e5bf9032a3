package config

import "image/color"

func (c ColorConfig) NRGBA() color.NRGBA {
	a := uint8(255)
	if c.A != nil {
		a = *c.A
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// RGBA builds a ColorConfig with an explicit alpha.
func RGBA(r, g, b, a uint8) ColorConfig {
	return ColorConfig{R: r, G: g, B: b, A: &a}
}

func RGB(r, g, b uint8) ColorConfig {
	return ColorConfig{R: r, G: g, B: b}
}
