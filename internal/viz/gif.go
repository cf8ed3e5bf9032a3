package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	gifCharW = 8
	gifCharH = 16
)

// CaptureFrame rasterises the canvas into a two-colour paletted image, one
// block per Braille dot.
func CaptureFrame(c *Canvas, fg, bg color.Color) *image.Paletted {
	imgW, imgH := c.Width*gifCharW, c.Height*gifCharH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{bg, fg})

	dotW, dotH := gifCharW/2, gifCharH/4
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

// SaveGIF writes the frames as a looping animation. delay is in 100ths of a
// second per frame.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
