package rimage

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ToImage converts a decoded document into a standard library image. Channel values are scaled
// from [0, MaxColor] onto the full 16-bit range; the document itself is not changed.
func (p *PPM) ToImage() (*image.NRGBA64, error) {
	if !p.Decoded() {
		return nil, errors.New("image has no decoded pixel data")
	}
	if p.MaxColor == 0 {
		return nil, errors.Wrap(ErrUnsupportedBitDepth, "max color value of 0")
	}

	w, h := int(p.Width), int(p.Height)
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := p.At(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: p.scaleTo16(px.R),
				G: p.scaleTo16(px.G),
				B: p.scaleTo16(px.B),
				A: 0xffff,
			})
		}
	}
	return img, nil
}

func (p *PPM) scaleTo16(v uint16) uint16 {
	switch p.MaxColor {
	case MaxColor16:
		return v
	case MaxColor8:
		return uint16(min(v, MaxColor8)) * 0x101
	default:
		return uint16(min(uint64(v)*MaxColor16/uint64(p.MaxColor), MaxColor16))
	}
}

// MeanColor returns the per channel average over all pixels, in the image's own scale.
func (p *PPM) MeanColor() Pixel {
	if len(p.Pixels) == 0 {
		return Pixel{}
	}
	var r, g, b uint64
	for _, px := range p.Pixels {
		r += uint64(px.R)
		g += uint64(px.G)
		b += uint64(px.B)
	}
	n := uint64(len(p.Pixels))
	return Pixel{R: uint16(r / n), G: uint16(g / n), B: uint16(b / n)}
}
