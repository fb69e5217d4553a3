package rimage

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Operation names a pixel transformation that can be applied to a decoded image.
type Operation string

// The supported operations.
const (
	OpCopy         = Operation("copy")
	OpGrayscale    = Operation("grayscale")
	OpNegative     = Operation("negative")
	OpRotate       = Operation("rotate")
	OpHalf         = Operation("half")
	OpLSD          = Operation("lsd")
	OpFlip         = Operation("flip")
	OpIsolateRed   = Operation("isolate-red")
	OpIsolateGreen = Operation("isolate-green")
	OpIsolateBlue  = Operation("isolate-blue")
)

// ErrUnknownOperation is returned by ParseOperation for names that aren't an Operation.
var ErrUnknownOperation = errors.New("unknown operation")

var operations = map[Operation]func(*PPM) *PPM{
	OpCopy:         (*PPM).Clone,
	OpGrayscale:    grayscale,
	OpNegative:     negative,
	OpRotate:       rotateClockwise,
	OpHalf:         halfSize,
	OpLSD:          lsd,
	OpFlip:         flipHorizontal,
	OpIsolateRed:   isolate(func(p Pixel) Pixel { return Pixel{R: p.R} }),
	OpIsolateGreen: isolate(func(p Pixel) Pixel { return Pixel{G: p.G} }),
	OpIsolateBlue:  isolate(func(p Pixel) Pixel { return Pixel{B: p.B} }),
}

// Operations lists every supported operation name.
func Operations() []Operation {
	return []Operation{
		OpCopy, OpGrayscale, OpNegative, OpRotate, OpHalf, OpLSD, OpFlip,
		OpIsolateRed, OpIsolateGreen, OpIsolateBlue,
	}
}

// ParseOperation looks up an operation by name.
func ParseOperation(name string) (Operation, error) {
	op := Operation(name)
	if _, ok := operations[op]; !ok {
		return "", errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
	return op, nil
}

// Apply runs op on a decoded image and returns the result as a new document; p is not modified.
func (p *PPM) Apply(op Operation) (*PPM, error) {
	fn, ok := operations[op]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", op)
	}
	if !p.Decoded() {
		return nil, errors.Errorf("cannot apply %s to an image without decoded pixels", op)
	}
	return fn(p), nil
}

func mapPixels(p *PPM, fn func(Pixel) Pixel) *PPM {
	ret := p.Clone()
	for i, px := range ret.Pixels {
		ret.Pixels[i] = fn(px)
	}
	return ret
}

func isolate(fn func(Pixel) Pixel) func(*PPM) *PPM {
	return func(p *PPM) *PPM {
		return mapPixels(p, fn)
	}
}

// grayscale uses Rec. 601 luma weights.
func grayscale(p *PPM) *PPM {
	return mapPixels(p, func(px Pixel) Pixel {
		y := uint16((299*uint32(px.R) + 587*uint32(px.G) + 114*uint32(px.B) + 500) / 1000)
		return Pixel{y, y, y}
	})
}

func negative(p *PPM) *PPM {
	invert := func(v uint16) uint16 {
		if uint32(v) >= p.MaxColor {
			return 0
		}
		return uint16(p.MaxColor - uint32(v))
	}
	return mapPixels(p, func(px Pixel) Pixel {
		return Pixel{invert(px.R), invert(px.G), invert(px.B)}
	})
}

func rotateClockwise(p *PPM) *PPM {
	w, h := int(p.Width), int(p.Height)
	ret := &PPM{Magic: p.Magic, Width: p.Height, Height: p.Width, MaxColor: p.MaxColor}
	ret.Pixels = make([]Pixel, len(p.Pixels))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x, y) moves to column h-1-y of row x.
			ret.Pixels[x*h+(h-1-y)] = p.Pixels[y*w+x]
		}
	}
	return ret
}

func flipHorizontal(p *PPM) *PPM {
	ret := p.Clone()
	w := int(p.Width)
	for row := 0; row < int(p.Height); row++ {
		line := ret.Pixels[row*w : (row+1)*w]
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			line[i], line[j] = line[j], line[i]
		}
	}
	return ret
}

// halfSize averages each 2x2 block. An odd trailing row or column is dropped.
func halfSize(p *PPM) *PPM {
	w := int(p.Width)
	ret := &PPM{Magic: p.Magic, Width: p.Width / 2, Height: p.Height / 2, MaxColor: p.MaxColor}
	ret.Pixels = make([]Pixel, 0, ret.PixelCount())
	for y := 0; y < int(ret.Height); y++ {
		for x := 0; x < int(ret.Width); x++ {
			var r, g, b uint32
			for _, idx := range []int{
				(2*y)*w + 2*x, (2*y)*w + 2*x + 1,
				(2*y+1)*w + 2*x, (2*y+1)*w + 2*x + 1,
			} {
				px := p.Pixels[idx]
				r += uint32(px.R)
				g += uint32(px.G)
				b += uint32(px.B)
			}
			ret.Pixels = append(ret.Pixels, Pixel{uint16(r / 4), uint16(g / 4), uint16(b / 4)})
		}
	}
	return ret
}

// lsd rotates every hue half way around the color wheel and pushes saturation up. Grays have no
// hue and stay gray.
func lsd(p *PPM) *PPM {
	scale := float64(p.MaxColor)
	if scale == 0 {
		return p.Clone()
	}
	return mapPixels(p, func(px Pixel) Pixel {
		c := colorful.Color{R: float64(px.R) / scale, G: float64(px.G) / scale, B: float64(px.B) / scale}
		h, s, v := c.Hsv()
		if s == 0 {
			return px
		}
		out := colorful.Hsv(math.Mod(h+180, 360), math.Sqrt(s), v).Clamped()
		return Pixel{
			R: uint16(math.Round(out.R * scale)),
			G: uint16(math.Round(out.G * scale)),
			B: uint16(math.Round(out.B * scale)),
		}
	})
}

// Hex formats a pixel as #rrggbb, scaling it down from maxColor if needed.
func (px Pixel) Hex(maxColor uint32) string {
	if maxColor == 0 {
		return colorful.Color{}.Hex()
	}
	scale := float64(maxColor)
	return colorful.Color{
		R: float64(px.R) / scale,
		G: float64(px.G) / scale,
		B: float64(px.B) / scale,
	}.Clamped().Hex()
}
