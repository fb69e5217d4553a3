// Package rimage reads binary portable pixel maps (P6) into memory and provides a handful of
// pixel operations and export helpers on top of the decoded result.
package rimage

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// MagicP6 is the only subtype whose payload DecodePixels understands.
	MagicP6 = "P6"

	// MaxColor8 selects 3 byte pixel records.
	MaxColor8 = 255
	// MaxColor16 selects 6 byte, big-endian pixel records.
	MaxColor16 = 65535

	commentMarker = "#"
)

// Pixel is a single color triple. Channels are wide enough for 16-bit images; 8-bit samples are
// stored as-is, not rescaled.
type Pixel struct {
	R, G, B uint16
}

// PPM is an image document. The header fields are populated by ParseHeader and Pixels by
// DecodePixels.
type PPM struct {
	Magic    string
	Width    uint32
	Height   uint32
	MaxColor uint32

	// Pixels is in raster order and either empty or exactly Width*Height long.
	Pixels []Pixel
}

// PixelCount returns Width*Height without overflowing.
func (p *PPM) PixelCount() uint64 {
	return uint64(p.Width) * uint64(p.Height)
}

// Decoded reports whether the pixel payload has been read. DecodePixels always stores a non-nil
// slice, so a zero area image counts as decoded once it has been through it.
func (p *PPM) Decoded() bool {
	return p.Pixels != nil && uint64(len(p.Pixels)) == p.PixelCount()
}

// At returns the pixel at column x, row y.
func (p *PPM) At(x, y int) Pixel {
	return p.Pixels[y*int(p.Width)+x]
}

// Clone returns a deep copy of p.
func (p *PPM) Clone() *PPM {
	ret := *p
	if p.Pixels != nil {
		ret.Pixels = make([]Pixel, len(p.Pixels))
		copy(ret.Pixels, p.Pixels)
	}
	return &ret
}

// Summary is the header-only description of an image.
type Summary struct {
	Width    uint32
	Height   uint32
	Magic    string
	BitDepth string
}

func (s Summary) String() string {
	return fmt.Sprintf("Image Dimensions: %d x %d\nFormat Subtype: %s\nBit Depth: %s",
		s.Width, s.Height, s.Magic, s.BitDepth)
}

// Summary describes the header of p.
func (p *PPM) Summary() Summary {
	return Summary{
		Width:    p.Width,
		Height:   p.Height,
		Magic:    p.Magic,
		BitDepth: BitDepthLabel(p.MaxColor),
	}
}

// BitDepthLabel names the bit depth implied by a max color value.
func BitDepthLabel(maxColor uint32) string {
	switch maxColor {
	case MaxColor8:
		return "8-bit"
	case MaxColor16:
		return "16-bit"
	default:
		return "Unknown"
	}
}

// RequireDecodable returns an error unless the header describes a subtype DecodePixels can read.
func RequireDecodable(p *PPM) error {
	if p.Magic != MagicP6 {
		return errors.Wrapf(ErrUnsupportedFormat, "this image is in %s format, only %s is supported", p.Magic, MagicP6)
	}
	return nil
}

// HeaderField identifies one of the four header values, in the order they appear.
type HeaderField int

// The header fields in file order.
const (
	FieldMagic HeaderField = iota
	FieldWidth
	FieldHeight
	FieldMaxColor
)

func (f HeaderField) String() string {
	switch f {
	case FieldMagic:
		return "magic number"
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	case FieldMaxColor:
		return "max color"
	default:
		return fmt.Sprintf("HeaderField(%d)", int(f))
	}
}
