package rimage

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

// 3x2:
//
//	a b c
//	d e f
func newTestImage() *PPM {
	return &PPM{
		Magic: "P6", Width: 3, Height: 2, MaxColor: 255,
		Pixels: []Pixel{
			{10, 20, 30}, {40, 50, 60}, {70, 80, 90},
			{100, 110, 120}, {130, 140, 150}, {255, 0, 255},
		},
	}
}

func TestApplyDoesNotModifySource(t *testing.T) {
	for _, op := range Operations() {
		t.Run(string(op), func(t *testing.T) {
			src := newTestImage()
			out, err := src.Apply(op)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, src, test.ShouldResemble, newTestImage())
			test.That(t, uint64(len(out.Pixels)), test.ShouldEqual, out.PixelCount())
			test.That(t, out.MaxColor, test.ShouldEqual, src.MaxColor)
		})
	}
}

func TestApplyGeometry(t *testing.T) {
	src := newTestImage()
	a, b, c := src.Pixels[0], src.Pixels[1], src.Pixels[2]
	d, e, f := src.Pixels[3], src.Pixels[4], src.Pixels[5]

	rotated, err := src.Apply(OpRotate)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rotated.Width, test.ShouldEqual, uint32(2))
	test.That(t, rotated.Height, test.ShouldEqual, uint32(3))
	test.That(t, rotated.Pixels, test.ShouldResemble, []Pixel{d, a, e, b, f, c})

	flipped, err := src.Apply(OpFlip)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, flipped.Pixels, test.ShouldResemble, []Pixel{c, b, a, f, e, d})

	half, err := src.Apply(OpHalf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, half.Width, test.ShouldEqual, uint32(1))
	test.That(t, half.Height, test.ShouldEqual, uint32(1))
	test.That(t, half.Pixels, test.ShouldResemble, []Pixel{{70, 80, 90}})
}

func TestApplyColor(t *testing.T) {
	src := newTestImage()

	neg, err := src.Apply(OpNegative)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, neg.Pixels[0], test.ShouldResemble, Pixel{245, 235, 225})
	test.That(t, neg.Pixels[5], test.ShouldResemble, Pixel{0, 255, 0})

	gray, err := src.Apply(OpGrayscale)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, gray.Pixels[5], test.ShouldResemble, Pixel{105, 105, 105})
	for _, px := range gray.Pixels {
		test.That(t, px.R, test.ShouldEqual, px.G)
		test.That(t, px.G, test.ShouldEqual, px.B)
	}

	red, err := src.Apply(OpIsolateRed)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, red.Pixels[1], test.ShouldResemble, Pixel{R: 40})
	green, err := src.Apply(OpIsolateGreen)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, green.Pixels[1], test.ShouldResemble, Pixel{G: 50})
	blue, err := src.Apply(OpIsolateBlue)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, blue.Pixels[1], test.ShouldResemble, Pixel{B: 60})

	trip, err := src.Apply(OpLSD)
	test.That(t, err, test.ShouldBeNil)
	// magenta rotates to green
	test.That(t, trip.Pixels[5], test.ShouldResemble, Pixel{0, 255, 0})
}

func TestApply16Bit(t *testing.T) {
	src := &PPM{Magic: "P6", Width: 1, Height: 1, MaxColor: 65535, Pixels: []Pixel{{0x0102, 0xff00, 0}}}
	neg, err := src.Apply(OpNegative)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, neg.Pixels, test.ShouldResemble, []Pixel{{0xfefd, 0x00ff, 0xffff}})
}

func TestApplyErrors(t *testing.T) {
	_, err := newTestImage().Apply(Operation("sharpen"))
	test.That(t, errors.Is(err, ErrUnknownOperation), test.ShouldBeTrue)

	headerOnly := &PPM{Magic: "P6", Width: 3, Height: 2, MaxColor: 255}
	_, err = headerOnly.Apply(OpCopy)
	test.That(t, err, test.ShouldBeError, errors.New("cannot apply copy to an image without decoded pixels"))
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		parsed, err := ParseOperation(string(op))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, op)
	}
	_, err := ParseOperation("GRAYSCALE")
	test.That(t, errors.Is(err, ErrUnknownOperation), test.ShouldBeTrue)
}

func TestMeanColorAndHex(t *testing.T) {
	src := newTestImage()
	test.That(t, src.MeanColor(), test.ShouldResemble, Pixel{R: 100, G: 66, B: 117})
	test.That(t, Pixel{255, 0, 128}.Hex(255), test.ShouldEqual, "#ff0080")
	test.That(t, Pixel{0xffff, 0, 0}.Hex(65535), test.ShouldEqual, "#ff0000")
	test.That(t, (&PPM{}).MeanColor(), test.ShouldResemble, Pixel{})
}

func TestApplyZeroArea(t *testing.T) {
	var doc PPM
	rs := bytes.NewReader([]byte("P6\n0 5\n255\n"))
	lines, err := ParseHeader(rs, &doc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, DecodePixels(rs, &doc, lines), test.ShouldBeNil)
	test.That(t, doc.Decoded(), test.ShouldBeTrue)

	for _, op := range Operations() {
		out, err := doc.Apply(op)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.Pixels, test.ShouldBeEmpty)
	}
	img, err := doc.ToImage()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Empty(), test.ShouldBeTrue)

	// a header alone is still not decoded, whatever its area
	headerOnly := &PPM{Magic: "P6", Width: 0, Height: 5, MaxColor: 255}
	test.That(t, headerOnly.Decoded(), test.ShouldBeFalse)
	_, err = headerOnly.Apply(OpCopy)
	test.That(t, err, test.ShouldNotBeNil)
}
