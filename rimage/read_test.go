package rimage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/ppmtool/logging"
	"go.viam.com/ppmtool/utils"
)

func TestReadFile(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)

	doc, err := ReadFile(context.Background(), utils.ResolveFile("rimage/data/rgb8.ppm"), true, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Summary(), test.ShouldResemble, Summary{Width: 3, Height: 2, Magic: "P6", BitDepth: "8-bit"})
	test.That(t, doc.Pixels, test.ShouldResemble, []Pixel{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255},
		{10, 20, 30}, {0, 0, 0}, {255, 255, 255},
	})
	test.That(t, logs.FilterMessage("parsed header").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("parsed header").All()[0].ContextMap()["lines"], test.ShouldEqual, int64(5))
	test.That(t, logs.FilterMessage("decoded pixels").Len(), test.ShouldEqual, 1)

	doc, err = ReadFile(context.Background(), utils.ResolveFile("rimage/data/rgb16.ppm"), true, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Summary().BitDepth, test.ShouldEqual, "16-bit")
	test.That(t, doc.Pixels, test.ShouldResemble, []Pixel{{0x0102, 0x0304, 0x0506}, {0xffff, 0, 0x8000}})
}

func TestReadFileHeaderOnly(t *testing.T) {
	logger := logging.NewTestLogger(t)

	// a P3 file has a text payload, which is fine as long as nobody asks for pixels
	doc, err := ReadFile(context.Background(), utils.ResolveFile("rimage/data/ascii.ppm"), false, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Summary().String(), test.ShouldEqual,
		"Image Dimensions: 1 x 1\nFormat Subtype: P3\nBit Depth: 8-bit")
	test.That(t, doc.Pixels, test.ShouldBeNil)

	_, err = ReadFile(context.Background(), utils.ResolveFile("rimage/data/ascii.ppm"), true, logger)
	test.That(t, errors.Is(err, ErrUnsupportedFormat), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "this image is in P3 format")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.ppm"), false, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, ErrSourceUnavailable), test.ShouldBeTrue)
}

func TestReadFileTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.ppm")
	test.That(t, os.WriteFile(path, []byte("P6\n4 4\n255\n\x00\x00\x00"), 0o600), test.ShouldBeNil)

	doc, err := ReadFile(context.Background(), path, true, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, ErrTruncatedPayload), test.ShouldBeTrue)
	test.That(t, doc, test.ShouldBeNil)
}

func TestBitDepthLabel(t *testing.T) {
	test.That(t, BitDepthLabel(255), test.ShouldEqual, "8-bit")
	test.That(t, BitDepthLabel(65535), test.ShouldEqual, "16-bit")
	test.That(t, BitDepthLabel(1023), test.ShouldEqual, "Unknown")
	test.That(t, BitDepthLabel(0), test.ShouldEqual, "Unknown")
}

// TestRoundTripWithReferenceCodec checks decoding against an independent P6 implementation.
func TestRoundTripWithReferenceCodec(t *testing.T) {
	const w, h = 7, 5
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 36), uint8(y * 50), uint8((x + y) * 10), 0xff})
		}
	}

	var buf bytes.Buffer
	test.That(t, ppm.Encode(&buf, src), test.ShouldBeNil)

	doc, err := Decode(bytes.NewReader(buf.Bytes()))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Width, test.ShouldEqual, uint32(w))
	test.That(t, doc.Height, test.ShouldEqual, uint32(h))
	test.That(t, doc.Pixels, test.ShouldHaveLength, w*h)

	reference, err := ppm.Decode(bytes.NewReader(buf.Bytes()))
	test.That(t, err, test.ShouldBeNil)
	ours, err := doc.ToImage()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ours.Bounds(), test.ShouldResemble, reference.Bounds())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := src.RGBAAt(x, y)
			test.That(t, doc.At(x, y), test.ShouldResemble, Pixel{uint16(want.R), uint16(want.G), uint16(want.B)})

			r1, g1, b1, a1 := reference.At(x, y).RGBA()
			r2, g2, b2, a2 := ours.At(x, y).RGBA()
			test.That(t, []uint32{r2, g2, b2, a2}, test.ShouldResemble, []uint32{r1, g1, b1, a1})
		}
	}
}
