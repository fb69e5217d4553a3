package rimage

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxPrealloc bounds the up front allocation so a hostile header can't request gigabytes before
// a single byte of payload has been seen. Larger images still decode; the slice just grows.
const maxPrealloc = 1 << 24

type pixelDecoder struct {
	recordSize int
	decode     func(record []byte) Pixel
}

var pixelDecoders = map[uint32]pixelDecoder{
	MaxColor8: {
		recordSize: 3,
		decode: func(b []byte) Pixel {
			return Pixel{R: uint16(b[0]), G: uint16(b[1]), B: uint16(b[2])}
		},
	},
	MaxColor16: {
		recordSize: 6,
		decode: func(b []byte) Pixel {
			return Pixel{
				R: binary.BigEndian.Uint16(b[0:2]),
				G: binary.BigEndian.Uint16(b[2:4]),
				B: binary.BigEndian.Uint16(b[4:6]),
			}
		},
	},
}

// RecordSize returns how many payload bytes a single pixel takes for the given max color value.
func RecordSize(maxColor uint32) (int, error) {
	dec, err := lookupPixelDecoder(maxColor)
	if err != nil {
		return 0, err
	}
	return dec.recordSize, nil
}

func lookupPixelDecoder(maxColor uint32) (pixelDecoder, error) {
	dec, ok := pixelDecoders[maxColor]
	if !ok {
		return pixelDecoder{}, errors.Wrapf(ErrUnsupportedBitDepth,
			"cannot parse pixel data for image with max color value of %d", maxColor)
	}
	return dec, nil
}

// DecodePixels reads the binary payload of doc into doc.Pixels. linesConsumed must be the value
// ParseHeader returned for the same stream; the payload is located by seeking back to the start
// of rs and skipping that many lines, so rs may have been read from in between.
//
// On error doc.Pixels is left untouched.
func DecodePixels(rs io.ReadSeeker, doc *PPM, linesConsumed int) error {
	dec, err := lookupPixelDecoder(doc.MaxColor)
	if err != nil {
		return err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return newSourceError(err, "seeking to start of file")
	}
	br := bufio.NewReader(rs)
	for i := 0; i < linesConsumed; i++ {
		if _, err := readLine(br); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.Wrapf(ErrTruncatedHeader, "skipping header line %d of %d", i+1, linesConsumed)
			}
			return newSourceError(err, "skipping header")
		}
	}

	count := doc.PixelCount()
	pixels := make([]Pixel, 0, min(count, maxPrealloc))
	record := make([]byte, dec.recordSize)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, record); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return errors.Wrapf(ErrTruncatedPayload, "read %d of %d pixels", i, count)
			}
			return newSourceError(err, "reading pixel data")
		}
		pixels = append(pixels, dec.decode(record))
	}

	doc.Pixels = pixels
	return nil
}
