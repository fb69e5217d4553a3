package rimage

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
	"go.uber.org/multierr"

	"go.viam.com/ppmtool/logging"
)

// Decode reads a complete P6 image from rs: header first, then the pixel payload.
func Decode(rs io.ReadSeeker) (*PPM, error) {
	return decode(rs, true, logging.NewBlankLogger("rimage"))
}

// ReadFile opens the file at path and parses its header. If withPixels is set the P6 payload is
// decoded as well, and images of any other subtype are rejected. The file is closed on every
// return path.
func ReadFile(ctx context.Context, path string, withPixels bool, logger logging.Logger) (img *PPM, err error) {
	_, span := trace.StartSpan(ctx, "rimage::ReadFile")
	defer span.End()

	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, newSourceError(err, "opening file")
	}
	defer func() {
		err = multierr.Combine(err, errors.Wrap(f.Close(), "closing file"))
		if err != nil {
			img = nil
		}
	}()

	return decode(f, withPixels, logger)
}

func decode(rs io.ReadSeeker, withPixels bool, logger logging.Logger) (*PPM, error) {
	var doc PPM
	lines, err := ParseHeader(rs, &doc)
	if err != nil {
		return nil, err
	}
	logger.Debugw("parsed header",
		"magic", doc.Magic, "width", doc.Width, "height", doc.Height, "max_color", doc.MaxColor, "lines", lines)
	if !withPixels {
		return &doc, nil
	}

	if err := RequireDecodable(&doc); err != nil {
		return nil, err
	}
	if err := DecodePixels(rs, &doc, lines); err != nil {
		return nil, err
	}
	logger.Debugw("decoded pixels", "count", len(doc.Pixels), "bit_depth", BitDepthLabel(doc.MaxColor))
	return &doc, nil
}
