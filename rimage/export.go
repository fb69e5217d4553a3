package rimage

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.opencensus.io/trace"
	"go.uber.org/multierr"

	"go.viam.com/ppmtool/utils"
)

// ErrUnsupportedExport is returned when asked to encode to a mime type ppmtool can't write.
var ErrUnsupportedExport = errors.New("unsupported export format")

var imagingFormats = map[string]imaging.Format{
	utils.MimeTypeJPEG: imaging.JPEG,
	utils.MimeTypePNG:  imaging.PNG,
	utils.MimeTypeGIF:  imaging.GIF,
	utils.MimeTypeTIFF: imaging.TIFF,
	utils.MimeTypeBMP:  imaging.BMP,
}

// EncodeImage writes img to w in the format named by mimeType.
func EncodeImage(ctx context.Context, w io.Writer, img image.Image, mimeType string) error {
	_, span := trace.StartSpan(ctx, "rimage::EncodeImage::"+mimeType)
	defer span.End()

	if mimeType == utils.MimeTypeQOI {
		return qoi.Encode(w, img)
	}
	format, ok := imagingFormats[mimeType]
	if !ok {
		return errors.Wrapf(ErrUnsupportedExport, "%q", mimeType)
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(90))
}

// EncodeImageBytes is EncodeImage into a byte slice.
func EncodeImageBytes(ctx context.Context, img image.Image, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeImage(ctx, &buf, img, mimeType); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteImageToFile encodes img to path, picking the format from the file extension.
func WriteImageToFile(ctx context.Context, path string, img image.Image) (err error) {
	mimeType := utils.MimeTypeFromPath(path)
	if mimeType == "" || mimeType == utils.MimeTypePPM {
		return errors.Wrapf(ErrUnsupportedExport, "cannot write %q", path)
	}

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	return EncodeImage(ctx, f, img, mimeType)
}
