package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestMimeTypeFromPath(t *testing.T) {
	for path, expected := range map[string]string{
		"out.png":          MimeTypePNG,
		"/tmp/OUT.JPG":     MimeTypeJPEG,
		"a/b/c.qoi":        MimeTypeQOI,
		"image.ppm":        MimeTypePPM,
		"scan.tiff":        MimeTypeTIFF,
		"no_extension":     "",
		"archive.ppm.gzip": "",
	} {
		t.Run(path, func(t *testing.T) {
			test.That(t, MimeTypeFromPath(path), test.ShouldEqual, expected)
		})
	}
}
