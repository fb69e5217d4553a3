package utils

import (
	"path/filepath"
	"strings"
)

const (
	// MimeTypePPM is the binary portable pixel map.
	MimeTypePPM = "image/x-portable-pixmap"

	// MimeTypeJPEG is regular jpgs.
	MimeTypeJPEG = "image/jpeg"

	// MimeTypePNG is regular pngs.
	MimeTypePNG = "image/png"

	// MimeTypeGIF is gifs.
	MimeTypeGIF = "image/gif"

	// MimeTypeTIFF is tiffs.
	MimeTypeTIFF = "image/tiff"

	// MimeTypeBMP is windows bitmaps.
	MimeTypeBMP = "image/bmp"

	// MimeTypeQOI is for .qoi "Quite OK Image" for lossless, fast encoding/decoding.
	MimeTypeQOI = "image/qoi"
)

var extensionMimeTypes = map[string]string{
	".ppm":  MimeTypePPM,
	".pnm":  MimeTypePPM,
	".jpg":  MimeTypeJPEG,
	".jpeg": MimeTypeJPEG,
	".png":  MimeTypePNG,
	".gif":  MimeTypeGIF,
	".tif":  MimeTypeTIFF,
	".tiff": MimeTypeTIFF,
	".bmp":  MimeTypeBMP,
	".qoi":  MimeTypeQOI,
}

// MimeTypeFromPath guesses the mime type of a file from its extension. The empty string is
// returned for unknown extensions.
func MimeTypeFromPath(path string) string {
	return extensionMimeTypes[strings.ToLower(filepath.Ext(path))]
}
