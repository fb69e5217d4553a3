package rimage

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTruncatedHeader is returned when the stream ends before all four header fields are read.
	ErrTruncatedHeader = errors.New("end of file reached before all header information was read")

	// ErrMalformedField is returned (through a *FieldError) when a header token cannot be parsed
	// for the field it was assigned to.
	ErrMalformedField = errors.New("malformed header field")

	// ErrTruncatedPayload is returned when the stream ends before every pixel record was read.
	ErrTruncatedPayload = errors.New("end of file reached before all pixel data was read")

	// ErrUnsupportedBitDepth is returned when decoding pixels with a max color value other than
	// 255 or 65535.
	ErrUnsupportedBitDepth = errors.New("unsupported max color value")

	// ErrSourceUnavailable is returned when the underlying file or stream can't be opened, read or
	// repositioned.
	ErrSourceUnavailable = errors.New("image source unavailable")

	// ErrUnsupportedFormat is returned when pixel decoding is requested for a subtype other than P6.
	ErrUnsupportedFormat = errors.New("unsupported format subtype")
)

// FieldError describes a header token that failed to parse for a given field.
type FieldError struct {
	Field HeaderField
	Token string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("header block for %s failed to parse: %q", e.Field, e.Token)
	}
	return fmt.Sprintf("header block for %s failed to parse: %q: %v", e.Field, e.Token, e.Err)
}

// Is reports every FieldError as an ErrMalformedField.
func (e *FieldError) Is(target error) bool {
	return target == ErrMalformedField
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func newSourceError(err error, action string) error {
	return errors.Wrapf(ErrSourceUnavailable, "%s: %v", action, err)
}
