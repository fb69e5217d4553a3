package rimage

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseHeader reads the text header at the start of r into the Magic, Width, Height and MaxColor
// fields of doc and returns the number of lines it consumed, comment lines included. The pixel
// payload begins immediately after the last consumed line.
//
// Lines starting with '#' are ignored. All other lines are split on single spaces and each
// resulting token, empty ones included, is assigned to the next header field. Once the max color
// value is read the rest of that line is left alone. doc is only modified on success.
func ParseHeader(r io.Reader, doc *PPM) (int, error) {
	br := bufio.NewReader(r)

	var hdr PPM
	field := FieldMagic
	for index := 0; ; index++ {
		line, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.Wrapf(ErrTruncatedHeader, "missing %s after %d lines", field, index)
			}
			return 0, newSourceError(err, "reading header")
		}
		if strings.HasPrefix(line, commentMarker) {
			continue
		}

		for _, token := range strings.Split(line, " ") {
			if err := hdr.setField(field, token); err != nil {
				return 0, err
			}
			field++
			if field > FieldMaxColor {
				doc.Magic = hdr.Magic
				doc.Width = hdr.Width
				doc.Height = hdr.Height
				doc.MaxColor = hdr.MaxColor
				return index + 1, nil
			}
		}
	}
}

func (p *PPM) setField(field HeaderField, token string) error {
	if field == FieldMagic {
		if token == "" {
			return &FieldError{Field: field, Token: token}
		}
		p.Magic = token
		return nil
	}

	v, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return &FieldError{Field: field, Token: token, Err: err}
	}
	switch field {
	case FieldWidth:
		p.Width = uint32(v)
	case FieldHeight:
		p.Height = uint32(v)
	case FieldMaxColor:
		p.MaxColor = uint32(v)
	default:
		return errors.Errorf("unknown header field %s", field)
	}
	return nil
}

// readLine returns the next line without its line break. A final line with no line break is
// still returned; io.EOF is only reported once nothing is left.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
