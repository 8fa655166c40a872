package timesheet

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodingReader wraps r so that a UTF-8 or UTF-16 byte-order mark is
// honoured and stripped. Input without a BOM is read as UTF-8; invalid
// sequences become U+FFFD.
func decodingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
