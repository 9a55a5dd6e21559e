// Package encoding provides text helpers for names coming out of table files.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Windows1252ToUTF8 converts Windows-1252 encoded bytes to a UTF-8 string.
// Returns the input unchanged if conversion fails.
func Windows1252ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// FixName returns s unchanged when it is valid UTF-8 and otherwise decodes it
// as Windows-1252, the code page older table editors wrote names in.
func FixName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return Windows1252ToUTF8([]byte(s))
}

// NormalizeName folds a name for case-insensitive lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TrimNullString removes everything from the first null byte on and decodes
// the rest.
func TrimNullString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return FixName(string(data))
}
