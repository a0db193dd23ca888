package attendance

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingCP1252  = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts a device export to UTF-8 text. A byte-order mark selects
// UTF-8 or UTF-16; BOM-less input that is not valid UTF-8 is read as
// Windows-1252, the usual code page of terminal export software.
func Decode(data []byte) (string, string, error) {
	var name string
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		name = EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		name = EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		name = EncodingUTF16BE
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", fmt.Errorf("%s decode failed: %w", EncodingCP1252, err)
		}
		return string(out), EncodingCP1252, nil
	}

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", "", fmt.Errorf("%s decode failed: %w", name, err)
	}
	return string(out), name, nil
}
