package source

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNotUTF8 = errors.New("input is not valid UTF-8 or UTF-16 text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file bytes into UTF-8. A UTF-8 BOM is dropped and
// UTF-16 input (detected by its BOM) is transcoded. Line endings are left
// untouched; the linter normalizes them itself and keeps positions exact.
func Decode(raw []byte) ([]byte, FileFlags, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], FileHadBOM, nil
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, 0, err
		}
		return out, FileHadBOM | FileDecodedUTF16, nil
	}
	if !utf8.Valid(raw) {
		return nil, 0, errNotUTF8
	}
	return raw, 0, nil
}
