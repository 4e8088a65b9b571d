// Package output transcodes extracted UTF-8 text to the requested charset.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for encoding names that cannot be resolved
var ErrUnknownEncoding = errors.New("unknown output encoding")

// aliases covers the names pdftotext users tend to type; anything else goes
// through the IANA registry.
var aliases = map[string]encoding.Encoding{
	"utf-8":        nil,
	"utf8":         nil,
	"ascii7":       ASCII7,
	"ascii":        ASCII7,
	"us-ascii":     ASCII7,
	"latin1":       charmap.ISO8859_1,
	"latin2":       charmap.ISO8859_2,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"macroman":     charmap.Macintosh,
	"koi8-r":       charmap.KOI8R,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
}

// Lookup resolves an encoding name. A nil Encoding means UTF-8 passthrough.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// NewWriter wraps w so UTF-8 written to it reaches w in the named encoding.
// Runes the charset cannot represent are replaced. Close flushes buffered
// output; it does not close w.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nopCloser{w}, nil
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// ASCII7 encodes 7-bit ASCII. Runes above 0x7F become '?'.
var ASCII7 encoding.Encoding = ascii7{}

type ascii7 struct{}

func (ascii7) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: runes.Map(func(r rune) rune {
		if r > 0x7F {
			return '?'
		}
		return r
	})}
}

// NewDecoder passes bytes through; ASCII is valid UTF-8.
func (ascii7) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: transform.Nop}
}
