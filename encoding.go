package safejson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// errInvalidUTF8 reports store content that is not valid UTF-8.
var errInvalidUTF8 = errors.New("invalid UTF-8 byte sequence")

// lookupEncoding resolves an IANA charset name. UTF-8 spellings and
// the empty string return a nil encoding, meaning no transcoding.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// decodeText converts raw bytes from the store encoding to UTF-8.
// Content already expected in UTF-8 is validated instead of converted.
func (s *Store) decodeText(raw []byte) ([]byte, error) {
	if s.enc == nil {
		if !utf8.Valid(raw) {
			return nil, errInvalidUTF8
		}
		return raw, nil
	}
	out, _, err := transform.Bytes(s.enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.encoding, err)
	}
	return out, nil
}

// decodeReader mirrors decodeText for a stream: content in the store
// encoding is transcoded to UTF-8 as it is read, content already
// expected in UTF-8 is validated as it is read.
func (s *Store) decodeReader(r io.Reader) io.Reader {
	if s.enc == nil {
		return &utf8Reader{r: r}
	}
	return transform.NewReader(r, s.enc.NewDecoder())
}

// utf8Reader passes its stream through unchanged and fails with
// errInvalidUTF8 at the first byte sequence that is not valid UTF-8. A
// multibyte rune split across reads is checked once its remaining
// bytes arrive; a stream ending inside one is invalid.
type utf8Reader struct {
	r     io.Reader
	carry []byte
}

func (u *utf8Reader) Read(p []byte) (int, error) {
	n, err := u.r.Read(p)
	atEOF := errors.Is(err, io.EOF)
	if n > 0 {
		if verr := u.check(p[:n], atEOF); verr != nil {
			return 0, verr
		}
	}
	if atEOF && len(u.carry) > 0 {
		return n, errInvalidUTF8
	}
	return n, err
}

func (u *utf8Reader) check(chunk []byte, atEOF bool) error {
	b := chunk
	if len(u.carry) > 0 {
		b = append(u.carry, chunk...)
	}
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(b[i:]) {
				u.carry = append([]byte(nil), b[i:]...)
				return nil
			}
			return errInvalidUTF8
		}
		i += size
	}
	u.carry = nil
	return nil
}

// encodeText converts UTF-8 bytes to the store encoding.
func (s *Store) encodeText(raw []byte) ([]byte, error) {
	if s.enc == nil {
		return raw, nil
	}
	out, _, err := transform.Bytes(s.enc.NewEncoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.encoding, err)
	}
	return out, nil
}

// escapeNonASCII rewrites every rune above U+007F as a \uXXXX escape
// (a surrogate pair above the BMP). Safe to run on serialized JSON:
// the encoder only emits multibyte runes inside string literals.
func escapeNonASCII(raw []byte) []byte {
	if isASCII(raw) {
		return raw
	}
	var buf bytes.Buffer
	buf.Grow(len(raw) + len(raw)/2)
	for i := 0; i < len(raw); {
		if raw[i] < utf8.RuneSelf {
			buf.WriteByte(raw[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(raw[i:])
		if r <= 0xFFFF {
			fmt.Fprintf(&buf, `\u%04x`, r)
		} else {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, hi, lo)
		}
		i += size
	}
	return buf.Bytes()
}

func isASCII(raw []byte) bool {
	for _, b := range raw {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
