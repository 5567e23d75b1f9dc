package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encode converts UTF-8 text into the named character set and returns the
// bytes together with the character set's ECI.
func Encode(text, name string) ([]byte, *ECI, error) {
	eci := ECIByName(name)
	if eci == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	data, err := eci.Encode(text)
	if err != nil {
		return nil, nil, err
	}
	return data, eci, nil
}

// Encode converts UTF-8 text into this character set.
func (e *ECI) Encode(text string) ([]byte, error) {
	switch {
	case e == ECIASCII:
		for i := 0; i < len(text); i++ {
			if text[i] >= utf8.RuneSelf {
				return nil, fmt.Errorf("%w in %s: byte %d", ErrUnencodable, e.Name, i)
			}
		}
		return []byte(text), nil
	case e.enc == nil:
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w in %s: invalid UTF-8", ErrUnencodable, e.Name)
		}
		return []byte(text), nil
	}
	data, _, err := transform.Bytes(e.enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrUnencodable, e.Name, err)
	}
	return data, nil
}

// Decode converts bytes in this character set to UTF-8. Undecodable input
// is returned byte for byte.
func (e *ECI) Decode(data []byte) string {
	if e.enc == nil {
		return string(data)
	}
	decoded, _, err := transform.Bytes(e.enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// Decode converts bytes in the named character set to UTF-8. An empty name
// means ISO-8859-1, the default interpretation of barcode byte data.
func Decode(data []byte, name string) string {
	if name == "" {
		return DecodeLatin1(data)
	}
	eci := ECIByName(name)
	if eci == nil {
		return string(data)
	}
	return eci.Decode(data)
}

// DecodeLatin1 decodes ISO-8859-1 bytes.
func DecodeLatin1(data []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(s)
}
