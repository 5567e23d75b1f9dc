package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECIByValue(t *testing.T) {
	tests := []struct {
		value int
		want  *ECI
	}{
		{0, ECICp437},
		{2, ECICp437},
		{1, ECIISO8859_1},
		{3, ECIISO8859_1},
		{20, ECISJIS},
		{26, ECIUTF8},
		{170, ECIASCII},
		{14, nil},
	}
	for _, tc := range tests {
		got, err := ECIByValue(tc.value)
		require.NoError(t, err)
		assert.Same(t, tc.want, got, "value %d", tc.value)
	}

	_, err := ECIByValue(900)
	assert.ErrorIs(t, err, ErrFormatECI)
	_, err = ECIByValue(-1)
	assert.ErrorIs(t, err, ErrFormatECI)
}

func TestECIByName(t *testing.T) {
	assert.Same(t, ECIUTF8, ECIByName("UTF-8"))
	assert.Same(t, ECIUTF8, ECIByName("utf8"))
	assert.Same(t, ECIISO8859_1, ECIByName("iso-8859-1"))
	assert.Same(t, ECISJIS, ECIByName("Shift_JIS"))
	assert.Same(t, ECIGB18030, ECIByName("GBK"))
	assert.Nil(t, ECIByName("KOI8-R"))
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []byte
	}{
		{"ISO-8859-1", "café", []byte{'c', 'a', 'f', 0xE9}},
		{"UTF-8", "café", []byte("café")},
		{"Shift_JIS", "日本", []byte{0x93, 0xFA, 0x96, 0x7B}},
		{"UTF-16BE", "Az", []byte{0x00, 'A', 0x00, 'z'}},
		{"windows-1251", "Да", []byte{0xC4, 0xE0}},
		{"US-ASCII", "plain", []byte("plain")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, eci, err := Encode(tc.text, tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, data)
			assert.Equal(t, tc.text, eci.Decode(data))
			assert.Equal(t, tc.text, Decode(data, tc.name))
		})
	}
}

func TestEncodeFailures(t *testing.T) {
	_, _, err := Encode("x", "KOI8-R")
	assert.ErrorIs(t, err, ErrUnsupportedCharset)

	_, _, err = Encode("日本", "ISO-8859-1")
	assert.ErrorIs(t, err, ErrUnencodable)

	_, _, err = Encode("café", "US-ASCII")
	assert.ErrorIs(t, err, ErrUnencodable)

	_, _, err = Encode(string([]byte{0xFF}), "UTF-8")
	assert.ErrorIs(t, err, ErrUnencodable)
}

func TestDecodeLatin1Default(t *testing.T) {
	assert.Equal(t, "café", Decode([]byte{'c', 'a', 'f', 0xE9}, ""))
	assert.Equal(t, "abc", Decode([]byte("abc"), "unknown"))
}
