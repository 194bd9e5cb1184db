package text

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-bridge/errors"
)

func TestWideCharPlatform(t *testing.T) {
	assert.True(t, WideCharPlatform("windows"))
	for _, goos := range []string{"linux", "darwin", "freebsd", "wasip1", "js", ""} {
		assert.False(t, WideCharPlatform(goos), goos)
	}
}

func TestForPlatform(t *testing.T) {
	assert.Equal(t, UTF16, ForPlatform("windows"))
	assert.Equal(t, UTF8, ForPlatform("linux"))
	assert.Equal(t, ForPlatform(runtime.GOOS), Native())
}

func TestUTF16For(t *testing.T) {
	assert.Equal(t, UTF16, UTF16For(binary.LittleEndian))
	assert.Equal(t, UTF16BE, UTF16For(binary.BigEndian))
}

func TestEncode_Terminated(t *testing.T) {
	b, err := UTF8.Encode("ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0}, b)

	b, err = UTF16.Encode("ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0, 'b', 0, 0, 0}, b)

	b, err = UTF16BE.Encode("a")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 'a', 0, 0}, b)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", nil},
		{"auto", nil},
		{" AUTO ", nil},
		{"utf8", UTF8},
		{"UTF-8", UTF8},
		{"utf16", UTF16},
		{"utf-16le", UTF16},
		{"wide", UTF16},
		{"utf-16be", UTF16BE},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("latin1")
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
}
