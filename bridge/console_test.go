package bridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Print(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewConsole(out)

	require.NoError(t, c.Print("one", "two"))
	require.NoError(t, c.Print())
	require.NoError(t, c.Print("three"))
	require.NoError(t, c.Sync())

	assert.Equal(t, "one\ntwo\nthree\n", out.String())
}

func TestConsole_NilWriterDiscards(t *testing.T) {
	c := NewConsole(nil)
	assert.NoError(t, c.Print("dropped"))
}
