package wasmbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	mem := make(Bytes, 16)
	assert.Equal(t, uint32(16), mem.Size())

	require.NoError(t, mem.Write(12, []byte{1, 2, 3, 4}))
	data, err := mem.Read(12, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	_, err = mem.Read(13, 4)
	assert.Error(t, err)
	assert.Error(t, mem.Write(16, []byte{1}))

	_, err = mem.Read(16, 0)
	assert.NoError(t, err)
}

func TestHeap_Put(t *testing.T) {
	h := NewHeap(0)
	assert.Equal(t, uint32(NullReserve), h.Size())

	a, err := h.Put([]byte{0xaa}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(NullReserve), a)

	b, err := h.Put([]byte{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), b)

	c, err := h.Put([]byte{5}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), c)

	data, err := h.Read(b, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	require.NoError(t, h.Write(a, []byte{0xbb}))
	data, err = h.Read(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbb}, data)
}

func TestHeap_NeverReturnsNull(t *testing.T) {
	h := NewHeap(64)
	for i := 0; i < 4; i++ {
		ptr, err := h.Put(nil, 8)
		require.NoError(t, err)
		assert.NotZero(t, ptr)
	}
}

func TestHeap_Reset(t *testing.T) {
	h := NewHeap(32)
	_, err := h.Put([]byte{1, 2, 3}, 1)
	require.NoError(t, err)

	h.Reset()
	assert.Equal(t, uint32(NullReserve), h.Size())

	ptr, err := h.Put([]byte{9}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(NullReserve), ptr)
}
