package reinterpret

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wasmbridge "github.com/wippyai/wasm-bridge"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

func putMessage(t *testing.T, heap *wasmbridge.Heap, target layout.Target, text uint64, number int32) uint32 {
	t.Helper()
	rec := NewRecord(layout.Message(target))
	require.NoError(t, rec.SetPointer(layout.MessageText, text))
	require.NoError(t, rec.SetInt32(layout.MessageNumber, number))
	ptr, err := heap.Put(rec.Bytes(), 4)
	require.NoError(t, err)
	return ptr
}

func TestReinterpret_Message(t *testing.T) {
	for _, target := range []layout.Target{layout.Wasm32, layout.LittleEndian64} {
		heap := wasmbridge.NewHeap(64)
		shape := layout.Message(target)
		ptr := putMessage(t, heap, target, 0x1234, -7)

		rec, err := Reinterpret(heap, ptr, int32(shape.Size()), shape)
		require.NoError(t, err)

		text, err := rec.Pointer(layout.MessageText)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x1234), text)

		number, err := rec.Int32(layout.MessageNumber)
		require.NoError(t, err)
		assert.Equal(t, int32(-7), number)
	}
}

func TestReinterpret_Undersized(t *testing.T) {
	heap := wasmbridge.NewHeap(64)
	shape := layout.Message(layout.Wasm32)
	ptr := putMessage(t, heap, layout.Wasm32, 16, 1)

	for _, length := range []int32{-1, 0, 1, int32(shape.Size()) - 1} {
		_, err := Reinterpret(heap, ptr, length, shape)
		require.Error(t, err)

		size, ok := errors.RequiredSize(err)
		require.True(t, ok, "length %d", length)
		assert.Equal(t, shape.Size(), size)
	}
}

func TestReinterpret_UndersizedBeforeNullCheck(t *testing.T) {
	shape := layout.PlanePair(layout.Wasm32)
	_, err := Reinterpret(nil, 0, 4, shape)
	size, ok := errors.RequiredSize(err)
	require.True(t, ok)
	assert.Equal(t, uint32(32), size)
}

func TestReinterpret_TrailingBytesIgnored(t *testing.T) {
	heap := wasmbridge.NewHeap(64)
	shape := layout.Message(layout.Wasm32)
	ptr := putMessage(t, heap, layout.Wasm32, 40, 99)
	_, err := heap.Put([]byte{0xff, 0xff, 0xff, 0xff}, 1)
	require.NoError(t, err)

	rec, err := Reinterpret(heap, ptr, int32(shape.Size())+4, shape)
	require.NoError(t, err)
	assert.Len(t, rec.Bytes(), int(shape.Size()))

	n, err := rec.Int32(layout.MessageNumber)
	require.NoError(t, err)
	assert.Equal(t, int32(99), n)
}

func TestReinterpret_NullPointer(t *testing.T) {
	shape := layout.Message(layout.Wasm32)
	_, err := Reinterpret(wasmbridge.NewHeap(16), 0, int32(shape.Size()), shape)
	assert.True(t, errors.IsKind(err, errors.KindNullReference))
}

func TestReinterpret_OutOfBounds(t *testing.T) {
	mem := make(wasmbridge.Bytes, 16)
	shape := layout.PlanePair(layout.Wasm32)

	_, err := Reinterpret(mem, 8, int32(shape.Size()), shape)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))

	_, err = Reinterpret(mem, math.MaxUint32, int32(shape.Size()), shape)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))
}

func TestReinterpret_NilInputs(t *testing.T) {
	shape := layout.Message(layout.Wasm32)
	_, err := Reinterpret(nil, 8, 8, shape)
	assert.True(t, errors.IsKind(err, errors.KindNotInitialized))

	_, err = Reinterpret(make(wasmbridge.Bytes, 16), 8, 8, nil)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
}

func TestReinterpret_DoesNotMutateOrAlias(t *testing.T) {
	mem := make(wasmbridge.Bytes, 64)
	shape := layout.PlanePair(layout.Wasm32)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(mem[8+i*4:], math.Float32bits(float32(i)))
	}
	before := append([]byte(nil), mem...)

	rec, err := Reinterpret(mem, 8, 32, shape)
	require.NoError(t, err)
	assert.Equal(t, before, []byte(mem))

	// Record is a copy: later changes to the caller buffer do not leak in.
	binary.LittleEndian.PutUint32(mem[8:], math.Float32bits(42))
	x1, err := rec.Float32(layout.PlaneX1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), x1)

	d2, err := rec.Float32(layout.PlaneD2)
	require.NoError(t, err)
	assert.Equal(t, float32(7), d2)
}

func TestReinterpret_BigEndianTarget(t *testing.T) {
	target := layout.Target{ByteOrder: binary.BigEndian, PointerWidth: 4}
	shape := layout.Message(target)

	mem := make(wasmbridge.Bytes, 32)
	copy(mem[8:], []byte{0, 0, 0, 0x10, 0xff, 0xff, 0xff, 0xfe})

	rec, err := Reinterpret(mem, 8, 8, shape)
	require.NoError(t, err)

	text, err := rec.Pointer(layout.MessageText)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x10), text)

	n, err := rec.Int32(layout.MessageNumber)
	require.NoError(t, err)
	assert.Equal(t, int32(-2), n)
}
