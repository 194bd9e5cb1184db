package reinterpret

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

func allKinds(t *testing.T) *layout.Shape {
	t.Helper()
	s, err := layout.New("all", layout.LittleEndian64,
		layout.Field{Name: "i32", Kind: layout.KindI32},
		layout.Field{Name: "u32", Kind: layout.KindU32},
		layout.Field{Name: "i64", Kind: layout.KindI64},
		layout.Field{Name: "u64", Kind: layout.KindU64},
		layout.Field{Name: "f32", Kind: layout.KindF32},
		layout.Field{Name: "f64", Kind: layout.KindF64},
		layout.Field{Name: "ptr", Kind: layout.KindPointer},
	)
	require.NoError(t, err)
	return s
}

func TestRecord_SetGet(t *testing.T) {
	rec := NewRecord(allKinds(t))

	require.NoError(t, rec.SetInt32("i32", math.MinInt32))
	require.NoError(t, rec.SetUint32("u32", math.MaxUint32))
	require.NoError(t, rec.SetInt64("i64", -1))
	require.NoError(t, rec.SetUint64("u64", math.MaxUint64))
	require.NoError(t, rec.SetFloat32("f32", 1.5))
	require.NoError(t, rec.SetFloat64("f64", -2.25))
	require.NoError(t, rec.SetPointer("ptr", 1<<40))

	i32, _ := rec.Int32("i32")
	u32, _ := rec.Uint32("u32")
	i64, _ := rec.Int64("i64")
	u64, _ := rec.Uint64("u64")
	f32, _ := rec.Float32("f32")
	f64, _ := rec.Float64("f64")
	ptr, _ := rec.Pointer("ptr")

	assert.Equal(t, int32(math.MinInt32), i32)
	assert.Equal(t, uint32(math.MaxUint32), u32)
	assert.Equal(t, int64(-1), i64)
	assert.Equal(t, uint64(math.MaxUint64), u64)
	assert.Equal(t, float32(1.5), f32)
	assert.Equal(t, -2.25, f64)
	assert.Equal(t, uint64(1<<40), ptr)
}

func TestRecord_Value(t *testing.T) {
	rec := NewRecord(allKinds(t))
	require.NoError(t, rec.SetInt32("i32", 3))
	require.NoError(t, rec.SetPointer("ptr", 9))

	v, err := rec.Value("i32")
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)

	v, err = rec.Value("ptr")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)

	_, err = rec.Value("nope")
	assert.True(t, errors.IsKind(err, errors.KindFieldMissing))
}

func TestRecord_WrongKind(t *testing.T) {
	rec := NewRecord(layout.Message(layout.Wasm32))

	_, err := rec.Float32(layout.MessageNumber)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	_, err = rec.Int32(layout.MessageText)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	err = rec.SetFloat64(layout.MessageNumber, 1)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	_, err = rec.Int32("missing")
	assert.True(t, errors.IsKind(err, errors.KindFieldMissing))
}

func TestRecord_PointerOverflow(t *testing.T) {
	rec := NewRecord(layout.Message(layout.Wasm32))
	err := rec.SetPointer(layout.MessageText, math.MaxUint32+1)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))

	require.NoError(t, rec.SetPointer(layout.MessageText, math.MaxUint32))
}

func TestRecord_BytesIsCopy(t *testing.T) {
	rec := NewRecord(layout.Message(layout.Wasm32))
	require.NoError(t, rec.SetInt32(layout.MessageNumber, 5))

	b := rec.Bytes()
	b[4] = 0xff

	n, err := rec.Int32(layout.MessageNumber)
	require.NoError(t, err)
	assert.Equal(t, int32(5), n)
	assert.Same(t, rec.Shape(), rec.Shape())
}
