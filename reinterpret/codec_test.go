package reinterpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

type message struct {
	Text    uint64 `layout:"text"`
	Number  int32  `layout:"number"`
	Ignored string
	Skipped int32 `layout:"-"`
}

type taggedPlanes struct {
	X1 float32 `layout:"x1"`
	Y1 float32 `layout:"y1"`
	Z1 float32 `layout:"z1"`
	D1 float32 `layout:"d1"`
	X2 float64 `layout:"x2"`
	Y2 float64 `layout:"y2"`
	Z2 float64 `layout:"z2"`
	D2 float64 `layout:"d2"`
}

func TestEncodeDecode_Message(t *testing.T) {
	shape := layout.Message(layout.Wasm32)
	rec, err := Encode(shape, message{Text: 64, Number: 42, Skipped: 7})
	require.NoError(t, err)

	var out message
	require.NoError(t, rec.Decode(&out))
	assert.Equal(t, uint64(64), out.Text)
	assert.Equal(t, int32(42), out.Number)
	assert.Zero(t, out.Skipped)
}

func TestEncodeDecode_Planes(t *testing.T) {
	in := taggedPlanes{X1: 1, D1: 5, Y2: 1, D2: 3}
	rec, err := Encode(layout.PlanePair(layout.Wasm32), &in)
	require.NoError(t, err)

	var out taggedPlanes
	require.NoError(t, rec.Decode(&out))
	assert.Equal(t, in, out)
}

func TestEncode_Errors(t *testing.T) {
	shape := layout.Message(layout.Wasm32)

	_, err := Encode(shape, 5)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	_, err = Encode(shape, (*message)(nil))
	assert.True(t, errors.IsKind(err, errors.KindNullReference))

	_, err = Encode(shape, struct {
		Other int32 `layout:"other"`
	}{})
	assert.True(t, errors.IsKind(err, errors.KindFieldMissing))

	_, err = Encode(shape, struct {
		Number float32 `layout:"number"`
	}{})
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	_, err = Encode(shape, struct {
		Number int64 `layout:"number"`
	}{Number: 1 << 40})
	assert.True(t, errors.IsKind(err, errors.KindInvalidData))

	_, err = Encode(shape, struct {
		Text uint64 `layout:"text"`
	}{Text: 1 << 40})
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))
}

func TestDecode_Errors(t *testing.T) {
	rec := NewRecord(layout.Message(layout.Wasm32))
	require.NoError(t, rec.SetInt32(layout.MessageNumber, 300))

	var m message
	assert.True(t, errors.IsKind(rec.Decode(m), errors.KindTypeMismatch))
	assert.True(t, errors.IsKind(rec.Decode((*message)(nil)), errors.KindTypeMismatch))

	n := 3
	assert.True(t, errors.IsKind(rec.Decode(&n), errors.KindTypeMismatch))

	var narrow struct {
		Number int8 `layout:"number"`
	}
	assert.True(t, errors.IsKind(rec.Decode(&narrow), errors.KindTypeMismatch))

	var wrongType struct {
		Number string `layout:"number"`
	}
	assert.True(t, errors.IsKind(rec.Decode(&wrongType), errors.KindTypeMismatch))

	var unknown struct {
		Z int32 `layout:"z"`
	}
	assert.True(t, errors.IsKind(rec.Decode(&unknown), errors.KindFieldMissing))

	var wide struct {
		Number int64 `layout:"number"`
	}
	require.NoError(t, rec.Decode(&wide))
	assert.Equal(t, int64(300), wide.Number)
}
