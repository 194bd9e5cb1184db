package layout

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-bridge/errors"
)

func TestMessage_Layout(t *testing.T) {
	tests := []struct {
		name       string
		target     Target
		size       uint32
		numberOffs uint32
	}{
		{"wasm32", Wasm32, 8, 4},
		{"le64", LittleEndian64, 12, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Message(tt.target)
			assert.Equal(t, "message", s.Name())
			assert.Equal(t, tt.size, s.Size())
			require.Equal(t, 2, s.Len())

			text, ok := s.Field(MessageText)
			require.True(t, ok)
			assert.Equal(t, uint32(0), text.Offset)
			assert.Equal(t, tt.target.PointerWidth, text.Width)
			assert.Equal(t, KindPointer, text.Kind)

			number, ok := s.Field(MessageNumber)
			require.True(t, ok)
			assert.Equal(t, tt.numberOffs, number.Offset)
			assert.Equal(t, uint32(4), number.Width)
		})
	}
}

func TestPlanePair_Layout(t *testing.T) {
	s := PlanePair(Wasm32)
	assert.Equal(t, uint32(32), s.Size())

	names := []string{PlaneX1, PlaneY1, PlaneZ1, PlaneD1, PlaneX2, PlaneY2, PlaneZ2, PlaneD2}
	for i, f := range s.Fields() {
		assert.Equal(t, names[i], f.Name)
		assert.Equal(t, uint32(i*4), f.Offset)
		assert.Equal(t, KindF32, f.Kind)
	}

	// Pointer width does not affect a pointer-free shape.
	assert.Equal(t, s.Size(), PlanePair(LittleEndian64).Size())
}

func TestShape_SizeIsSumOfWidths(t *testing.T) {
	s, err := New("mixed", LittleEndian64,
		Field{Name: "a", Kind: KindI32},
		Field{Name: "b", Kind: KindF64},
		Field{Name: "c", Kind: KindPointer},
		Field{Name: "d", Kind: KindU32},
		Field{Name: "e", Kind: KindI64},
	)
	require.NoError(t, err)

	var sum uint32
	for _, f := range s.Fields() {
		assert.Equal(t, sum, f.Offset, "field %s must follow its predecessor without padding", f.Name)
		sum += f.Width
	}
	assert.Equal(t, uint32(4+8+8+4+8), sum)
	assert.Equal(t, sum, s.Size())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		shape  string
		target Target
		fields []Field
	}{
		{"empty name", "", Wasm32, []Field{{Name: "a", Kind: KindI32}}},
		{"no fields", "s", Wasm32, nil},
		{"unnamed field", "s", Wasm32, []Field{{Kind: KindI32}}},
		{"unknown kind", "s", Wasm32, []Field{{Name: "a", Kind: Kind(99)}}},
		{"zero kind", "s", Wasm32, []Field{{Name: "a"}}},
		{"duplicate", "s", Wasm32, []Field{{Name: "a", Kind: KindI32}, {Name: "a", Kind: KindF32}}},
		{"bad pointer width", "s", Target{ByteOrder: binary.LittleEndian, PointerWidth: 2}, []Field{{Name: "a", Kind: KindI32}}},
		{"nil byte order", "s", Target{PointerWidth: 4}, []Field{{Name: "a", Kind: KindI32}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shape, tt.target, tt.fields...)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindInvalidSchema))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("s", Wasm32) })
}

func TestShape_FieldsIsCopy(t *testing.T) {
	s := Message(Wasm32)
	fields := s.Fields()
	fields[0].Offset = 99

	f, _ := s.Field(MessageText)
	assert.Equal(t, uint32(0), f.Offset)
	assert.Equal(t, uint32(0), s.At(0).Offset)
}

func TestShape_UnknownField(t *testing.T) {
	_, ok := Message(Wasm32).Field("missing")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "i32", KindI32.String())
	assert.Equal(t, "pointer", KindPointer.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, "unknown", Kind(200).String())
}

func TestNative(t *testing.T) {
	n := Native()
	assert.Contains(t, []uint32{4, 8}, n.PointerWidth)
	assert.NotNil(t, n.ByteOrder)
	assert.True(t, n.valid())
}

func TestShape_WIT(t *testing.T) {
	td := Message(Wasm32).WIT()
	require.NotNil(t, td.Name)
	assert.Equal(t, "message", *td.Name)

	rec, ok := td.Kind.(*wit.Record)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	assert.IsType(t, wit.U32{}, rec.Fields[0].Type)
	assert.IsType(t, wit.S32{}, rec.Fields[1].Type)

	rec64 := Message(LittleEndian64).WIT().Kind.(*wit.Record)
	assert.IsType(t, wit.U64{}, rec64.Fields[0].Type)
}

func TestShape_Describe(t *testing.T) {
	out := Message(Wasm32).Describe()
	assert.Contains(t, out, "record message { // 8 bytes")
	assert.Contains(t, out, "text: u32, // @0 pointer")
	assert.Contains(t, out, "number: s32, // @4")

	assert.Contains(t, PlanePair(Wasm32).Describe(), "d2: f32, // @28")
}
