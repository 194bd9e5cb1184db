package layout

import (
	"encoding/binary"
	"unsafe"
)

// Target is the platform a buffer was laid out for.
type Target struct {
	ByteOrder    binary.ByteOrder
	PointerWidth uint32
}

var (
	// Wasm32 is the layout target of WebAssembly guests.
	Wasm32 = Target{ByteOrder: binary.LittleEndian, PointerWidth: 4}
	// LittleEndian64 is the layout target of common 64-bit native hosts.
	LittleEndian64 = Target{ByteOrder: binary.LittleEndian, PointerWidth: 8}
)

// Native returns the target of the running process.
func Native() Target {
	return Target{
		ByteOrder:    nativeByteOrder(),
		PointerWidth: uint32(unsafe.Sizeof(uintptr(0))),
	}
}

func nativeByteOrder() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (t Target) valid() bool {
	return t.ByteOrder != nil && (t.PointerWidth == 4 || t.PointerWidth == 8)
}
