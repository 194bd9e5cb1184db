package wasmbridge

import (
	"fmt"
	"math"
)

// NullReserve is the number of bytes at the start of a Heap that are never
// handed out, so that offset 0 always reads as a null reference.
const NullReserve = 8

// Bytes is a flat memory backed by a byte slice. Offsets index the slice
// directly.
type Bytes []byte

// Read returns a view of length bytes at offset.
func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b)) {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return b[offset:end], nil
}

// Write copies data into the memory at offset.
func (b Bytes) Write(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(b)) {
		return fmt.Errorf("memory write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	copy(b[offset:], data)
	return nil
}

// Size returns the length of the memory.
func (b Bytes) Size() uint32 {
	if len(b) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(b))
}

// Heap is a growable flat memory with a bump allocator. It models a native
// address space for Go callers that want to hand the bridge pointers.
// Heap is not safe for concurrent mutation; concurrent reads are fine.
type Heap struct {
	data Bytes
}

// NewHeap creates a heap with the given initial capacity.
func NewHeap(capacity int) *Heap {
	if capacity < NullReserve {
		capacity = NullReserve
	}
	data := make(Bytes, NullReserve, capacity)
	return &Heap{data: data}
}

// Put copies data into the heap at the next offset aligned to align and
// returns that offset. The returned offset is never 0.
func (h *Heap) Put(data []byte, align uint32) (uint32, error) {
	if align == 0 {
		align = 1
	}
	start := alignTo(uint64(len(h.data)), uint64(align))
	end := start + uint64(len(data))
	if end > math.MaxUint32 {
		return 0, fmt.Errorf("heap exhausted: need %d bytes", end)
	}
	for uint64(len(h.data)) < start {
		h.data = append(h.data, 0)
	}
	h.data = append(h.data, data...)
	return uint32(start), nil
}

// Read implements Memory.
func (h *Heap) Read(offset uint32, length uint32) ([]byte, error) {
	return h.data.Read(offset, length)
}

// Write implements Writer.
func (h *Heap) Write(offset uint32, data []byte) error {
	return h.data.Write(offset, data)
}

// Size implements Memory.
func (h *Heap) Size() uint32 {
	return h.data.Size()
}

// Reset discards all allocations.
func (h *Heap) Reset() {
	clear(h.data[:NullReserve])
	h.data = h.data[:NullReserve]
}

func alignTo(v, align uint64) uint64 {
	return (v + align - 1) / align * align
}
