package wasmbridge

// Memory is a read-only view of the caller's address space.
// For WebAssembly guests this is linear memory; for Go callers it is a Bytes
// or Heap value standing in for a native address space.
type Memory interface {
	// Read returns length bytes starting at offset. The returned slice may
	// alias the underlying memory and is only valid until the call returns.
	Read(offset uint32, length uint32) ([]byte, error)
	// Size returns the current size of the address space in bytes.
	Size() uint32
}

// Writer is implemented by memories that let the caller place data.
// The bridge itself never writes caller buffers.
type Writer interface {
	Write(offset uint32, data []byte) error
}

// WritableMemory is a Memory the caller can also write into.
type WritableMemory interface {
	Memory
	Writer
}
