package guest

import "bytes"

// writer accumulates wasm binary encoding.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) raw(data []byte) {
	w.buf.Write(data)
}

// u32 writes an unsigned LEB128 encoded uint32.
func (w *writer) u32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// name writes a length-prefixed UTF-8 string.
func (w *writer) name(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
}

// section writes a section with its size prefix.
func (w *writer) section(id byte, body *writer) {
	w.byte(id)
	w.u32(uint32(body.buf.Len()))
	w.raw(body.buf.Bytes())
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}
