// Package guest emits minimal trampoline guest modules.
//
// A trampoline imports a set of host functions and re-exports each one under
// the same name through a forwarding function, together with a linear memory.
// Callers write records into the exported memory and invoke the exports, so
// host functions receive pointers into a real guest memory.
package guest

import (
	"slices"

	"github.com/tetratelabs/wazero/api"
)

const (
	sectionType     byte = 1
	sectionImport   byte = 2
	sectionFunction byte = 3
	sectionMemory   byte = 5
	sectionExport   byte = 7
	sectionCode     byte = 10

	externFunc   byte = 0x00
	externMemory byte = 0x02

	opLocalGet byte = 0x20
	opCall     byte = 0x10
	opEnd      byte = 0x0b

	funcTypeForm byte = 0x60
)

// MemoryName is the export name of the trampoline's memory.
const MemoryName = "memory"

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// Func is a host function the trampoline imports and forwards.
type Func struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// Trampoline returns a module that imports funcs from module and exports a
// forwarding function for each, plus a memory of pages 64 KiB pages.
func Trampoline(module string, funcs []Func, pages uint32) []byte {
	if pages == 0 {
		pages = 1
	}

	// Deduplicate signatures.
	var types [][2][]api.ValueType
	typeIdx := make([]uint32, len(funcs))
	for i, f := range funcs {
		idx := -1
		for j, t := range types {
			if slices.Equal(t[0], f.Params) && slices.Equal(t[1], f.Results) {
				idx = j
				break
			}
		}
		if idx < 0 {
			idx = len(types)
			types = append(types, [2][]api.ValueType{f.Params, f.Results})
		}
		typeIdx[i] = uint32(idx)
	}

	var out writer
	out.raw(header)

	var sec writer
	sec.u32(uint32(len(types)))
	for _, t := range types {
		sec.byte(funcTypeForm)
		valueTypes(&sec, t[0])
		valueTypes(&sec, t[1])
	}
	out.section(sectionType, &sec)

	sec = writer{}
	sec.u32(uint32(len(funcs)))
	for i, f := range funcs {
		sec.name(module)
		sec.name(f.Name)
		sec.byte(externFunc)
		sec.u32(typeIdx[i])
	}
	out.section(sectionImport, &sec)

	sec = writer{}
	sec.u32(uint32(len(funcs)))
	for i := range funcs {
		sec.u32(typeIdx[i])
	}
	out.section(sectionFunction, &sec)

	sec = writer{}
	sec.u32(1)
	sec.byte(0x00) // min only
	sec.u32(pages)
	out.section(sectionMemory, &sec)

	// Imported functions occupy indices [0, n), forwarders [n, 2n).
	n := uint32(len(funcs))
	sec = writer{}
	sec.u32(n + 1)
	sec.name(MemoryName)
	sec.byte(externMemory)
	sec.u32(0)
	for i, f := range funcs {
		sec.name(f.Name)
		sec.byte(externFunc)
		sec.u32(n + uint32(i))
	}
	out.section(sectionExport, &sec)

	sec = writer{}
	sec.u32(n)
	for i, f := range funcs {
		var body writer
		body.u32(0) // no locals
		for p := range f.Params {
			body.byte(opLocalGet)
			body.u32(uint32(p))
		}
		body.byte(opCall)
		body.u32(uint32(i))
		body.byte(opEnd)

		sec.u32(uint32(body.buf.Len()))
		sec.raw(body.bytes())
	}
	out.section(sectionCode, &sec)

	return out.bytes()
}

func valueTypes(w *writer, vts []api.ValueType) {
	w.u32(uint32(len(vts)))
	for _, vt := range vts {
		w.byte(vt)
	}
}
