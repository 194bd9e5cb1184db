// Package host exposes a Bridge to WebAssembly guests as a wazero host
// module.
//
// Guests import the entry points by name from the host module (default
// "bridge") and pass wasm32 pointers into their own linear memory:
//
//	(import "bridge" "hello"               (func (param i32 i32) (result i32)))
//	(import "bridge" "multiply"            (func (param i32 i32) (result i32)))
//	(import "bridge" "dot_product"         (func (param i32 i32) (result i32)))
//	(import "bridge" "dot_product_checked" (func (param i32 i32 i32) (result i32)))
package host

import (
	"context"
	"encoding/binary"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bridge/bridge"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/internal/memory"
)

// DefaultModuleName is the import module guests link the bridge under.
const DefaultModuleName = "bridge"

// Export names.
const (
	FuncHello             = "hello"
	FuncMultiply          = "multiply"
	FuncDotProduct        = "dot_product"
	FuncDotProductChecked = "dot_product_checked"
)

// FuncDef is one exported host function.
type FuncDef struct {
	Name        string
	Handler     api.GoModuleFunc
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
}

// Module builds the bridge host module.
type Module struct {
	bridge *bridge.Bridge
	name   string
	funcs  []FuncDef
}

// New creates a host module for b. An empty name selects DefaultModuleName.
func New(b *bridge.Bridge, name string) (*Module, error) {
	if b == nil {
		return nil, errors.NotInitialized(errors.PhaseHost, "bridge")
	}
	if name == "" {
		name = DefaultModuleName
	}
	if target := b.Target(); target.PointerWidth != 4 || target.ByteOrder != binary.LittleEndian {
		return nil, errors.Unsupported(errors.PhaseHost, "host module requires the wasm32 layout target")
	}

	m := &Module{bridge: b, name: name}
	i32 := api.ValueTypeI32
	m.funcs = []FuncDef{
		{FuncHello, m.hello, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{FuncMultiply, m.multiply, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{FuncDotProduct, m.dotProduct, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{FuncDotProductChecked, m.dotProductChecked, []api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	}
	return m, nil
}

// Name returns the import module name.
func (m *Module) Name() string { return m.name }

// Bridge returns the bridge the handlers dispatch to.
func (m *Module) Bridge() *bridge.Bridge { return m.bridge }

// Funcs returns the exported function definitions.
func (m *Module) Funcs() []FuncDef {
	out := make([]FuncDef, len(m.funcs))
	copy(out, m.funcs)
	return out
}

// Func returns the definition exported as name.
func (m *Module) Func(name string) (FuncDef, bool) {
	for _, f := range m.funcs {
		if f.Name == name {
			return f, true
		}
	}
	return FuncDef{}, false
}

// Instantiate registers the module with rt.
func (m *Module) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	if rt.Module(m.name) != nil {
		return nil, errors.New(errors.PhaseHost, errors.KindRegistration).
			Detail("module %q already instantiated", m.name).
			Build()
	}

	builder := rt.NewHostModuleBuilder(m.name)
	for _, f := range m.funcs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.Handler, f.ParamTypes, f.ResultTypes).
			WithName(f.Name).
			Export(f.Name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(m.name, "*", err)
	}
	Logger().Debug("host module instantiated",
		zap.String("module", m.name),
		zap.Int("funcs", len(m.funcs)))
	return mod, nil
}

func (m *Module) hello(_ context.Context, mod api.Module, stack []uint64) {
	mem := memory.Wrap(mod.Memory())
	if mem == nil {
		stack[0] = api.EncodeI32(noMemory(mod, FuncHello))
		return
	}
	stack[0] = api.EncodeI32(m.bridge.Hello(mem, api.DecodeU32(stack[0]), api.DecodeI32(stack[1])))
}

func (m *Module) multiply(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(m.bridge.Multiply(api.DecodeI32(stack[0]), api.DecodeI32(stack[1])))
}

func (m *Module) dotProduct(_ context.Context, mod api.Module, stack []uint64) {
	mem := memory.Wrap(mod.Memory())
	if mem == nil {
		stack[0] = api.EncodeI32(noMemory(mod, FuncDotProduct))
		return
	}
	stack[0] = api.EncodeI32(m.bridge.DotProduct(mem, api.DecodeU32(stack[0]), api.DecodeI32(stack[1])))
}

// dotProductChecked stores the result at out only on success.
func (m *Module) dotProductChecked(_ context.Context, mod api.Module, stack []uint64) {
	mem := memory.Wrap(mod.Memory())
	if mem == nil {
		stack[0] = api.EncodeI32(noMemory(mod, FuncDotProductChecked))
		return
	}
	ptr, length, out := api.DecodeU32(stack[0]), api.DecodeI32(stack[1]), api.DecodeU32(stack[2])

	if out == 0 {
		stack[0] = api.EncodeI32(bridge.StatusNullReference)
		return
	}
	// Validate the slot before computing so a bad slot never hides behind
	// a successful read.
	if _, err := mem.ReadU32(out); err != nil {
		stack[0] = api.EncodeI32(bridge.StatusOutOfBounds)
		return
	}

	result, status := m.bridge.DotProductChecked(mem, ptr, length)
	if status == bridge.StatusOK {
		if err := mem.WriteU32(out, uint32(result)); err != nil {
			status = bridge.StatusOutOfBounds
		}
	}
	stack[0] = api.EncodeI32(status)
}

func noMemory(mod api.Module, fn string) int32 {
	Logger().Warn("caller exports no memory",
		zap.String("caller", mod.Name()),
		zap.String("func", fn))
	return bridge.StatusFailed
}
