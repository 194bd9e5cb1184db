package runtime

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/api"

	wasmbridge "github.com/wippyai/wasm-bridge"
	"github.com/wippyai/wasm-bridge/bridge"
	"github.com/wippyai/wasm-bridge/compute"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/host"
	"github.com/wippyai/wasm-bridge/internal/guest"
	"github.com/wippyai/wasm-bridge/internal/memory"
	"github.com/wippyai/wasm-bridge/layout"
	"github.com/wippyai/wasm-bridge/reinterpret"
)

// Caller invokes the bridge entry points from Go through a trampoline
// guest, so every call crosses the same boundary a foreign guest uses.
// A Caller is not safe for concurrent use.
type Caller struct {
	inst   *Instance
	mem    *memory.Wrapper
	bridge *bridge.Bridge
	next   uint32
}

// Caller instantiates a trampoline guest that forwards to the host module.
func (r *Runtime) Caller(ctx context.Context) (*Caller, error) {
	defs := r.host.Funcs()
	funcs := make([]guest.Func, len(defs))
	for i, d := range defs {
		funcs[i] = guest.Func{Name: d.Name, Params: d.ParamTypes, Results: d.ResultTypes}
	}

	mod, err := r.Load(ctx, guest.Trampoline(r.host.Name(), funcs, 1))
	if err != nil {
		return nil, err
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	return &Caller{
		inst:   inst,
		mem:    inst.Memory(),
		bridge: r.Bridge(),
		next:   wasmbridge.NullReserve,
	}, nil
}

// Memory exposes the trampoline's memory for callers that lay out their own
// buffers.
func (c *Caller) Memory() *memory.Wrapper { return c.mem }

// Hello writes a message record and calls hello. It returns the status.
func (c *Caller) Hello(ctx context.Context, msg string, number int32) (int32, error) {
	c.reset()
	ptr, size, err := c.PutMessage(msg, number)
	if err != nil {
		return 0, err
	}
	return c.HelloAt(ctx, ptr, int32(size))
}

// HelloAt calls hello with a raw pointer and length.
func (c *Caller) HelloAt(ctx context.Context, ptr uint32, length int32) (int32, error) {
	return c.call(ctx, host.FuncHello, uint64(ptr), api.EncodeI32(length))
}

// Multiply calls multiply.
func (c *Caller) Multiply(ctx context.Context, x, y int32) (int32, error) {
	return c.call(ctx, host.FuncMultiply, api.EncodeI32(x), api.EncodeI32(y))
}

// DotProduct writes a plane-pair record and calls dot_product.
func (c *Caller) DotProduct(ctx context.Context, pp compute.PlanePair) (int32, error) {
	c.reset()
	ptr, size, err := c.PutPlanes(pp)
	if err != nil {
		return 0, err
	}
	return c.call(ctx, host.FuncDotProduct, uint64(ptr), uint64(size))
}

// DotProductChecked calls dot_product_checked and returns the result and
// status. The result is only meaningful when status is bridge.StatusOK.
func (c *Caller) DotProductChecked(ctx context.Context, pp compute.PlanePair) (int32, int32, error) {
	c.reset()
	ptr, size, err := c.PutPlanes(pp)
	if err != nil {
		return 0, 0, err
	}
	out, err := c.put(make([]byte, 4), 4)
	if err != nil {
		return 0, 0, err
	}
	status, err := c.call(ctx, host.FuncDotProductChecked, uint64(ptr), uint64(size), uint64(out))
	if err != nil || status != bridge.StatusOK {
		return 0, status, err
	}
	v, err := c.mem.ReadU32(out)
	if err != nil {
		return 0, 0, err
	}
	return int32(v), status, nil
}

// PutMessage writes msg in the decoder's encoding followed by a message
// record referencing it. It returns the record's pointer and size.
func (c *Caller) PutMessage(msg string, number int32) (uint32, uint32, error) {
	strategy := c.bridge.Decoder().Strategy()
	data, err := strategy.Encode(msg)
	if err != nil {
		return 0, 0, err
	}
	textPtr, err := c.put(data, strategy.UnitSize())
	if err != nil {
		return 0, 0, err
	}

	shape := c.bridge.MessageShape()
	rec := reinterpret.NewRecord(shape)
	if err := rec.SetPointer(layout.MessageText, uint64(textPtr)); err != nil {
		return 0, 0, err
	}
	if err := rec.SetInt32(layout.MessageNumber, number); err != nil {
		return 0, 0, err
	}
	ptr, err := c.put(rec.Bytes(), 8)
	return ptr, shape.Size(), err
}

// PutPlanes writes a plane-pair record.
func (c *Caller) PutPlanes(pp compute.PlanePair) (uint32, uint32, error) {
	shape := c.bridge.PlanePairShape()
	rec, err := reinterpret.Encode(shape, &pp)
	if err != nil {
		return 0, 0, err
	}
	ptr, err := c.put(rec.Bytes(), 8)
	return ptr, shape.Size(), err
}

// Close releases the trampoline instance.
func (c *Caller) Close(ctx context.Context) error {
	return c.inst.Close(ctx)
}

func (c *Caller) call(ctx context.Context, name string, args ...uint64) (int32, error) {
	results, err := c.inst.Call(ctx, name, args...)
	if err != nil {
		return 0, err
	}
	return api.DecodeI32(results[0]), nil
}

func (c *Caller) reset() {
	c.next = wasmbridge.NullReserve
}

// put bump-allocates data in guest memory.
func (c *Caller) put(data []byte, align uint32) (uint32, error) {
	if align == 0 {
		align = 1
	}
	start := (uint64(c.next) + uint64(align) - 1) / uint64(align) * uint64(align)
	end := start + uint64(len(data))
	if end > uint64(c.mem.Size()) || end > math.MaxUint32 {
		return 0, errors.OutOfBounds(errors.PhaseEncode, nil, start, uint64(len(data)), c.mem.Size())
	}
	if err := c.mem.Write(uint32(start), data); err != nil {
		return 0, err
	}
	c.next = uint32(end)
	return uint32(start), nil
}
