package runtime

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/internal/memory"
)

// Instance is an instantiated guest.
type Instance struct {
	module api.Module
}

// Call invokes an exported function with raw wasm values.
func (i *Instance) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	if i.module == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "instance")
	}
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseRuntime, "function", name)
	}
	if want := len(fn.Definition().ParamTypes()); want != len(args) {
		return nil, errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Detail("function %s takes %d argument(s), got %d", name, want, len(args)).
			Build()
	}

	results, err := fn.Call(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "call "+name)
	}
	return results, nil
}

// Memory returns the guest's memory, or nil if it exports none.
func (i *Instance) Memory() *memory.Wrapper {
	return memory.Wrap(i.module.Memory())
}

// Close releases the instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
