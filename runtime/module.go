package runtime

import (
	"context"
	"os"
	"slices"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bridge/errors"
)

// Module is a compiled guest.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Export describes a function the guest exports.
type Export struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// Load compiles wasm and checks its imports against what the runtime
// provides. Unresolvable imports are reported together as a
// *errors.MissingImportsError.
func (r *Runtime) Load(ctx context.Context, wasm []byte) (*Module, error) {
	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if missing := r.unresolved(compiled); len(missing) > 0 {
		compiled.Close(ctx)
		return nil, errors.NewMissingImportsError(missing)
	}

	return &Module{runtime: r, compiled: compiled}, nil
}

// unresolved lists imports as "module#name". Bridge imports must match an
// export by name and signature.
func (r *Runtime) unresolved(compiled wazero.CompiledModule) []string {
	var missing []string
	for _, fn := range compiled.ImportedFunctions() {
		mod, name, ok := fn.Import()
		if !ok {
			continue
		}
		switch {
		case mod == r.host.Name():
			def, found := r.host.Func(name)
			if !found || !slices.Equal(def.ParamTypes, fn.ParamTypes()) || !slices.Equal(def.ResultTypes, fn.ResultTypes()) {
				missing = append(missing, mod+"#"+name)
			}
		case mod == wasi_snapshot_preview1.ModuleName && r.wasi:
		default:
			missing = append(missing, mod+"#"+name)
		}
	}
	return missing
}

// Exports lists the guest's exported functions sorted by name.
func (m *Module) Exports() []Export {
	defs := m.compiled.ExportedFunctions()
	out := make([]Export, 0, len(defs))
	for name, def := range defs {
		out = append(out, Export{Name: name, Params: def.ParamTypes(), Results: def.ResultTypes()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instantiate creates an instance. Start functions are not run; call
// _start explicitly for WASI commands.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions().
		WithStdout(os.Stdout).
		WithStderr(os.Stderr)

	mod, err := m.runtime.runtime.InstantiateModule(ctx, m.compiled, cfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	Logger().Debug("guest instantiated", zap.Int("exports", len(m.compiled.ExportedFunctions())))
	return &Instance{module: mod}, nil
}

// Close releases the compiled module.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}
