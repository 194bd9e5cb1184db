// Package runtime runs WebAssembly guests against the bridge.
//
// A Runtime owns a wazero runtime with the bridge host module and WASI
// preview1 linked in. Guests are compiled with Load, which rejects modules
// that import bridge functions the host does not export, and instantiated
// into Instances.
//
// Basic usage:
//
//	cfg, _ := config.Load()
//	rt, _ := runtime.New(ctx, cfg)
//	defer rt.Close(ctx)
//
//	mod, _ := rt.Load(ctx, wasmBytes)
//	inst, _ := mod.Instantiate(ctx)
//	results, _ := inst.Call(ctx, "run")
//
// Caller drives the bridge from Go through a trampoline guest: it writes
// records and text into guest memory and calls the entry points exactly
// as a foreign guest would.
package runtime
