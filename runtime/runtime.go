package runtime

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bridge/bridge"
	"github.com/wippyai/wasm-bridge/config"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/host"
)

// Options tune a Runtime beyond what Config covers.
type Options struct {
	// Console receives greeting lines. Defaults to standard output.
	Console *bridge.Console
	// Logger is used by the bridge. Defaults to bridge.Logger().
	Logger *zap.Logger
	// MemoryLimitPages caps guest memory. Zero keeps wazero's default.
	MemoryLimitPages uint32
	// DisableWASI skips linking wasi_snapshot_preview1.
	DisableWASI bool
}

// Runtime links the bridge host module into a wazero runtime.
type Runtime struct {
	runtime wazero.Runtime
	host    *host.Module
	cfg     config.Config
	wasi    bool
}

// New creates a runtime from cfg. opts may be nil.
func New(ctx context.Context, cfg config.Config, opts *Options) (*Runtime, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	decoder, err := cfg.Decoder()
	if err != nil {
		return nil, err
	}

	b := bridge.New(
		bridge.WithDecoder(decoder),
		bridge.WithName(cfg.GreetingName),
		bridge.WithConsole(opts.Console),
		bridge.WithLogger(opts.Logger),
	)
	hm, err := host.New(b, cfg.ModuleName)
	if err != nil {
		return nil, err
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if opts.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(opts.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if _, err := hm.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, err
	}
	if !opts.DisableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			rt.Close(ctx)
			return nil, errors.Registration(wasi_snapshot_preview1.ModuleName, "*", err)
		}
	}

	Logger().Debug("runtime created",
		zap.String("module", hm.Name()),
		zap.String("encoding", cfg.TextEncoding),
		zap.Bool("wasi", !opts.DisableWASI))

	return &Runtime{
		runtime: rt,
		host:    hm,
		cfg:     cfg,
		wasi:    !opts.DisableWASI,
	}, nil
}

// Bridge returns the bridge guests call into.
func (r *Runtime) Bridge() *bridge.Bridge { return r.host.Bridge() }

// Host returns the bridge host module.
func (r *Runtime) Host() *host.Module { return r.host }

// Config returns the configuration the runtime was built from.
func (r *Runtime) Config() config.Config { return r.cfg }

// Close releases all runtime resources, including every instance.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}
