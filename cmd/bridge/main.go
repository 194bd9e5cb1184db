// Command bridge runs WebAssembly guests against the bridge host module.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"golang.org/x/term"

	"github.com/wippyai/wasm-bridge/bridge"
	"github.com/wippyai/wasm-bridge/config"
	"github.com/wippyai/wasm-bridge/host"
	"github.com/wippyai/wasm-bridge/runtime"
)

func main() {
	os.Exit(execute())
}

// execute runs the command and returns its exit code.
func execute() int {
	var (
		wasmFile    = flag.String("wasm", "", "Path to guest wasm file")
		funcName    = flag.String("func", "", "Function to call")
		argList     = flag.String("args", "", "Numeric arguments (comma-separated)")
		list        = flag.Bool("list", false, "List bridge exports (and guest exports with -wasm) and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()
	bridge.SetLogger(log.Named("bridge"))
	host.SetLogger(log.Named("host"))
	runtime.SetLogger(log.Named("runtime"))

	switch {
	case *interactive:
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			return 1
		}
		err = runInteractive(cfg)
	case *list:
		err = listExports(cfg, *wasmFile)
	case *wasmFile != "" && *funcName != "":
		err = run(cfg, *wasmFile, *funcName, *argList)
	default:
		fmt.Fprintln(os.Stderr, "Usage: bridge -wasm <file.wasm> -func name [-args 1,2]")
		fmt.Fprintln(os.Stderr, "       bridge -list [-wasm <file.wasm>]")
		fmt.Fprintln(os.Stderr, "       bridge -i  (interactive mode)")
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func listExports(cfg config.Config, wasmFile string) error {
	ctx := context.Background()

	rt, err := runtime.New(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(ctx)

	fmt.Printf("Bridge module %q:\n", rt.Host().Name())
	for _, f := range rt.Host().Funcs() {
		fmt.Printf("  %s\n", signature(f.Name, f.ParamTypes, f.ResultTypes))
	}

	b := rt.Bridge()
	fmt.Printf("\nRecords:\n%s\n%s\n", b.MessageShape().Describe(), b.PlanePairShape().Describe())

	if wasmFile == "" {
		return nil
	}
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	mod, err := rt.Load(ctx, data)
	if err != nil {
		return err
	}
	fmt.Printf("\nGuest %s exports:\n", wasmFile)
	for _, e := range mod.Exports() {
		fmt.Printf("  %s\n", signature(e.Name, e.Params, e.Results))
	}
	return nil
}

func run(cfg config.Config, wasmFile, funcName, argList string) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt, err := runtime.New(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(ctx)

	mod, err := rt.Load(ctx, data)
	if err != nil {
		return err
	}

	var export *runtime.Export
	for _, e := range mod.Exports() {
		if e.Name == funcName {
			export = &e
			break
		}
	}
	if export == nil {
		return fmt.Errorf("function %q not exported", funcName)
	}

	args, err := parseArgs(argList, export.Params)
	if err != nil {
		return err
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	results, err := inst.Call(ctx, funcName, args...)
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Printf("result[%d]: %s\n", i, formatValue(r, export.Results[i]))
	}
	return nil
}

func parseArgs(list string, params []api.ValueType) ([]uint64, error) {
	var fields []string
	if strings.TrimSpace(list) != "" {
		fields = strings.Split(list, ",")
	}
	if len(fields) != len(params) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", len(params), len(fields))
	}

	args := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := encodeValue(strings.TrimSpace(f), params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

func encodeValue(s string, vt api.ValueType) (uint64, error) {
	switch vt {
	case api.ValueTypeI32:
		v, err := strconv.ParseInt(s, 0, 32)
		return api.EncodeI32(int32(v)), err
	case api.ValueTypeI64:
		v, err := strconv.ParseInt(s, 0, 64)
		return api.EncodeI64(v), err
	case api.ValueTypeF32:
		v, err := strconv.ParseFloat(s, 32)
		return api.EncodeF32(float32(v)), err
	case api.ValueTypeF64:
		v, err := strconv.ParseFloat(s, 64)
		return api.EncodeF64(v), err
	default:
		return 0, fmt.Errorf("unsupported parameter type %s", api.ValueTypeName(vt))
	}
}

func formatValue(v uint64, vt api.ValueType) string {
	switch vt {
	case api.ValueTypeI32:
		return strconv.FormatInt(int64(api.DecodeI32(v)), 10)
	case api.ValueTypeI64:
		return strconv.FormatInt(int64(v), 10)
	case api.ValueTypeF32:
		return strconv.FormatFloat(float64(api.DecodeF32(v)), 'g', -1, 32)
	case api.ValueTypeF64:
		return strconv.FormatFloat(api.DecodeF64(v), 'g', -1, 64)
	default:
		return fmt.Sprintf("%#x", v)
	}
}

func signature(name string, params, results []api.ValueType) string {
	names := func(vts []api.ValueType) string {
		s := make([]string, len(vts))
		for i, vt := range vts {
			s[i] = api.ValueTypeName(vt)
		}
		return strings.Join(s, ", ")
	}
	sig := name + "(" + names(params) + ")"
	if len(results) > 0 {
		sig += " -> " + names(results)
	}
	return sig
}
