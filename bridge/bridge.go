package bridge

import (
	"fmt"

	"go.uber.org/zap"

	wasmbridge "github.com/wippyai/wasm-bridge"
	"github.com/wippyai/wasm-bridge/compute"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
	"github.com/wippyai/wasm-bridge/reinterpret"
	"github.com/wippyai/wasm-bridge/text"
)

// DefaultName is the name the greeting introduces the bridge with.
const DefaultName = "bridge"

// Bridge dispatches foreign calls to the computation routines.
// It holds no per-call state and is safe for concurrent use.
type Bridge struct {
	message *layout.Shape
	planes  *layout.Shape
	decoder *text.Decoder
	console *Console
	log     *zap.Logger
	name    string
	target  layout.Target
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithTarget sets the layout target callers use. Defaults to Wasm32.
func WithTarget(t layout.Target) Option {
	return func(b *Bridge) {
		b.target = t
	}
}

// WithDecoder sets the text decoder. Defaults to a platform-queried decoder.
// The bridge reads UTF-16 in the target's byte order regardless.
func WithDecoder(d *text.Decoder) Option {
	return func(b *Bridge) {
		if d != nil {
			b.decoder = d
		}
	}
}

// WithConsole sets the diagnostic console. Defaults to standard output.
func WithConsole(c *Console) Option {
	return func(b *Bridge) {
		if c != nil {
			b.console = c
		}
	}
}

// WithName sets the name printed in the greeting.
func WithName(name string) Option {
	return func(b *Bridge) {
		if name != "" {
			b.name = name
		}
	}
}

// WithLogger sets the logger. Defaults to the package Logger().
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates a bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		target: layout.Wasm32,
		name:   DefaultName,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.decoder == nil {
		b.decoder = text.NewDecoder(nil)
	}
	// Wide text is laid out in the caller's byte order.
	b.decoder = b.decoder.InOrder(b.target.ByteOrder)
	if b.console == nil {
		b.console = Stdout()
	}
	if b.log == nil {
		b.log = Logger()
	}
	b.message = layout.Message(b.target)
	b.planes = layout.PlanePair(b.target)
	return b
}

// MessageShape returns the shape hello expects.
func (b *Bridge) MessageShape() *layout.Shape { return b.message }

// PlanePairShape returns the shape dot_product expects.
func (b *Bridge) PlanePairShape() *layout.Shape { return b.planes }

// Target returns the layout target.
func (b *Bridge) Target() layout.Target { return b.target }

// Decoder returns the text decoder.
func (b *Bridge) Decoder() *text.Decoder { return b.decoder }

// Greeting is a decoded message record.
type Greeting struct {
	Message string
	Number  int32
}

// Greet reads a message record and decodes its text. Nothing is printed.
func (b *Bridge) Greet(mem wasmbridge.Memory, ptr uint32, length int32) (Greeting, error) {
	rec, err := reinterpret.Reinterpret(mem, ptr, length, b.message)
	if err != nil {
		return Greeting{}, err
	}

	ref, err := rec.Pointer(layout.MessageText)
	if err != nil {
		return Greeting{}, err
	}
	number, err := rec.Int32(layout.MessageNumber)
	if err != nil {
		return Greeting{}, err
	}

	msg, err := b.decoder.Decode(mem, ref)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
			e.Path = []string{layout.MessageText}
			e.Shape = b.message.Name()
		}
		return Greeting{}, err
	}

	return Greeting{Message: msg, Number: number}, nil
}

// Hello is the hello entry point. It returns 0 after printing the greeting
// and the decoded message, the required length when the buffer is too
// small, or a negative status. Nothing is printed unless it succeeds.
func (b *Bridge) Hello(mem wasmbridge.Memory, ptr uint32, length int32) int32 {
	g, err := b.Greet(mem, ptr, length)
	if err != nil {
		status := Status(err)
		b.log.Debug("hello rejected",
			zap.Uint32("ptr", ptr),
			zap.Int32("length", length),
			zap.Int32("status", status),
			zap.Error(err))
		return status
	}

	if err := b.console.Print(
		fmt.Sprintf("Hello from Go, I am %s", b.name),
		fmt.Sprintf("You said : '%s'", g.Message),
	); err != nil {
		b.log.Warn("console write failed", zap.Error(err))
	}

	b.log.Debug("hello",
		zap.String("message", g.Message),
		zap.Int32("number", g.Number))
	return StatusOK
}

// Multiply is the multiply entry point.
func (b *Bridge) Multiply(x, y int32) int32 {
	return compute.Multiply(x, y)
}

// Planes reads a plane-pair record.
func (b *Bridge) Planes(mem wasmbridge.Memory, ptr uint32, length int32) (compute.PlanePair, error) {
	rec, err := reinterpret.Reinterpret(mem, ptr, length, b.planes)
	if err != nil {
		return compute.PlanePair{}, err
	}
	var pp compute.PlanePair
	if err := rec.Decode(&pp); err != nil {
		return compute.PlanePair{}, err
	}
	return pp, nil
}

// DotProduct is the dot_product entry point. It returns the truncated dot
// product, or the required length when the buffer is too small. Callers
// that cannot tell the two apart should use DotProductChecked.
func (b *Bridge) DotProduct(mem wasmbridge.Memory, ptr uint32, length int32) int32 {
	result, status := b.DotProductChecked(mem, ptr, length)
	if status != StatusOK {
		return status
	}
	return result
}

// DotProductChecked returns the truncated dot product and a status that is
// StatusOK, a required length, or a negative status.
func (b *Bridge) DotProductChecked(mem wasmbridge.Memory, ptr uint32, length int32) (int32, int32) {
	pp, err := b.Planes(mem, ptr, length)
	if err != nil {
		status := Status(err)
		b.log.Debug("dot_product rejected",
			zap.Uint32("ptr", ptr),
			zap.Int32("length", length),
			zap.Int32("status", status),
			zap.Error(err))
		return 0, status
	}
	return compute.DotProduct(pp), StatusOK
}
