package bridge

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Console is the diagnostic output stream shared by all calls.
// Each Print call reaches the sink as a single locked Write, so lines from
// concurrent calls never interleave.
type Console struct {
	ws zapcore.WriteSyncer
}

// NewConsole wraps w. A nil w discards output.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{ws: zapcore.Lock(zapcore.AddSync(w))}
}

// Stdout returns a console writing to the process's standard output.
func Stdout() *Console {
	return &Console{ws: zapcore.Lock(os.Stdout)}
}

// Print writes lines, each terminated by a newline, in one Write.
func (c *Console) Print(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	_, err := c.ws.Write([]byte(b.String()))
	return err
}

// Sync flushes the underlying sink.
func (c *Console) Sync() error {
	return c.ws.Sync()
}
