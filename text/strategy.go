package text

import (
	"encoding/binary"
	"runtime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/wasm-bridge/errors"
)

// Strategy is a text encoding convention for null-terminated strings.
type Strategy interface {
	// Name identifies the strategy ("utf-8", "utf-16le", ...).
	Name() string
	// UnitSize is the width of one code unit, and of the terminator, in bytes.
	UnitSize() uint32
	// Decode converts raw code units, terminator excluded, to a Go string.
	Decode(raw []byte) (string, error)
	// Encode converts s to code units followed by a terminator.
	Encode(s string) ([]byte, error)
}

type codec struct {
	enc  encoding.Encoding
	name string
	unit uint32
}

var (
	// UTF8 decodes 8-bit code units.
	UTF8 Strategy = &codec{name: "utf-8", unit: 1, enc: unicode.UTF8}
	// UTF16 decodes little-endian 16-bit code units.
	UTF16 Strategy = &codec{name: "utf-16le", unit: 2, enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	// UTF16BE decodes big-endian 16-bit code units.
	UTF16BE Strategy = &codec{name: "utf-16be", unit: 2, enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

func (c *codec) Name() string     { return c.name }
func (c *codec) UnitSize() uint32 { return c.unit }

func (c *codec) Decode(raw []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%s decode", c.name).
			Cause(err).
			Build()
	}
	return string(out), nil
}

func (c *codec) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("%s encode", c.name).
			Cause(err).
			Build()
	}
	return append(out, make([]byte, c.unit)...), nil
}

// WideCharPlatform reports whether goos passes strings as 16-bit wide
// characters.
func WideCharPlatform(goos string) bool {
	return goos == "windows"
}

// ForPlatform returns the strategy callers on goos use.
func ForPlatform(goos string) Strategy {
	if WideCharPlatform(goos) {
		return UTF16
	}
	return UTF8
}

// Native returns the strategy of the running host.
func Native() Strategy {
	return ForPlatform(runtime.GOOS)
}

// UTF16For returns the UTF-16 strategy in the given byte order.
func UTF16For(order binary.ByteOrder) Strategy {
	if order == binary.BigEndian {
		return UTF16BE
	}
	return UTF16
}

// Parse resolves a configured encoding name. "auto" and "" resolve to nil,
// meaning the platform is queried on each call.
func Parse(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return nil, nil
	case "utf8", "utf-8":
		return UTF8, nil
	case "utf16", "utf-16", "utf16le", "utf-16le", "wide":
		return UTF16, nil
	case "utf16be", "utf-16be":
		return UTF16BE, nil
	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, "unknown text encoding "+name)
	}
}
