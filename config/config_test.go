package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/text"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	s, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Nil(t, s)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BRIDGE_TEXT_ENCODING", "utf16")
	t.Setenv("BRIDGE_MAX_TEXT_LENGTH", "64")
	t.Setenv("BRIDGE_MODULE_NAME", "native")
	t.Setenv("BRIDGE_LOG_LEVEL", "debug")
	t.Setenv("BRIDGE_GREETING_NAME", "tester")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(64), cfg.MaxTextLength)
	assert.Equal(t, "native", cfg.ModuleName)
	assert.Equal(t, "tester", cfg.GreetingName)

	s, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Same(t, text.UTF16, s)

	d, err := cfg.Decoder()
	require.NoError(t, err)
	assert.Same(t, text.UTF16, d.Strategy())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"encoding", "BRIDGE_TEXT_ENCODING", "latin1"},
		{"length not a number", "BRIDGE_MAX_TEXT_LENGTH", "lots"},
		{"zero length", "BRIDGE_MAX_TEXT_LENGTH", "0"},
		{"level", "BRIDGE_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
		})
	}
}

func TestValidate_EmptyModule(t *testing.T) {
	cfg := Default()
	cfg.ModuleName = ""
	assert.Error(t, cfg.Validate())
}
