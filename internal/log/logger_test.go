// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m), "raw: %s", buf.String())
	return m
}

func TestConfigure_JSON(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test-svc"})

	l := WithComponent("config")
	l.Debug().Str(FieldEvent, "config.load_success").Msg("loaded")

	m := decodeLine(t, &buf)
	assert.Equal(t, "test-svc", m["service"])
	assert.Equal(t, "config", m[FieldComponent])
	assert.Equal(t, "config.load_success", m[FieldEvent])
	assert.Equal(t, "debug", m["level"])
}

func TestConfigure_LevelFiltering(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})

	l := Base()
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigure_LevelFromEnv(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_SERVICE", "from-env")

	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	l := Base()
	l.Error().Msg("boom")
	assert.Equal(t, "from-env", decodeLine(t, &buf)["service"])
}

func TestConfigure_Console(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Format: FormatConsole, Output: &buf})

	l := Base()
	l.Info().Str(FieldSite, "https://ishanbagchi.com").Msg("descriptor ready")

	out := buf.String()
	assert.Contains(t, out, "descriptor ready")
	assert.Contains(t, out, "https://ishanbagchi.com")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "console output must not be JSON")
}

func TestWithContext_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := ContextWithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))

	enriched := WithContext(ctx, l)
	enriched.Info().Msg("reload")
	assert.Equal(t, "abc-123", decodeLine(t, &buf)[FieldCorrelationID])

	buf.Reset()
	plain := WithContext(context.Background(), l)
	plain.Info().Msg("reload")
	_, ok := decodeLine(t, &buf)[FieldCorrelationID]
	assert.False(t, ok)
}
