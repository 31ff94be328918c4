package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("inventory-service", &buf)
	SetLevel("debug")
	t.Cleanup(func() { SetLevel("info") })

	ctx := ContextWithRequestID(context.Background(), "req-42")
	Info(ctx).Int("quantity", 5).Msg("stock merged")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "inventory-service", line["service"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "stock merged", line["message"])
	assert.NotContains(t, line, "trace_id")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("verbose")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
