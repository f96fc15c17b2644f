package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNewWithWriterTagsService(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info", ServiceName: "filmorate"}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "shown", line["message"])
	require.Equal(t, "filmorate", line[FieldService])
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	stored := zerolog.New(&buf)
	fallback := zerolog.Nop()

	got := Ctx(context.Background(), fallback)
	got.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	got = Ctx(WithContext(context.Background(), stored), fallback)
	got.Info().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}
