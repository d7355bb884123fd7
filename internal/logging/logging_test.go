package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflow/internal/config"
)

func TestContextHandlerAddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := WithAttrs(context.Background(), slog.String("request_id", "abc"))
	ctx = WithAttrs(ctx, slog.String("op", "list scenarios"))
	logger.InfoContext(ctx, "request done")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec["request_id"])
	assert.Equal(t, "list scenarios", rec["op"])
}

func TestWithAttrsDoesNotLeakIntoParent(t *testing.T) {
	base := WithAttrs(context.Background(), slog.String("a", "1"))
	_ = WithAttrs(base, slog.String("b", "2"))

	attrs := base.Value(slogAttrs).([]slog.Attr)
	assert.Len(t, attrs, 1)
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closer, err := New(config.LogConfig{})
	require.NoError(t, err)
	defer closer.Close()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	logger, closer, err := New(config.LogConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
