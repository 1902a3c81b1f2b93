package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"real-estate-marketplace/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapter_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"component": "test"}).Error("failed", errors.New("boom"), port.Fields{"id": 7})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "boom", record["error"])
	assert.EqualValues(t, 7, record["id"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	assert.Equal(t, 1, strings.Count(buf.String(), "shown"))
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

type recordingPoster struct {
	mu   sync.Mutex
	tags []string
	data []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.data = append(p.data, message.(port.Fields))
	return nil
}

func (p *recordingPoster) Close() error { return nil }

func TestFluentLoggerAdapter(t *testing.T) {
	poster := &recordingPoster{}
	logger, err := NewFluentLoggerAdapter(poster, "marketplace", slog.LevelInfo)
	require.NoError(t, err)

	scoped := logger.WithFields(port.Fields{"trace_id": "abc"})
	scoped.Debug("dropped", nil)
	scoped.Error("failed", errors.New("boom"), port.Fields{"n": 1})

	require.Len(t, poster.tags, 1)
	assert.Equal(t, "marketplace.error", poster.tags[0])
	assert.Equal(t, "abc", poster.data[0]["trace_id"])
	assert.Equal(t, "boom", poster.data[0]["error"])
	assert.Equal(t, "failed", poster.data[0]["message"])

	_, err = NewFluentLoggerAdapter(nil, "", nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	first, second := &recordingPoster{}, &recordingPoster{}
	a, _ := NewFluentLoggerAdapter(first, "", slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, "", slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(a, b)
	require.NoError(t, err)
	multi.WithFields(port.Fields{"k": "v"}).Info("hello", nil)

	assert.Equal(t, []string{"info"}, first.tags)
	assert.Equal(t, []string{"info"}, second.tags)
	assert.Equal(t, "v", second.data[0]["k"])

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}
