package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace":   TRACE,
		"DEBUG":   DEBUG,
		"":        INFO,
		"info":    INFO,
		"warning": WARN,
		" error ": ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerRespectsConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test")
	logger.SetOutput(&buf)
	logger.SetLevels(WARN, DEBUG)

	logger.Info("не должно попасть")
	logger.Warn("чанков освобождено: %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "не должно попасть")
	assert.Contains(t, out, "[WARN] чанков освобождено: 3")
	assert.Contains(t, out, "[test]")
}

func TestLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger("world")
	logger.SetOutput(&bytes.Buffer{})
	require.NoError(t, logger.AttachFile(dir))

	logger.Debug("отладочное сообщение")
	logger.Trace("слишком подробно")
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "world_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] отладочное сообщение")
	assert.NotContains(t, string(data), "слишком подробно")
}

func TestManagerReturnsSameLogger(t *testing.T) {
	lm := &LoggerManager{loggers: make(map[string]*Logger), consoleLevel: INFO, fileLevel: DEBUG}

	a, err := lm.GetLogger("terrain")
	require.NoError(t, err)
	b := lm.MustGetLogger("terrain")
	assert.Same(t, a, b)
	assert.Equal(t, []string{"terrain"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("terrain", ERROR, ERROR))
	assert.Equal(t, ERROR, a.minConsoleLevel)
	assert.Error(t, lm.SetLogLevel("missing", INFO, INFO))
	assert.NoError(t, lm.CloseAll())
}
