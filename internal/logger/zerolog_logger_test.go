package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := New("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("sim", &buf, false)
	l.Warnf("gap %.1f%%", 3.1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sim", entry["component"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "gap 3.1%", entry["message"])
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	require.NoError(t, SetLevel("error"))
	var buf bytes.Buffer
	l := NewZerologLogger("sim", &buf, false)
	l.Infof("hidden")
	assert.Empty(t, buf.String())

	assert.Error(t, SetLevel("loud"))
	assert.NoError(t, SetLevel(""))
}

func TestNop(t *testing.T) {
	Nop.Infof("nothing %d", 1)
	Nop.Debugw("nothing", nil)
}
