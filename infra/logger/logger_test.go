package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel}, // unknown values fall back to info
	}
	for _, c := range cases {
		t.Setenv("GG_LOG_LEVEL", c.value)
		assert.Equal(t, c.want, levelFromEnv(), "GG_LOG_LEVEL=%q", c.value)
	}
}

func TestNewReturnsWorkingLogger(t *testing.T) {
	t.Setenv("GG_LOG_LEVEL", "debug")
	log := New("test")
	// Must not panic on any method.
	log.Debugf("dbg %d", 1)
	log.Debugw("dbg", map[string]any{"k": "v"})
	log.Infof("info")
	log.Warnf("warn")
	log.Errorf("err")
}
