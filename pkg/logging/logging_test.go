package logging

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandlerFormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: &CustomHandler{Writer: &buf}, Level: log.InfoLevel}

	logger.WithField("profile", "dev").WithField("attempt", 2).Info("connecting")

	line := buf.String()
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} I connecting attempt=2 profile=dev\n$`, line)
}

func TestCustomHandlerWithoutFields(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: &CustomHandler{Writer: &buf}, Level: log.InfoLevel}

	logger.Warn("disk almost full")

	assert.Regexp(t, ` W disk almost full\n$`, buf.String())
}

func TestCustomHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: &CustomHandler{Writer: &buf}, Level: log.WarnLevel}

	logger.Debug("noise")
	logger.Info("still noise")
	assert.Empty(t, buf.String())

	logger.Error("boom")
	assert.Contains(t, buf.String(), "E boom")
}

func TestSetLevelFromName(t *testing.T) {
	logger, ok := log.Log.(*log.Logger)
	if !ok {
		t.Fatal("unexpected apex logger type")
	}
	original := logger.Level
	defer log.SetLevel(original)

	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "mixed case", level: "WARN", want: log.WarnLevel},
		{name: "unknown falls back to error", level: "bogus", want: log.ErrorLevel},
		{name: "empty falls back to error", level: "", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevelFromName(tt.level)
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}

func TestSetVerbose(t *testing.T) {
	logger, ok := log.Log.(*log.Logger)
	if !ok {
		t.Fatal("unexpected apex logger type")
	}
	original := logger.Level
	defer log.SetLevel(original)

	log.SetLevel(log.ErrorLevel)

	SetVerbose(false)
	assert.Equal(t, log.ErrorLevel, logger.Level)

	SetVerbose(true)
	assert.Equal(t, log.DebugLevel, logger.Level)
}
