package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWithWriters_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriters(false, &buf)

	log.Debug("hidden")
	log.Info("analysis generated", zap.String("consult_id", "c-1"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "analysis generated")
	assert.Contains(t, out, `"consult_id": "c-1"`)
}

func TestNewWithWriters_DebugAndFanOut(t *testing.T) {
	var a, b bytes.Buffer
	log := NewWithWriters(true, &a, &b)

	log.Debug("visible")

	assert.Contains(t, a.String(), "DEBUG")
	assert.Contains(t, b.String(), "visible")
}
