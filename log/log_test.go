package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogger_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debugf("reading %s", "a.txt")
	l.Debug("opened")
	assert.Empty(t, buf.String())

	l.Warnf("skipped %d fields", 2)
	assert.Contains(t, buf.String(), "skipped 2 fields")
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Debugf("reading %s", "a.txt")
	assert.Contains(t, buf.String(), "reading a.txt")

	l.SetVerbose(false)
	buf.Reset()
	l.Debugf("hidden")
	assert.Empty(t, buf.String())

	l.SetVerbose(true)
	l.Debugf("shown again")
	assert.Contains(t, buf.String(), "shown again")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	child := l.With(zap.String("source", "in.txt"))

	child.Debug("opened")
	assert.Contains(t, buf.String(), "opened")
	assert.Contains(t, buf.String(), `"source": "in.txt"`)

	// Children share the parent's level.
	l.SetVerbose(false)
	buf.Reset()
	child.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.SetVerbose(true)
	l.Warnf("dropped")
	l.Debug("dropped")
	assert.NoError(t, l.Sync())
}
