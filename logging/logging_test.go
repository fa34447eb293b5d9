// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/featkit/logging"
)

func newBufferLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_FieldsAndLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithComponent("kmeans")

	l.LogFit("fit", 10, 3, nil)
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "component=kmeans")
	assert.Contains(t, out, "rows=10")
	assert.Contains(t, out, "cols=3")

	buf.Reset()
	l.LogFit("fit", 0, 3, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	l.LogReseed(2, 0, 7)
	assert.Contains(t, buf.String(), "cluster=2")
	assert.Contains(t, buf.String(), "donor=0")
	assert.Contains(t, buf.String(), "row=7")
}

func TestNoopAndOrNoop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logging.OrNoop(nil))
	assert.NotPanics(t, func() {
		logging.NoopLogger().LogConvergence(3, 5, true)
		logging.OrNoop(&logging.Logger{}).LogIteration(1, 0)
	})

	l := logging.NoopLogger()
	assert.Same(t, l, logging.OrNoop(l))
	assert.NotNil(t, logging.NewLogger(nil))
	assert.NotNil(t, logging.NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, logging.NewTextLogger(slog.LevelInfo))
}
