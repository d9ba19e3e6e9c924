package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func contextWithBufferLogger(buf *bytes.Buffer) context.Context {
	l := zerolog.New(buf)
	return l.WithContext(context.Background())
}

func TestErrorLogFormatsMessageAndAttachesError(t *testing.T) {
	var buf bytes.Buffer
	ctx := contextWithBufferLogger(&buf)

	ErrorLog(ctx, "Server stopped: %v", errors.New("port in use"))

	out := buf.String()
	assert.Contains(t, out, `"message":"Server stopped: port in use"`)
	assert.Contains(t, out, `"error":"port in use"`)
	assert.NotContains(t, out, "%v")
}

func TestErrorLogWithoutArguments(t *testing.T) {
	var buf bytes.Buffer
	ctx := contextWithBufferLogger(&buf)

	ErrorLog(ctx, "shutting down")

	assert.Contains(t, buf.String(), `"message":"shutting down"`)
}

func TestWarnLogFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	ctx := contextWithBufferLogger(&buf)

	WarnLog(ctx, "falling back to csv for sheet %s", "abc")

	assert.Contains(t, buf.String(), `"message":"falling back to csv for sheet abc"`)
}
