package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codecity/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapLogger points the package logger at buf for the duration of a test.
func swapLogger(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logger
	logger = NewLogger(append([]Option{WithOutput(&buf)}, opts...)...)
	t.Cleanup(func() { logger = original })
	return &buf
}

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	defer SetDebug(false)

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	base := l.With(F("key1", "value1"))
	base.With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	base.Info("parent untouched")
	assert.NotContains(t, buf.String(), "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.Info("json message")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
	buf.Reset()

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")
	entry = map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
}

func TestCallerInfo(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(WithOutput(&buf)).Info("caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")

	pkg := swapLogger(t)
	Info("package caller")
	assert.Contains(t, pkg.String(), "logger_test.go:")
}

func TestErrorLogging(t *testing.T) {
	buf := swapLogger(t)

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	LogWithError(errors.New("application error")).Error("app error occurred")
	assert.Contains(t, buf.String(), "application error")
	assert.Contains(t, buf.String(), "error_kind=0")
	buf.Reset()

	fileErr := errors.NewFileError("file error", "/path/to/file", errors.FileNotFound, nil)
	LogWithError(fileErr).Error("file error occurred")
	assert.Contains(t, buf.String(), "path=/path/to/file")
	assert.Contains(t, buf.String(), "error_kind=1")
	buf.Reset()

	configErr := errors.NewConfigError("config error", "scan.ignore", errors.InvalidPattern, nil)
	LogWithError(configErr).Error("config error occurred")
	assert.Contains(t, buf.String(), "param=scan.ignore")
	assert.Contains(t, buf.String(), "error_kind=6")
	buf.Reset()

	srcErr := errors.NewSourceError("parse failed", "quality.yaml", errors.SourceParseFailed, nil)
	LogWithError(srcErr).Error("source error occurred")
	assert.Contains(t, buf.String(), "source=quality.yaml")
	assert.Contains(t, buf.String(), "error_kind=8")
	buf.Reset()

	inputErr := errors.NewInvalidInputError("annotation layer without id", nil).WithContext("index", 3)
	LogWithError(errors.Wrap(inputErr, "loading feed")).Error("input error occurred")
	assert.Contains(t, buf.String(), "index=3")
	assert.Contains(t, buf.String(), "error_kind=0", "the outermost kind is reported")
	buf.Reset()

	LogError(fileErr, "convenient error log")
	assert.Contains(t, buf.String(), "convenient error log")
	assert.Contains(t, buf.String(), "file error: /path/to/file")
}

func TestNilErrorHandling(t *testing.T) {
	buf := swapLogger(t)

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), "error=\"<nil>\"")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(nil).Info("no context")
	assert.Contains(t, buf.String(), "no context")
	buf.Reset()

	ctx := NewContext(context.Background(), F("scope", "/repo"))
	ctx = NewContext(ctx, F("mode", "git"))
	l.WithContext(ctx).Info("context message")
	assert.Contains(t, buf.String(), "scope=/repo")
	assert.Contains(t, buf.String(), "mode=git")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codecity.log")
	var stdout bytes.Buffer

	l := NewLogger(WithOutput(&stdout), WithFile(path))
	l.Info("file test message")
	require.NoError(t, l.Close())

	assert.Contains(t, stdout.String(), "file test message")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestConfigure(t *testing.T) {
	original := logger
	defer func() { logger = original }()

	var buf bytes.Buffer
	Configure(WithOutput(&buf), WithJSON())
	Info("global config test")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "global config test", entry["message"])
}
