package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "display.default_mode", InvalidConfig, nil)
	assert.Equal(t, "invalid value: display.default_mode", configErr.Error())
	assert.Equal(t, "display.default_mode", configErr.Param())

	origErr := fmt.Errorf("unexpected end of input")
	patternErr := NewConfigError("invalid ignore pattern", "scan.ignore", InvalidPattern, origErr)
	assert.Equal(t, "invalid ignore pattern: scan.ignore: unexpected end of input", patternErr.Error())
	assert.True(t, IsInvalidConfig(patternErr))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestSourceError(t *testing.T) {
	srcErr := NewSourceError("failed to parse report", "coverage.yaml", SourceParseFailed, nil)
	assert.Equal(t, "failed to parse report: coverage.yaml", srcErr.Error())
	assert.Equal(t, "coverage.yaml", srcErr.Source())
	assert.Equal(t, SourceParseFailed, srcErr.Kind())
	assert.True(t, IsSourceError(srcErr))
	assert.False(t, IsSourceError(New("plain")))

	wrapped := Wrap(NewSourceError("not a git work tree", "git", SourceUnavailable, fmt.Errorf("exit status 128")), "loading git status")
	assert.True(t, Is(wrapped, ErrNotGitRepo))
	assert.False(t, Is(srcErr, ErrNotGitRepo))
}

func TestInvalidInputError(t *testing.T) {
	inputErr := NewInvalidInputError("annotation layer without id", nil).WithContext("index", 2)
	assert.Equal(t, "annotation layer without id", inputErr.Error())
	assert.Equal(t, 2, inputErr.Context()["index"])
	assert.Equal(t, InvalidInputData, inputErr.Kind())
	var target *InvalidInputError
	assert.True(t, As(Wrap(inputErr, "loading annotations"), &target))
	assert.Same(t, inputErr, target)
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "sources.quality", InvalidConfig, fileErr)
	srcErr := NewSourceError("source error", "quality", SourceUnavailable, configErr)

	assert.Equal(t, "source error: quality: config error: sources.quality: file error: /path/to/file: base error", srcErr.Error())

	assert.True(t, Is(srcErr, baseErr))
	assert.True(t, Is(srcErr, fileErr))
	assert.True(t, Is(srcErr, configErr))

	var fe *FileError
	assert.True(t, As(srcErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	assert.True(t, IsFileNotFound(srcErr))
	assert.True(t, IsInvalidConfig(srcErr))
	assert.True(t, IsSourceError(srcErr))
}
