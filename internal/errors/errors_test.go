//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrPartial)
	assert.NotEqual(t, ErrNotFound, ErrPartial)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "unknown reference scope",
		Location: "/home/dev/.tplmigrate/config.yaml",
		Field:    "references",
		Context:  map[string]string{"Value": "deep"},
		Hint:     "Use recursive or flat",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /home/dev/.tplmigrate/config.yaml")
	assert.Contains(t, output, "Field: references")
	assert.Contains(t, output, "Value: deep")
	assert.Contains(t, output, "unknown reference scope")
	assert.Contains(t, output, "Hint: Use recursive or flat")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid pattern", "src/[", "pattern", "Check the glob syntax")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "invalid pattern", detail.Message)
	assert.Equal(t, "src/[", detail.Location)
	assert.Equal(t, "pattern", detail.Field)
	assert.Equal(t, "Check the glob syntax", detail.Hint)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project root does not exist", "/nope", "")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Location: /nope")
	assert.NotContains(t, err.Error(), "Hint:")
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "config check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "config check failed")
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("2 files failed: %w", ErrPartial)
	exitErr := &ExitError{Code: ExitPartialFailure, Err: inner}

	assert.Equal(t, inner.Error(), exitErr.Error())
	assert.True(t, errors.Is(exitErr, ErrPartial))
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "validation error", err: ErrValidation, wantCode: ExitValidationError},
		{name: "wrapped validation error", err: Wrap(ErrValidation, "bad flag"), wantCode: ExitValidationError},
		{name: "not found error", err: ErrNotFound, wantCode: ExitNotFound},
		{name: "fs not exist", err: fmt.Errorf("stat: %w", fs.ErrNotExist), wantCode: ExitNotFound},
		{name: "permission", err: fmt.Errorf("open: %w", fs.ErrPermission), wantCode: ExitPermissionDenied},
		{name: "partial failure", err: Wrap(ErrPartial, "1 of 3 files failed"), wantCode: ExitPartialFailure},
		{name: "explicit exit error wins", err: &ExitError{Code: ExitGeneralError, Err: ErrValidation}, wantCode: ExitGeneralError},
		{name: "unknown error returns general error", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneralError)
	assert.Equal(t, 2, ExitValidationError)
	assert.Equal(t, 4, ExitPermissionDenied)
	assert.Equal(t, 5, ExitNotFound)
	assert.Equal(t, 6, ExitPartialFailure)
}
