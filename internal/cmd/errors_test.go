package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/tplmigrate/internal/errors"
)

func TestExitWith(t *testing.T) {
	assert.NoError(t, exitWith(nil))

	err := exitWith(oerrors.NewNotFoundError("project root does not exist", "/nope", ""))
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
	assert.False(t, exitErr.Printed)

	permission := exitWith(fmt.Errorf("open: %w", fs.ErrPermission))
	require.True(t, errors.As(permission, &exitErr))
	assert.Equal(t, oerrors.ExitPermissionDenied, exitErr.Code)

	existing := &oerrors.ExitError{Code: oerrors.ExitPartialFailure}
	assert.Same(t, existing, exitWith(existing))
}

func TestReported(t *testing.T) {
	assert.NoError(t, reported(nil))

	err := reported(oerrors.Wrap(oerrors.ErrValidation, "bad config"))
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.True(t, exitErr.Printed)
}
