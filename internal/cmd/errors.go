package cmd

import (
	"errors"

	oerrors "github.com/opmodel/tplmigrate/internal/errors"
)

// exitWith wraps err in an ExitError carrying the exit code derived from it.
// Errors that already carry a code are returned unchanged.
func exitWith(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}

// reported is exitWith for errors the command has already printed.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
