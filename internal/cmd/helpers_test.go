package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opmodel/tplmigrate/internal/config"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/output"
)

// result holds the output of one command execution.
type result struct {
	stdout string
	logs   string
	err    error
}

// isolate points HOME at a temp dir and clears every TPLMIGRATE_* variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		config.EnvConfig, config.EnvRoot, config.EnvPattern, config.EnvMarkupExt,
		config.EnvModuleExt, config.EnvReferences, config.EnvVerify,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

// execute runs the root command with args and captures stdout and logs.
func execute(t *testing.T, args ...string) result {
	t.Helper()

	var logs bytes.Buffer
	output.SetLogWriter(&logs)
	t.Cleanup(func() {
		output.SetLogWriter(os.Stderr)
		output.SetupLogging(output.LogConfig{})
	})

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--timestamps=false"))

	err := root.Execute()
	return result{stdout: stdout.String(), logs: logs.String(), err: err}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}
