package execshell_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pullstrategy/internal/execshell"
)

const (
	testShellExecutableConstant             = "sh"
	testMissingExecutableNameConstant       = "pullstrategy-missing-executable"
	testShellScriptFlagConstant             = "-c"
	testShellScriptConstant                 = "echo out; echo err 1>&2; exit 3"
	testShellEnvironmentScriptConstant      = "printf %s \"$PULLSTRATEGY_TEST_VALUE\""
	testShellEnvironmentKeyConstant         = "PULLSTRATEGY_TEST_VALUE"
	testShellEnvironmentValueConstant       = "present"
	testShellWorkingDirectoryScriptConstant = "pwd"
)

func requireShell(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(testShellExecutableConstant); lookupError != nil {
		testInstance.Skip("sh is not available")
	}
}

func TestOSCommandRunnerReportsExitCodeAndStreams(testInstance *testing.T) {
	requireShell(testInstance)

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName(testShellExecutableConstant),
		Details: execshell.CommandDetails{Arguments: []string{testShellScriptFlagConstant, testShellScriptConstant}},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, result.ExitCode)
	require.Equal(testInstance, "out\n", result.StandardOutput)
	require.Equal(testInstance, "err\n", result.StandardError)
}

func TestOSCommandRunnerAppliesEnvironmentAndWorkingDirectory(testInstance *testing.T) {
	requireShell(testInstance)

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testShellExecutableConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{testShellScriptFlagConstant, testShellEnvironmentScriptConstant},
			EnvironmentVariables: map[string]string{testShellEnvironmentKeyConstant: testShellEnvironmentValueConstant},
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, testShellEnvironmentValueConstant, result.StandardOutput)

	workingDirectory := testInstance.TempDir()
	result, runError = runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testShellExecutableConstant),
		Details: execshell.CommandDetails{
			Arguments:        []string{testShellScriptFlagConstant, testShellWorkingDirectoryScriptConstant},
			WorkingDirectory: workingDirectory,
		},
	})
	require.NoError(testInstance, runError)
	require.NotEmpty(testInstance, result.StandardOutput)
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testMissingExecutableNameConstant),
	})

	require.Error(testInstance, runError)
	require.ErrorIs(testInstance, runError, execshell.ErrExecutableNotFound)
	require.ErrorIs(testInstance, runError, exec.ErrNotFound)
}
