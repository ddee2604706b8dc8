package pullstrategy_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pullstrategy/internal/pullstrategy"
)

const (
	integrationGitMissingSkipMessage     = "git executable not available"
	gitCeilingDirectoriesEnvironmentName = "GIT_CEILING_DIRECTORIES"
)

func readLocalConfiguration(testInstance *testing.T, gitPath string, repositoryPath string, key string) string {
	testInstance.Helper()
	output, readError := exec.Command(gitPath, "-C", repositoryPath, "config", "--local", "--get", key).Output()
	require.NoError(testInstance, readError)
	return strings.TrimSpace(string(output))
}

func TestCommandConfiguresRealRepository(testInstance *testing.T) {
	gitPath, lookupError := exec.LookPath("git")
	if lookupError != nil {
		testInstance.Skip(integrationGitMissingSkipMessage)
	}

	searchRoot := testInstance.TempDir()
	testInstance.Setenv(gitCeilingDirectoriesEnvironmentName, searchRoot)
	repositoryPath := filepath.Join(searchRoot, commandTestRepositoryName)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(searchRoot, "notes"), 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(searchRoot, "hwrs564a_course_materials_draft"), 0o755))
	require.NoError(testInstance, exec.Command(gitPath, "init", "--quiet", repositoryPath).Run())

	for _, arguments := range [][]string{
		{"--search-root", searchRoot, "--no-ff"},
		{"--search-root", searchRoot},
		{"--search-root", searchRoot},
	} {
		output, executionError := executeCommand(testInstance, &pullstrategy.CommandBuilder{}, arguments...)
		require.NoError(testInstance, executionError)
		require.Contains(testInstance, output, "Done. Repo configured: "+repositoryPath)
	}

	require.Equal(testInstance, "false", readLocalConfiguration(testInstance, gitPath, repositoryPath, "pull.rebase"))
	require.Equal(testInstance, "true", readLocalConfiguration(testInstance, gitPath, repositoryPath, "pull.ff"))
}

func TestCommandReportsMissingRepositoryInRealTree(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip(integrationGitMissingSkipMessage)
	}

	searchRoot := testInstance.TempDir()
	testInstance.Setenv(gitCeilingDirectoriesEnvironmentName, searchRoot)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(searchRoot, "hwrs564a_course_materials_unversioned"), 0o755))

	_, executionError := executeCommand(testInstance, &pullstrategy.CommandBuilder{}, "--search-root", searchRoot)

	var notFoundError pullstrategy.NotFoundError
	require.ErrorAs(testInstance, executionError, &notFoundError)
	require.Equal(testInstance, pullstrategy.ExitCodeNotFound, notFoundError.ExitCode())
}
