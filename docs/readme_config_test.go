package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pullstrategy/cmd/cli"
	"github.com/temirov/pullstrategy/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	readmeEnvironmentPrefixConstant  = "PULLSTRATEGYREADME"
)

func extractConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationLoadsStrictly(testInstance *testing.T) {
	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(extractConfigurationSnippet(testInstance)), 0o600))

	configurationLoader := utils.NewConfigurationLoader("config", "yaml", readmeEnvironmentPrefixConstant, nil)
	configurationLoader.SetEmbeddedConfiguration(cli.EmbeddedDefaultConfiguration())
	configurationLoader.SetStrictDecoding(true)

	var applicationConfiguration cli.ApplicationConfiguration
	_, loadError := configurationLoader.LoadConfiguration(snippetPath, nil, &applicationConfiguration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, string(utils.LogFormatAuto), applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, "~/courses", applicationConfiguration.Tools.PullStrategy.SearchRoot)
	require.Equal(testInstance, 3, applicationConfiguration.Tools.PullStrategy.MaxDepth)
	require.True(testInstance, applicationConfiguration.Tools.PullStrategy.FastForward)
}
