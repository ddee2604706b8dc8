package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/pullstrategy/internal/execshell"
	"github.com/temirov/pullstrategy/internal/repos/shared"
)

const (
	gitExecutorMissingMessageConstant        = "git executor not configured"
	repositoryPathRequiredMessageConstant    = "repository path must be provided"
	configurationKeyRequiredMessageConstant  = "configuration key must be provided"
	gitUnavailableMessageConstant            = "git is unavailable"
	gitVersionFlagConstant                   = "--version"
	gitDirectoryFlagConstant                 = "-C"
	gitRevParseSubcommandConstant            = "rev-parse"
	gitInsideWorkTreeFlagConstant            = "--is-inside-work-tree"
	gitInsideWorkTreeAffirmativeConstant     = "true"
	gitConfigSubcommandConstant              = "config"
	gitConfigLocalFlagConstant               = "--local"
	gitConfigGetFlagConstant                 = "--get"
	gitConfigMissingKeyExitCodeConstant      = 1
	availabilityCheckErrorTemplateConstant   = "%w: %w"
	workTreeProbeErrorTemplateConstant       = "unable to probe %s: %w"
	configurationReadErrorTemplateConstant   = "unable to read %s in %s: %w"
	configurationWriteErrorTemplateConstant  = "unable to set %s=%s in %s: %w"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path argument.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrConfigurationKeyRequired indicates an empty configuration key argument.
var ErrConfigurationKeyRequired = errors.New(configurationKeyRequiredMessageConstant)

// ErrGitUnavailable indicates git could not be executed or rejected the version probe.
var ErrGitUnavailable = errors.New(gitUnavailableMessageConstant)

// RepositoryManager performs git operations against repositories on disk.
type RepositoryManager struct {
	executor shared.GitExecutor
}

var _ shared.GitRepositoryManager = (*RepositoryManager)(nil)

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckAvailability runs "git --version" in the ambient working directory and returns the reported version.
func (manager *RepositoryManager) CheckAvailability(executionContext context.Context) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitVersionFlagConstant},
	})
	if executionError != nil {
		return "", fmt.Errorf(availabilityCheckErrorTemplateConstant, ErrGitUnavailable, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// IsInsideWorkTree reports whether path lies inside a git working tree.
// A non-zero exit from git is a negative answer; only failures to run git are returned as errors.
func (manager *RepositoryManager) IsInsideWorkTree(executionContext context.Context, path string) (bool, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return false, ErrRepositoryPathRequired
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitDirectoryFlagConstant, trimmedPath, gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		EnvironmentVariables: nonInteractiveEnvironment(),
	})
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			return false, nil
		}
		return false, fmt.Errorf(workTreeProbeErrorTemplateConstant, trimmedPath, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput) == gitInsideWorkTreeAffirmativeConstant, nil
}

// GetLocalConfiguration reads a repository-scoped configuration value.
// The boolean result is false when the key is not set.
func (manager *RepositoryManager) GetLocalConfiguration(executionContext context.Context, repositoryPath string, key string) (string, bool, error) {
	trimmedPath, trimmedKey, validationError := validateConfigurationTarget(repositoryPath, key)
	if validationError != nil {
		return "", false, validationError
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitConfigSubcommandConstant, gitConfigLocalFlagConstant, gitConfigGetFlagConstant, trimmedKey},
		WorkingDirectory:     trimmedPath,
		EnvironmentVariables: nonInteractiveEnvironment(),
	})
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) && failedError.Result.ExitCode == gitConfigMissingKeyExitCodeConstant {
			return "", false, nil
		}
		return "", false, fmt.Errorf(configurationReadErrorTemplateConstant, trimmedKey, trimmedPath, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), true, nil
}

// SetLocalConfiguration writes a repository-scoped configuration value.
func (manager *RepositoryManager) SetLocalConfiguration(executionContext context.Context, repositoryPath string, key string, value string) error {
	trimmedPath, trimmedKey, validationError := validateConfigurationTarget(repositoryPath, key)
	if validationError != nil {
		return validationError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitConfigSubcommandConstant, gitConfigLocalFlagConstant, trimmedKey, value},
		WorkingDirectory:     trimmedPath,
		EnvironmentVariables: nonInteractiveEnvironment(),
	})
	if executionError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, trimmedKey, value, trimmedPath, executionError)
	}
	return nil
}

func validateConfigurationTarget(repositoryPath string, key string) (string, string, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return "", "", ErrRepositoryPathRequired
	}
	trimmedKey := strings.TrimSpace(key)
	if len(trimmedKey) == 0 {
		return "", "", ErrConfigurationKeyRequired
	}
	return trimmedPath, trimmedKey, nil
}

func nonInteractiveEnvironment() map[string]string {
	return map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant}
}
