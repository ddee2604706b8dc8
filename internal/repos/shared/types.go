package shared

import (
	"context"

	"github.com/temirov/pullstrategy/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitAvailabilityChecker confirms the git executable can be invoked.
type GitAvailabilityChecker interface {
	CheckAvailability(executionContext context.Context) (string, error)
}

// WorkingTreeProber answers whether a path lies inside a git working tree.
type WorkingTreeProber interface {
	IsInsideWorkTree(executionContext context.Context, path string) (bool, error)
}

// LocalConfigurationStore reads and writes repository-scoped git configuration.
type LocalConfigurationStore interface {
	GetLocalConfiguration(executionContext context.Context, repositoryPath string, key string) (string, bool, error)
	SetLocalConfiguration(executionContext context.Context, repositoryPath string, key string, value string) error
}

// GitRepositoryManager combines every git capability the pull strategy workflow needs.
type GitRepositoryManager interface {
	GitAvailabilityChecker
	WorkingTreeProber
	LocalConfigurationStore
}
