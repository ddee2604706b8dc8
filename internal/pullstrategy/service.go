package pullstrategy

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pullstrategy/internal/execshell"
	"github.com/temirov/pullstrategy/internal/repos/discovery"
	"github.com/temirov/pullstrategy/internal/repos/shared"
)

const (
	repositoryManagerMissingMessageConstant = "git repository manager not configured"
	locatorMissingMessageConstant           = "repository locator not configured"
	locateErrorTemplateConstant             = "repository search failed: %w"
	completionMessageTemplateConstant       = "\nDone. Repo configured: %s\n"
	dryRunCompletionMessageTemplateConstant = "\nDry run. Repo left unchanged: %s\n"
	gitAvailableLogMessageConstant          = "git available"
	candidatesLocatedLogMessageConstant     = "repository search finished"
	repositorySelectedLogMessageConstant    = "repository selected"
	logFieldGitVersionConstant              = "git_version"
	logFieldSearchRootConstant              = "search_root"
	logFieldPrefixConstant                  = "prefix"
	logFieldMaxDepthConstant                = "max_depth"
	logFieldCandidateCountConstant          = "candidate_count"
	logFieldRepositoryConstant              = "repository"
	logFieldFastForwardConstant             = "fast_forward"
	logFieldDryRunConstant                  = "dry_run"
)

// ErrRepositoryManagerNotConfigured indicates the git repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrLocatorNotConfigured indicates the repository locator dependency was missing.
var ErrLocatorNotConfigured = errors.New(locatorMissingMessageConstant)

// RepositoryLocator finds candidate repositories beneath a search root.
type RepositoryLocator interface {
	Locate(executionContext context.Context, options discovery.Options) ([]discovery.Candidate, error)
}

// Options configures a single pull strategy run.
type Options struct {
	SearchRoot  string
	Prefix      string
	MaxDepth    int
	FastForward bool
	DryRun      bool
}

// Result describes a completed run.
type Result struct {
	RepositoryPath string
	Applied        []Setting
	Planned        []PlannedChange
}

// ServiceDependencies enumerates collaborators required by the Service.
type ServiceDependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Locator           RepositoryLocator
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Service runs the availability check, the repository search, disambiguation, and the configuration update.
type Service struct {
	manager  shared.GitRepositoryManager
	locator  RepositoryLocator
	applier  *Applier
	reporter shared.Reporter
	logger   *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.Locator == nil {
		return nil, ErrLocatorNotConfigured
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	applier, applierError := NewApplier(ApplierDependencies{ConfigurationStore: dependencies.RepositoryManager, Reporter: reporter})
	if applierError != nil {
		return nil, applierError
	}

	return &Service{
		manager:  dependencies.RepositoryManager,
		locator:  dependencies.Locator,
		applier:  applier,
		reporter: reporter,
		logger:   logger,
	}, nil
}

// Run configures the single repository matching the options.
// Nothing is written unless exactly one candidate is found.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	gitVersion, availabilityError := service.manager.CheckAvailability(executionContext)
	if availabilityError != nil {
		return Result{}, GitUnavailableError{Cause: availabilityError}
	}
	service.logger.Debug(gitAvailableLogMessageConstant, zap.String(logFieldGitVersionConstant, gitVersion))

	candidates, locateError := service.locator.Locate(executionContext, discovery.Options{
		SearchRoot: options.SearchRoot,
		Prefix:     options.Prefix,
		MaxDepth:   options.MaxDepth,
	})
	if locateError != nil {
		return Result{}, classifyLocateError(options, locateError)
	}

	service.logger.Info(
		candidatesLocatedLogMessageConstant,
		zap.String(logFieldSearchRootConstant, options.SearchRoot),
		zap.String(logFieldPrefixConstant, options.Prefix),
		zap.Int(logFieldMaxDepthConstant, options.MaxDepth),
		zap.Int(logFieldCandidateCountConstant, len(candidates)),
	)

	repositoryPath, selectionError := Disambiguate(options, discovery.Paths(candidates))
	if selectionError != nil {
		return Result{}, selectionError
	}

	service.logger.Info(
		repositorySelectedLogMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.Bool(logFieldFastForwardConstant, options.FastForward),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	if options.DryRun {
		plannedChanges, previewError := service.applier.Preview(executionContext, repositoryPath, options.FastForward)
		if previewError != nil {
			return Result{RepositoryPath: repositoryPath}, previewError
		}
		service.reporter.Printf(dryRunCompletionMessageTemplateConstant, repositoryPath)
		return Result{RepositoryPath: repositoryPath, Planned: plannedChanges}, nil
	}

	applyResult, applyError := service.applier.Apply(executionContext, repositoryPath, options.FastForward)
	if applyError != nil {
		return Result{RepositoryPath: repositoryPath, Applied: applyResult.Applied}, applyError
	}

	service.reporter.Printf(completionMessageTemplateConstant, repositoryPath)
	return Result{RepositoryPath: repositoryPath, Applied: applyResult.Applied}, nil
}

// Disambiguate selects the only candidate, or reports a not-found or ambiguous outcome.
func Disambiguate(options Options, candidatePaths []string) (string, error) {
	switch len(candidatePaths) {
	case 0:
		return "", NotFoundError{SearchRoot: options.SearchRoot, Prefix: options.Prefix, MaxDepth: options.MaxDepth}
	case 1:
		return candidatePaths[0], nil
	default:
		return "", AmbiguousError{Candidates: append([]string(nil), candidatePaths...)}
	}
}

func classifyLocateError(options Options, locateError error) error {
	var rootError discovery.SearchRootError
	if errors.As(locateError, &rootError) {
		return NotFoundError{SearchRoot: options.SearchRoot, Prefix: options.Prefix, MaxDepth: options.MaxDepth, Cause: rootError.Cause}
	}
	if errors.Is(locateError, execshell.ErrExecutableNotFound) {
		return GitUnavailableError{Cause: locateError}
	}
	return fmt.Errorf(locateErrorTemplateConstant, locateError)
}
