package pullstrategy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pullstrategy/internal/repos/dependencies"
	"github.com/temirov/pullstrategy/internal/repos/discovery"
	"github.com/temirov/pullstrategy/internal/repos/shared"
	pathutils "github.com/temirov/pullstrategy/internal/utils/path"
)

const (
	commandUseConstant                    = "pull-strategy"
	commandShortDescriptionConstant       = "Configure a course repository to pull with merges"
	commandLongDescriptionConstant        = "pull-strategy finds the single git repository whose directory name starts with the prefix beneath the search root and sets pull.rebase=false and pull.ff in its local configuration."
	unexpectedArgumentsMessageConstant    = "pull-strategy does not accept positional arguments"
	invalidConfigurationTemplateConstant  = "invalid configuration: %w"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	negativeMaxDepthTemplateConstant      = "%w: %d"
	flagSearchRootNameConstant            = "search-root"
	flagSearchRootDescriptionConstant     = "Directory to start searching from (default: current working directory)"
	flagPrefixNameConstant                = "prefix"
	flagPrefixDescriptionConstant         = "Repository directory name prefix to match"
	flagMaxDepthNameConstant              = "max-depth"
	flagMaxDepthDescriptionConstant       = "Maximum directory depth to search from the root"
	flagNoFastForwardNameConstant         = "no-ff"
	flagNoFastForwardDescriptionConstant  = "Set pull.ff=false so merges always create a merge commit"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Show the planned configuration changes without writing them"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

var searchRootHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// WorkingDirectoryProvider resolves the directory used when no search root is configured.
type WorkingDirectoryProvider func() (string, error)

// CommandBuilder assembles the Cobra command for the pull strategy workflow.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	FileSystem                   afero.Fs
	HumanReadableLoggingProvider func() bool
	WorkingDirectoryProvider     WorkingDirectoryProvider
}

// Build constructs the pull-strategy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagSearchRootNameConstant, "", flagSearchRootDescriptionConstant)
	command.Flags().String(flagPrefixNameConstant, defaults.Prefix, flagPrefixDescriptionConstant)
	command.Flags().Int(flagMaxDepthNameConstant, defaults.MaxDepth, flagMaxDepthDescriptionConstant)
	command.Flags().Bool(flagNoFastForwardNameConstant, false, flagNoFastForwardDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	locator, locatorError := discovery.NewLocator(discovery.LocatorDependencies{
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		Prober:     repositoryManager,
		Logger:     logger,
	})
	if locatorError != nil {
		return locatorError
	}

	service, serviceError := NewService(ServiceDependencies{
		RepositoryManager: repositoryManager,
		Locator:           locator,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
		Logger:            logger,
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (Options, error) {
	configuration := builder.resolveConfiguration()
	options := Options{
		SearchRoot:  configuration.SearchRoot,
		Prefix:      configuration.Prefix,
		MaxDepth:    configuration.MaxDepth,
		FastForward: configuration.FastForward,
		DryRun:      configuration.DryRun,
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagSearchRootNameConstant) {
		searchRootValue, _ := flagSet.GetString(flagSearchRootNameConstant)
		options.SearchRoot = strings.TrimSpace(searchRootValue)
	}
	if flagSet.Changed(flagPrefixNameConstant) {
		options.Prefix, _ = flagSet.GetString(flagPrefixNameConstant)
	}
	if flagSet.Changed(flagMaxDepthNameConstant) {
		options.MaxDepth, _ = flagSet.GetInt(flagMaxDepthNameConstant)
	}
	if flagSet.Changed(flagNoFastForwardNameConstant) {
		noFastForward, _ := flagSet.GetBool(flagNoFastForwardNameConstant)
		options.FastForward = !noFastForward
	}
	if flagSet.Changed(flagDryRunNameConstant) {
		options.DryRun, _ = flagSet.GetBool(flagDryRunNameConstant)
	}

	if len(options.Prefix) == 0 {
		return Options{}, fmt.Errorf(invalidConfigurationTemplateConstant, discovery.ErrPrefixRequired)
	}
	if options.MaxDepth < 0 {
		return Options{}, fmt.Errorf(invalidConfigurationTemplateConstant, fmt.Errorf(negativeMaxDepthTemplateConstant, discovery.ErrNegativeMaxDepth, options.MaxDepth))
	}

	if len(options.SearchRoot) == 0 {
		workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory()
		if workingDirectoryError != nil {
			return Options{}, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		options.SearchRoot = workingDirectory
	}
	options.SearchRoot = searchRootHomeDirectoryExpander.Expand(options.SearchRoot)

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if builder.WorkingDirectoryProvider == nil {
		return os.Getwd()
	}
	return builder.WorkingDirectoryProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
