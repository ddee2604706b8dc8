package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitConfigSubcommandNameConstant   = "config"
	gitConfigGetFlagConstant          = "--get"
	gitVersionFlagConstant            = "--version"
	gitDirectoryFlagConstant          = "-C"
	gitLongFlagPrefixConstant         = "--"
)

const (
	gitWorkTreeStartTemplateConstant             = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant           = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant           = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant  = "Could not analyze %s: %s"
	gitConfigSetStartTemplateConstant            = "Setting %s to %s in %s"
	gitConfigSetSuccessTemplateConstant          = "Set %s to %s in %s"
	gitConfigSetFailureTemplateConstant          = "Failed to set %s to %s in %s (exit code %d%s)"
	gitConfigSetExecutionFailureTemplateConstant = "Unable to set %s to %s in %s: %s"
	gitConfigGetStartTemplateConstant            = "Reading %s in %s"
	gitConfigGetSuccessTemplateConstant          = "%s in %s is %s"
	gitConfigGetFailureTemplateConstant          = "%s is not set in %s (exit code %d%s)"
	gitConfigGetExecutionFailureTemplateConstant = "Unable to read %s in %s: %s"
	gitVersionStartTemplateConstant              = "Checking git availability"
	gitVersionSuccessTemplateConstant            = "Found %s"
	gitVersionFailureTemplateConstant            = "git availability check failed (exit code %d%s)"
	gitVersionExecutionFailureTemplateConstant   = "git is unavailable: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// IsProbe reports whether a non-zero exit of the command is an expected answer rather than a fault.
func (formatter CommandMessageFormatter) IsProbe(command ShellCommand) bool {
	if command.Name != CommandGit {
		return false
	}
	arguments := formatter.stripDirectoryOption(command.Details.Arguments)
	if len(arguments) == 0 {
		return false
	}
	switch strings.TrimSpace(arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		return containsArgument(arguments, gitWorkTreeFlagConstant)
	case gitConfigSubcommandNameConstant:
		return containsArgument(arguments, gitConfigGetFlagConstant)
	default:
		return false
	}
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		return formatter.describeGitMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := formatter.stripDirectoryOption(command.Details.Arguments)
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(arguments[0]) {
	case gitVersionFlagConstant:
		return formatter.describeGitVersionMessage(result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		if containsArgument(arguments, gitWorkTreeFlagConstant) {
			return formatter.describeGitWorkTreeMessage(command, result, failure, stage)
		}
	case gitConfigSubcommandNameConstant:
		if containsArgument(arguments, gitConfigGetFlagConstant) {
			return formatter.describeGitConfigGetMessage(command, arguments, result, failure, stage)
		}
		return formatter.describeGitConfigSetMessage(command, arguments, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitVersionMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitVersionStartTemplateConstant
	case messageStageSuccess:
		return fmt.Sprintf(gitVersionSuccessTemplateConstant, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitVersionFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitVersionExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitWorkTreeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	repositoryPath := formatter.describeTargetDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitWorkTreeStartTemplateConstant, repositoryPath)
	case messageStageSuccess:
		return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, repositoryPath)
	case messageStageFailure:
		return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, repositoryPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, repositoryPath, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitConfigSetMessage(command ShellCommand, arguments []string, result ExecutionResult, failure error, stage messageStage) string {
	repositoryPath := formatter.describeTargetDirectory(command)
	positional := formatter.positionalArguments(arguments[1:])
	key := formatter.ensureValue(formatter.argumentAtIndex(positional, 0))
	value := formatter.ensureValue(formatter.argumentAtIndex(positional, 1))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigSetStartTemplateConstant, key, value, repositoryPath)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigSetSuccessTemplateConstant, key, value, repositoryPath)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigSetFailureTemplateConstant, key, value, repositoryPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitConfigSetExecutionFailureTemplateConstant, key, value, repositoryPath, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitConfigGetMessage(command ShellCommand, arguments []string, result ExecutionResult, failure error, stage messageStage) string {
	repositoryPath := formatter.describeTargetDirectory(command)
	key := formatter.ensureValue(formatter.argumentAtIndex(formatter.positionalArguments(arguments[1:]), 0))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigGetStartTemplateConstant, key, repositoryPath)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigGetSuccessTemplateConstant, key, repositoryPath, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitConfigGetFailureTemplateConstant, key, repositoryPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitConfigGetExecutionFailureTemplateConstant, key, repositoryPath, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

// describeTargetDirectory prefers an explicit -C directory over the process working directory.
func (formatter CommandMessageFormatter) describeTargetDirectory(command ShellCommand) string {
	arguments := command.Details.Arguments
	if len(arguments) >= 2 && strings.TrimSpace(arguments[0]) == gitDirectoryFlagConstant {
		if directory := strings.TrimSpace(arguments[1]); len(directory) > 0 {
			return directory
		}
	}
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) stripDirectoryOption(arguments []string) []string {
	if len(arguments) >= 2 && strings.TrimSpace(arguments[0]) == gitDirectoryFlagConstant {
		return arguments[2:]
	}
	return arguments
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if strings.HasPrefix(strings.TrimSpace(argument), gitLongFlagPrefixConstant) {
			continue
		}
		positional = append(positional, argument)
	}
	return positional
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
