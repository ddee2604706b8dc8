package pullstrategy

import (
	"fmt"
	"strings"
)

const (
	// ExitCodeGitUnavailable is returned when git cannot be executed. Invalid configuration shares it.
	ExitCodeGitUnavailable = 1
	// ExitCodeNotFound is returned when no candidate repository exists.
	ExitCodeNotFound = 2
	// ExitCodeAmbiguous is returned when more than one candidate repository exists.
	ExitCodeAmbiguous = 3
	// ExitCodeConfigurationWriteFailed is returned when a configuration write fails.
	ExitCodeConfigurationWriteFailed = 4

	gitUnavailableErrorTemplateConstant         = "'git' not found on PATH: %v"
	notFoundErrorTemplateConstant               = "No matching Git repo found under '%s' with prefix '%s' (within depth %d)."
	notFoundCauseTemplateConstant               = "\n  %v"
	notFoundHintConstant                        = "\nTip: run with --search-root ~/ or increase --max-depth if needed."
	ambiguousErrorHeaderConstant                = "Multiple matching repos found. Please disambiguate:"
	ambiguousCandidateTemplateConstant          = "\n  - %s"
	ambiguousHintConstant                       = "\n\nRe-run with --search-root pointed closer to the right one, or cd there and run this command from inside it."
	configurationWriteErrorTemplateConstant     = "Error configuring repo at %s:\n  %v"
	configurationAppliedSettingsTitleConstant   = "\n  already applied:"
	configurationAppliedSettingTemplateConstant = " %s=%s"
)

// GitUnavailableError reports that the git executable could not be run.
type GitUnavailableError struct {
	Cause error
}

// Error describes the missing executable.
func (unavailableError GitUnavailableError) Error() string {
	return fmt.Sprintf(gitUnavailableErrorTemplateConstant, unavailableError.Cause)
}

// Unwrap exposes the underlying execution failure.
func (unavailableError GitUnavailableError) Unwrap() error {
	return unavailableError.Cause
}

// ExitCode maps the error to the process exit status.
func (unavailableError GitUnavailableError) ExitCode() int {
	return ExitCodeGitUnavailable
}

// NotFoundError reports that no prefix-named working tree exists within the depth bound.
// Cause is set when the search root itself could not be read.
type NotFoundError struct {
	SearchRoot string
	Prefix     string
	MaxDepth   int
	Cause      error
}

// Error describes the empty search together with a hint to widen it.
func (notFoundError NotFoundError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.SearchRoot, notFoundError.Prefix, notFoundError.MaxDepth))
	if notFoundError.Cause != nil {
		builder.WriteString(fmt.Sprintf(notFoundCauseTemplateConstant, notFoundError.Cause))
	}
	builder.WriteString(notFoundHintConstant)
	return builder.String()
}

// Unwrap exposes the filesystem error for unreadable search roots.
func (notFoundError NotFoundError) Unwrap() error {
	return notFoundError.Cause
}

// ExitCode maps the error to the process exit status.
func (notFoundError NotFoundError) ExitCode() int {
	return ExitCodeNotFound
}

// AmbiguousError reports more than one candidate repository.
type AmbiguousError struct {
	Candidates []string
}

// Error lists every candidate followed by a hint to narrow the search.
func (ambiguousError AmbiguousError) Error() string {
	var builder strings.Builder
	builder.WriteString(ambiguousErrorHeaderConstant)
	for _, candidate := range ambiguousError.Candidates {
		builder.WriteString(fmt.Sprintf(ambiguousCandidateTemplateConstant, candidate))
	}
	builder.WriteString(ambiguousHintConstant)
	return builder.String()
}

// ExitCode maps the error to the process exit status.
func (ambiguousError AmbiguousError) ExitCode() int {
	return ExitCodeAmbiguous
}

// ConfigurationWriteError reports a failed local configuration write.
// Applied lists the settings written before the failure.
type ConfigurationWriteError struct {
	RepositoryPath string
	Failed         Setting
	Applied        []Setting
	Cause          error
}

// Error describes the failure and any settings that were already written.
func (writeError ConfigurationWriteError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(configurationWriteErrorTemplateConstant, writeError.RepositoryPath, writeError.Cause))
	if len(writeError.Applied) > 0 {
		builder.WriteString(configurationAppliedSettingsTitleConstant)
		for _, setting := range writeError.Applied {
			builder.WriteString(fmt.Sprintf(configurationAppliedSettingTemplateConstant, setting.Key, setting.Value))
		}
	}
	return builder.String()
}

// Unwrap exposes the underlying git failure.
func (writeError ConfigurationWriteError) Unwrap() error {
	return writeError.Cause
}

// ExitCode maps the error to the process exit status.
func (writeError ConfigurationWriteError) ExitCode() int {
	return ExitCodeConfigurationWriteFailed
}
