package pullstrategy

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/temirov/pullstrategy/internal/repos/shared"
)

const (
	// PullRebaseKeyConstant is the git configuration key selecting rebase-based pulls.
	PullRebaseKeyConstant = "pull.rebase"
	// PullFastForwardKeyConstant is the git configuration key holding the fast-forward policy.
	PullFastForwardKeyConstant = "pull.ff"

	pullRebaseDisabledValueConstant        = "false"
	appliedSettingMessageTemplate          = "[OK] %s: set %s = %s\n"
	plannedSettingMessageTemplate          = "[DRY-RUN] %s: %s %s -> %s\n"
	unsetValuePlaceholderConstant          = "<unset>"
	configurationStoreMissingMessage       = "local configuration store not configured"
	configurationReadErrorTemplateConstant = "unable to read current configuration of %s: %w"
)

// ErrConfigurationStoreNotConfigured indicates the Applier was built without a configuration store.
var ErrConfigurationStoreNotConfigured = errors.New(configurationStoreMissingMessage)

// Setting is a single local git configuration assignment.
type Setting struct {
	Key   string
	Value string
}

// PlannedChange pairs a setting with the value currently stored in the repository.
type PlannedChange struct {
	Setting        Setting
	CurrentValue   string
	CurrentPresent bool
}

// ApplyResult lists the settings written to a repository, in order.
type ApplyResult struct {
	RepositoryPath string
	Applied        []Setting
}

// PullStrategySettings returns the settings that select merge-based pulls with the requested fast-forward policy.
func PullStrategySettings(fastForward bool) []Setting {
	return []Setting{
		{Key: PullRebaseKeyConstant, Value: pullRebaseDisabledValueConstant},
		{Key: PullFastForwardKeyConstant, Value: strconv.FormatBool(fastForward)},
	}
}

// ApplierDependencies enumerates collaborators required by the Applier.
type ApplierDependencies struct {
	ConfigurationStore shared.LocalConfigurationStore
	Reporter           shared.Reporter
}

// Applier writes the pull strategy settings into a repository's local configuration.
type Applier struct {
	store    shared.LocalConfigurationStore
	reporter shared.Reporter
}

// NewApplier constructs an Applier; a nil Reporter writes to stdout.
func NewApplier(dependencies ApplierDependencies) (*Applier, error) {
	if dependencies.ConfigurationStore == nil {
		return nil, ErrConfigurationStoreNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Applier{store: dependencies.ConfigurationStore, reporter: reporter}, nil
}

// Apply writes pull.rebase=false followed by pull.ff, stopping at the first failure.
// The returned error is a ConfigurationWriteError naming the settings already written.
func (applier *Applier) Apply(executionContext context.Context, repositoryPath string, fastForward bool) (ApplyResult, error) {
	result := ApplyResult{RepositoryPath: repositoryPath}
	for _, setting := range PullStrategySettings(fastForward) {
		writeError := applier.store.SetLocalConfiguration(executionContext, repositoryPath, setting.Key, setting.Value)
		if writeError != nil {
			return result, ConfigurationWriteError{
				RepositoryPath: repositoryPath,
				Failed:         setting,
				Applied:        append([]Setting(nil), result.Applied...),
				Cause:          writeError,
			}
		}
		result.Applied = append(result.Applied, setting)
		applier.reporter.Printf(appliedSettingMessageTemplate, repositoryPath, setting.Key, setting.Value)
	}
	return result, nil
}

// Preview reports what Apply would change without writing anything.
func (applier *Applier) Preview(executionContext context.Context, repositoryPath string, fastForward bool) ([]PlannedChange, error) {
	settings := PullStrategySettings(fastForward)
	changes := make([]PlannedChange, 0, len(settings))
	for _, setting := range settings {
		currentValue, currentPresent, readError := applier.store.GetLocalConfiguration(executionContext, repositoryPath, setting.Key)
		if readError != nil {
			return nil, fmt.Errorf(configurationReadErrorTemplateConstant, repositoryPath, readError)
		}

		displayedValue := currentValue
		if !currentPresent {
			displayedValue = unsetValuePlaceholderConstant
		}
		applier.reporter.Printf(plannedSettingMessageTemplate, repositoryPath, setting.Key, displayedValue, setting.Value)

		changes = append(changes, PlannedChange{Setting: setting, CurrentValue: currentValue, CurrentPresent: currentPresent})
	}
	return changes, nil
}
