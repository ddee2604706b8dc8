package pullstrategy_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pullstrategy/internal/pullstrategy"
	"github.com/temirov/pullstrategy/internal/repos/shared"
)

func TestNewApplierRequiresConfigurationStore(testInstance *testing.T) {
	_, creationError := pullstrategy.NewApplier(pullstrategy.ApplierDependencies{})
	require.ErrorIs(testInstance, creationError, pullstrategy.ErrConfigurationStoreNotConfigured)
}

func TestPullStrategySettings(testInstance *testing.T) {
	require.Equal(testInstance, []pullstrategy.Setting{
		{Key: pullstrategy.PullRebaseKeyConstant, Value: "false"},
		{Key: pullstrategy.PullFastForwardKeyConstant, Value: "true"},
	}, pullstrategy.PullStrategySettings(true))
	require.Equal(testInstance, "false", pullstrategy.PullStrategySettings(false)[1].Value)
}

func TestApplierFirstWriteFailureAppliesNothing(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.failingKey = pullstrategy.PullRebaseKeyConstant
	output := &bytes.Buffer{}
	applier, creationError := pullstrategy.NewApplier(pullstrategy.ApplierDependencies{ConfigurationStore: manager, Reporter: shared.NewWriterReporter(output)})
	require.NoError(testInstance, creationError)

	result, applyError := applier.Apply(context.Background(), serviceTestRepositoryConstant, true)

	var writeError pullstrategy.ConfigurationWriteError
	require.ErrorAs(testInstance, applyError, &writeError)
	require.Equal(testInstance, pullstrategy.PullRebaseKeyConstant, writeError.Failed.Key)
	require.Empty(testInstance, writeError.Applied)
	require.NotContains(testInstance, writeError.Error(), "already applied")
	require.Empty(testInstance, result.Applied)
	require.Empty(testInstance, output.String())
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"tools.pull_strategy.search_root":  "",
		"tools.pull_strategy.prefix":       pullstrategy.DefaultPrefixConstant,
		"tools.pull_strategy.max_depth":    pullstrategy.DefaultMaxDepthConstant,
		"tools.pull_strategy.fast_forward": true,
		"tools.pull_strategy.dry_run":      false,
	}, pullstrategy.DefaultConfigurationValues("tools.pull_strategy"))
}
