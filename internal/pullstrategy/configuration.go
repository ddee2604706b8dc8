package pullstrategy

import "strings"

const (
	configurationSearchRootKeyConstant  = "search_root"
	configurationPrefixKeyConstant      = "prefix"
	configurationMaxDepthKeyConstant    = "max_depth"
	configurationFastForwardKeyConstant = "fast_forward"
	configurationDryRunKeyConstant      = "dry_run"
	configurationKeySeparatorConstant   = "."
	// DefaultPrefixConstant is the directory name prefix searched for when none is configured.
	DefaultPrefixConstant = "hwrs564a_course_materials_"
	// DefaultMaxDepthConstant bounds the directory walk when no depth is configured.
	DefaultMaxDepthConstant = 3
)

// CommandConfiguration captures configuration values for the pull strategy command.
type CommandConfiguration struct {
	SearchRoot  string `mapstructure:"search_root"`
	Prefix      string `mapstructure:"prefix"`
	MaxDepth    int    `mapstructure:"max_depth"`
	FastForward bool   `mapstructure:"fast_forward"`
	DryRun      bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for the pull strategy command.
// An empty search root resolves to the working directory at execution time.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SearchRoot:  "",
		Prefix:      DefaultPrefixConstant,
		MaxDepth:    DefaultMaxDepthConstant,
		FastForward: true,
		DryRun:      false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the pull strategy command rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		qualifyConfigurationKey(rootKey, configurationSearchRootKeyConstant):  defaults.SearchRoot,
		qualifyConfigurationKey(rootKey, configurationPrefixKeyConstant):      defaults.Prefix,
		qualifyConfigurationKey(rootKey, configurationMaxDepthKeyConstant):    defaults.MaxDepth,
		qualifyConfigurationKey(rootKey, configurationFastForwardKeyConstant): defaults.FastForward,
		qualifyConfigurationKey(rootKey, configurationDryRunKeyConstant):      defaults.DryRun,
	}
}

// sanitize trims configuration values; the prefix is not trimmed because whitespace may be part of a directory name.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SearchRoot = strings.TrimSpace(configuration.SearchRoot)
	return sanitized
}

func qualifyConfigurationKey(rootKey string, key string) string {
	if len(rootKey) == 0 {
		return key
	}
	return rootKey + configurationKeySeparatorConstant + key
}
