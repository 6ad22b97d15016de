package scaffold

import "strings"

const (
	configurationOutputDirKeyConstant = "output_dir"
	configurationKeySeparatorConstant = "."
	defaultOutputDirectoryConstant    = "."
)

// ToolsConfiguration captures configuration for scaffold commands.
type ToolsConfiguration struct {
	OutputDirectory string `mapstructure:"output_dir"`
}

// DefaultToolsConfiguration returns baseline configuration values for scaffold commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	return ToolsConfiguration{
		OutputDirectory: defaultOutputDirectoryConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for scaffold commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOutputDirKeyConstant: defaults.OutputDirectory,
	}
}

// sanitize normalizes scaffold command configuration values.
func (configuration ToolsConfiguration) sanitize() ToolsConfiguration {
	sanitized := configuration
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	if len(sanitized.OutputDirectory) == 0 {
		sanitized.OutputDirectory = defaultOutputDirectoryConstant
	}
	return sanitized
}
