package repos

import "strings"

const (
	configurationAPIBaseURLKeyConstant   = "api_base_url"
	configurationOrganizationKeyConstant = "organization"
	configurationKeySeparatorConstant    = "."
)

// ToolsConfiguration captures configuration shared by repository commands.
type ToolsConfiguration struct {
	APIBaseURL   string `mapstructure:"api_base_url"`
	Organization string `mapstructure:"organization"`
}

// DefaultToolsConfiguration returns baseline configuration values for repository commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	return ToolsConfiguration{
		APIBaseURL:   "",
		Organization: "",
	}
}

// DefaultConfigurationValues produces Viper defaults for repository commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationAPIBaseURLKeyConstant:   defaults.APIBaseURL,
		rootKey + configurationKeySeparatorConstant + configurationOrganizationKeyConstant: defaults.Organization,
	}
}

// sanitize normalizes repository command configuration values.
func (configuration ToolsConfiguration) sanitize() ToolsConfiguration {
	sanitized := configuration
	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)
	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	return sanitized
}
