package utils

import (
	"bytes"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeyDotSeparatorConstant           = "."
	environmentKeyUnderscoreSeparatorConstant    = "_"
	environmentListSeparatorConstant             = ","
	configurationReadFailureTemplateConstant     = "failed to read configuration: %w"
	configurationDecodeFailureTemplateConstant   = "failed to parse configuration: %w"
	embeddedDefaultsMergeFailureTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName    string
	configurationType    string
	environmentPrefix    string
	searchPaths          []string
	environmentReplacer  *strings.Replacer
	embeddedDefaults     []byte
	embeddedDefaultsType string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	copiedSearchPaths := make([]string, len(searchPaths))
	copy(copiedSearchPaths, searchPaths)

	return &ConfigurationLoader{
		configurationName:   configurationName,
		configurationType:   configurationType,
		environmentPrefix:   environmentPrefix,
		searchPaths:         copiedSearchPaths,
		environmentReplacer: strings.NewReplacer(environmentKeyDotSeparatorConstant, environmentKeyUnderscoreSeparatorConstant),
	}
}

// SetEmbeddedDefaults stores embedded configuration data merged beneath user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedDefaults(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedDefaults = nil
	loader.embeddedDefaultsType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	copiedData := make([]byte, len(configurationData))
	copy(copiedData, configurationData)
	loader.embeddedDefaults = copiedData
}

// LoadConfiguration populates targetConfiguration using configuration files, defaults, and environment variables.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if len(loader.embeddedDefaults) > 0 {
		embeddedType := loader.configurationType
		if len(loader.embeddedDefaultsType) > 0 {
			embeddedType = loader.embeddedDefaultsType
		}

		viperInstance.SetConfigType(embeddedType)
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedDefaults)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedDefaultsMergeFailureTemplateConstant, mergeError)
		}
		viperInstance.SetConfigType(loader.configurationType)
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentReplacer)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	readError := viperInstance.MergeInConfig()
	if readError != nil {
		if _, isNotFound := readError.(viper.ConfigFileNotFoundError); !isNotFound {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadFailureTemplateConstant, readError)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(environmentListSeparatorConstant),
	))
	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, decodeHook); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeFailureTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
