package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest expected at the root of every template.
const ManifestFileName = "scaffold.yaml"

const (
	manifestMissingMessageConstant       = "template manifest not found"
	promptNameRequiredMessageConstant    = "manifest prompt name must be provided"
	manifestReadFailureTemplateConstant  = "could not read template manifest %s: %w"
	manifestParseFailureTemplateConstant = "could not parse template manifest %s: %w"
	duplicatePromptTemplateConstant      = "duplicate prompt name %q in template manifest"
)

// ErrManifestMissing indicates the template directory lacks a manifest.
var ErrManifestMissing = errors.New(manifestMissingMessageConstant)

// ErrPromptNameRequired indicates a manifest prompt without a name.
var ErrPromptNameRequired = errors.New(promptNameRequiredMessageConstant)

// Prompt declares a single answer the template expects.
type Prompt struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Default     string `yaml:"default"`
	Required    bool   `yaml:"required"`
}

// Manifest describes a template and the prompts it declares.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Prompts     []Prompt `yaml:"prompts"`
}

// LoadManifest reads and validates the manifest inside templateDirectory.
func LoadManifest(templateDirectory string) (Manifest, error) {
	manifestPath := filepath.Join(templateDirectory, ManifestFileName)

	manifestContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return Manifest{}, fmt.Errorf(manifestReadFailureTemplateConstant, manifestPath, ErrManifestMissing)
		}
		return Manifest{}, fmt.Errorf(manifestReadFailureTemplateConstant, manifestPath, readError)
	}

	var loadedManifest Manifest
	if parseError := yaml.Unmarshal(manifestContent, &loadedManifest); parseError != nil {
		return Manifest{}, fmt.Errorf(manifestParseFailureTemplateConstant, manifestPath, parseError)
	}

	seenPromptNames := map[string]bool{}
	for _, declaredPrompt := range loadedManifest.Prompts {
		trimmedName := strings.TrimSpace(declaredPrompt.Name)
		if len(trimmedName) == 0 {
			return Manifest{}, ErrPromptNameRequired
		}
		if seenPromptNames[trimmedName] {
			return Manifest{}, fmt.Errorf(duplicatePromptTemplateConstant, trimmedName)
		}
		seenPromptNames[trimmedName] = true
	}

	return loadedManifest, nil
}
