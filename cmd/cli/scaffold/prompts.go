package scaffold

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/scaffold"
)

const (
	promptsUseConstant      = "prompts TEMPLATE"
	promptsShortDescription = "List the prompts a template declares"
	promptsLongDescription  = "prompts prints the template manifest's declared prompts with their defaults without rendering anything."

	promptsHeaderOutputTemplate         = "template %s declares %d prompt(s):\n"
	promptOutputTemplateConstant        = "  %s%s%s\n"
	promptRequiredMarkerConstant        = " (required)"
	promptDefaultMarkerTemplateConstant = " [default: %s]"
)

// PromptsCommandBuilder assembles the scaffold prompts command.
type PromptsCommandBuilder struct {
	LoggerProvider LoggerProvider
}

// Build constructs the scaffold prompts command.
func (builder *PromptsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   promptsUseConstant,
		Short: promptsShortDescription,
		Long:  promptsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *PromptsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	renderingService, serviceError := scaffold.NewService(scaffold.Dependencies{
		Logger:   resolveLogger(builder.LoggerProvider),
		Renderer: scaffold.NewRenderer(),
	})
	if serviceError != nil {
		return serviceError
	}

	loadedManifest, promptsError := renderingService.Prompts(arguments[0])
	if promptsError != nil {
		return promptsError
	}

	fmt.Fprintf(command.OutOrStdout(), promptsHeaderOutputTemplate, loadedManifest.Name, len(loadedManifest.Prompts))
	for _, declaredPrompt := range loadedManifest.Prompts {
		requiredMarker := ""
		if declaredPrompt.Required {
			requiredMarker = promptRequiredMarkerConstant
		}
		defaultMarker := ""
		if len(declaredPrompt.Default) > 0 {
			defaultMarker = fmt.Sprintf(promptDefaultMarkerTemplateConstant, declaredPrompt.Default)
		}
		fmt.Fprintf(command.OutOrStdout(), promptOutputTemplateConstant, declaredPrompt.Name, requiredMarker, defaultMarker)
	}

	return nil
}
