package scaffold

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "scaffold"
	groupShortDescription = "Render project templates"
	groupLongDescription  = "scaffold groups subcommands that render cookiecutter-style project templates."
)

// CommandGroupBuilder assembles the scaffold command group.
type CommandGroupBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
}

// Build constructs the scaffold command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	renderBuilder := RenderCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
	}
	renderCommand, renderError := renderBuilder.Build()
	if renderError != nil {
		return nil, renderError
	}
	command.AddCommand(renderCommand)

	promptsBuilder := PromptsCommandBuilder{
		LoggerProvider: builder.LoggerProvider,
	}
	promptsCommand, promptsError := promptsBuilder.Build()
	if promptsError != nil {
		return nil, promptsError
	}
	command.AddCommand(promptsCommand)

	return command, nil
}
