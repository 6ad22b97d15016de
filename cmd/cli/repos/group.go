package repos

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "repos"
	groupShortDescription = "Administer GitHub repositories"
	groupLongDescription  = "repos groups subcommands that create repositories and clone settings between them."
)

// CommandGroupBuilder assembles the repos command group.
type CommandGroupBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver
}

// Build constructs the repos command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	createBuilder := CreateCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
		GatewayResolver:       builder.GatewayResolver,
	}
	createCommand, createError := createBuilder.Build()
	if createError != nil {
		return nil, createError
	}
	command.AddCommand(createCommand)

	labelsBuilder := CloneLabelsCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
		GatewayResolver:       builder.GatewayResolver,
	}
	labelsCommand, labelsError := labelsBuilder.Build()
	if labelsError != nil {
		return nil, labelsError
	}
	command.AddCommand(labelsCommand)

	teamsBuilder := CloneTeamsCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
		GatewayResolver:       builder.GatewayResolver,
	}
	teamsCommand, teamsError := teamsBuilder.Build()
	if teamsError != nil {
		return nil, teamsError
	}
	command.AddCommand(teamsCommand)

	protectionBuilder := CloneProtectionCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
		GatewayResolver:       builder.GatewayResolver,
	}
	protectionCommand, protectionError := protectionBuilder.Build()
	if protectionError != nil {
		return nil, protectionError
	}
	command.AddCommand(protectionCommand)

	defaultBranchBuilder := CloneDefaultBranchCommandBuilder{
		LoggerProvider:        builder.LoggerProvider,
		ConfigurationProvider: builder.ConfigurationProvider,
		GatewayResolver:       builder.GatewayResolver,
	}
	defaultBranchCommand, defaultBranchError := defaultBranchBuilder.Build()
	if defaultBranchError != nil {
		return nil, defaultBranchError
	}
	command.AddCommand(defaultBranchCommand)

	return command, nil
}
