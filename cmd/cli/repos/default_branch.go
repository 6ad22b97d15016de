package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/repos/defaultbranch"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	cloneDefaultBranchUseConstant      = "clone-default-branch SOURCE DEST"
	cloneDefaultBranchShortDescription = "Copy the default branch setting between repositories"
	cloneDefaultBranchLongDescription  = "clone-default-branch sets the destination repository's default branch to the source repository's default branch."

	defaultBranchOutputTemplate = "default branch of %s set to %s\n"
)

// CloneDefaultBranchCommandBuilder assembles the repos clone-default-branch command.
type CloneDefaultBranchCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver

	organizationSourceFlagValue      string
	organizationDestinationFlagValue string
}

// Build constructs the repos clone-default-branch command.
func (builder *CloneDefaultBranchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneDefaultBranchUseConstant,
		Short: cloneDefaultBranchShortDescription,
		Long:  cloneDefaultBranchLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.organizationSourceFlagValue, orgSourceFlagNameConstant, "", orgSourceFlagUsageConstant)
	command.Flags().StringVar(&builder.organizationDestinationFlagValue, orgDestFlagNameConstant, "", orgDestFlagUsageConstant)

	return command, nil
}

func (builder *CloneDefaultBranchCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	gateway, gatewayError := resolveGateway(builder.GatewayResolver, command.Context(), configuration)
	if gatewayError != nil {
		return gatewayError
	}

	sourceOwner, sourceOwnerError := resolveRepositoryOwner(command.Context(), gateway, builder.organizationSourceFlagValue, configuration.Organization)
	if sourceOwnerError != nil {
		return sourceOwnerError
	}

	destinationOwner, destinationOwnerError := resolveRepositoryOwner(command.Context(), gateway, builder.organizationDestinationFlagValue, configuration.Organization)
	if destinationOwnerError != nil {
		return destinationOwnerError
	}

	cloningService, serviceError := defaultbranch.NewService(defaultbranch.Dependencies{
		Logger:  resolveLogger(builder.LoggerProvider),
		Gateway: gateway,
	})
	if serviceError != nil {
		return serviceError
	}

	destinationReference := shared.RepositoryReference{Owner: destinationOwner, Name: arguments[1]}
	cloningResult, cloningError := cloningService.Clone(command.Context(), defaultbranch.Options{
		Source:      shared.RepositoryReference{Owner: sourceOwner, Name: arguments[0]},
		Destination: destinationReference,
	})
	if cloningError != nil {
		return cloningError
	}

	fmt.Fprintf(command.OutOrStdout(), defaultBranchOutputTemplate, destinationReference.String(), cloningResult.DefaultBranch)
	return nil
}

func (builder *CloneDefaultBranchCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
