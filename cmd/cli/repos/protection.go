package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/repos/protection"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	cloneProtectionUseConstant      = "clone-protection SOURCE DEST"
	cloneProtectionShortDescription = "Copy branch protection rules between repositories"
	cloneProtectionLongDescription  = "clone-protection copies branch protection rules from a source branch to a destination branch."

	branchSourceFlagNameConstant    = "branch-source"
	branchSourceFlagUsageConstant   = "Branch to read protection rules from."
	branchDestFlagNameConstant      = "branch-dest"
	branchDestFlagUsageConstant     = "Branch to apply protection rules to."
	noStatusChecksFlagNameConstant  = "no-status-checks"
	noStatusChecksFlagUsageConstant = "Skip required status checks when cloning protection rules."
	defaultProtectedBranchConstant  = "master"
	protectionAppliedOutputTemplate = "protection applied to %s@%s\n"
	protectionRemovedOutputTemplate = "protection removed from %s@%s\n"
)

// CloneProtectionCommandBuilder assembles the repos clone-protection command.
type CloneProtectionCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver

	organizationSourceFlagValue      string
	organizationDestinationFlagValue string
	sourceBranchFlagValue            string
	destinationBranchFlagValue       string
	noStatusChecksFlagValue          bool
}

// Build constructs the repos clone-protection command.
func (builder *CloneProtectionCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneProtectionUseConstant,
		Short: cloneProtectionShortDescription,
		Long:  cloneProtectionLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.organizationSourceFlagValue, orgSourceFlagNameConstant, "", orgSourceFlagUsageConstant)
	command.Flags().StringVar(&builder.organizationDestinationFlagValue, orgDestFlagNameConstant, "", orgDestFlagUsageConstant)
	command.Flags().StringVar(&builder.sourceBranchFlagValue, branchSourceFlagNameConstant, defaultProtectedBranchConstant, branchSourceFlagUsageConstant)
	command.Flags().StringVar(&builder.destinationBranchFlagValue, branchDestFlagNameConstant, defaultProtectedBranchConstant, branchDestFlagUsageConstant)
	command.Flags().BoolVar(&builder.noStatusChecksFlagValue, noStatusChecksFlagNameConstant, false, noStatusChecksFlagUsageConstant)

	return command, nil
}

func (builder *CloneProtectionCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	cloningService, serviceError := protection.NewService(protection.Dependencies{
		Logger:  resolveLogger(builder.LoggerProvider),
		Gateway: gateway,
	})
	if serviceError != nil {
		return serviceError
	}

	destinationReference := shared.RepositoryReference{Owner: destinationOwner, Name: arguments[1]}
	cloningResult, cloningError := cloningService.Clone(command.Context(), protection.Options{
		Source:              shared.RepositoryReference{Owner: sourceOwner, Name: arguments[0]},
		Destination:         destinationReference,
		SourceBranch:        builder.sourceBranchFlagValue,
		DestinationBranch:   builder.destinationBranchFlagValue,
		IncludeStatusChecks: !builder.noStatusChecksFlagValue,
	})
	if cloningError != nil {
		return cloningError
	}

	outputTemplate := protectionAppliedOutputTemplate
	if cloningResult.Action == protection.ActionRemoved {
		outputTemplate = protectionRemovedOutputTemplate
	}
	fmt.Fprintf(command.OutOrStdout(), outputTemplate, destinationReference.String(), builder.destinationBranchFlagValue)
	return nil
}

func (builder *CloneProtectionCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
