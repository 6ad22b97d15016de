package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/repos/labels"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	cloneLabelsUseConstant      = "clone-labels SOURCE DEST"
	cloneLabelsShortDescription = "Copy issue labels between repositories"
	cloneLabelsLongDescription  = "clone-labels copies issue labels from a source repository to a destination repository."

	orgSourceFlagNameConstant      = "org-source"
	orgSourceFlagUsageConstant     = "Organization that owns the source repository (default: authenticated user)."
	orgDestFlagNameConstant        = "org-dest"
	orgDestFlagUsageConstant       = "Organization that owns the destination repository (default: authenticated user)."
	overwriteFlagNameConstant      = "overwrite"
	overwriteFlagUsageConstant     = "Update labels that already exist in the destination."
	deleteExistingFlagNameConstant = "delete-existing"
	deleteExistingFlagUsage        = "Delete every destination label before cloning."
	labelsSummaryOutputTemplate    = "labels cloned: %d created, %d updated, %d skipped, %d deleted\n"
)

// CloneLabelsCommandBuilder assembles the repos clone-labels command.
type CloneLabelsCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver

	organizationSourceFlagValue      string
	organizationDestinationFlagValue string
	overwriteFlagValue               bool
	deleteExistingFlagValue          bool
}

// Build constructs the repos clone-labels command.
func (builder *CloneLabelsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneLabelsUseConstant,
		Short: cloneLabelsShortDescription,
		Long:  cloneLabelsLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.organizationSourceFlagValue, orgSourceFlagNameConstant, "", orgSourceFlagUsageConstant)
	command.Flags().StringVar(&builder.organizationDestinationFlagValue, orgDestFlagNameConstant, "", orgDestFlagUsageConstant)
	command.Flags().BoolVar(&builder.overwriteFlagValue, overwriteFlagNameConstant, false, overwriteFlagUsageConstant)
	command.Flags().BoolVar(&builder.deleteExistingFlagValue, deleteExistingFlagNameConstant, false, deleteExistingFlagUsage)

	return command, nil
}

func (builder *CloneLabelsCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	cloningService, serviceError := labels.NewService(labels.Dependencies{
		Logger:  resolveLogger(builder.LoggerProvider),
		Gateway: gateway,
	})
	if serviceError != nil {
		return serviceError
	}

	cloningResult, cloningError := cloningService.Clone(command.Context(), labels.Options{
		Source:         shared.RepositoryReference{Owner: sourceOwner, Name: arguments[0]},
		Destination:    shared.RepositoryReference{Owner: destinationOwner, Name: arguments[1]},
		Overwrite:      builder.overwriteFlagValue,
		DeleteExisting: builder.deleteExistingFlagValue,
	})
	if cloningError != nil {
		return cloningError
	}

	fmt.Fprintf(
		command.OutOrStdout(),
		labelsSummaryOutputTemplate,
		cloningResult.CreatedLabels,
		cloningResult.UpdatedLabels,
		cloningResult.SkippedLabels,
		cloningResult.DeletedLabels,
	)
	return nil
}

func (builder *CloneLabelsCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
