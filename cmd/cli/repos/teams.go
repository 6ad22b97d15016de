package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/repos/teams"
)

const (
	cloneTeamsUseConstant      = "clone-teams ORG SOURCE DEST"
	cloneTeamsShortDescription = "Copy team repository access between repositories"
	cloneTeamsLongDescription  = "clone-teams grants every team attached to the source repository access to the destination repository."

	teamsSummaryOutputTemplate = "teams granted: %d\n"
)

// CloneTeamsCommandBuilder assembles the repos clone-teams command.
type CloneTeamsCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver
}

// Build constructs the repos clone-teams command.
func (builder *CloneTeamsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneTeamsUseConstant,
		Short: cloneTeamsShortDescription,
		Long:  cloneTeamsLongDescription,
		Args:  cobra.ExactArgs(3),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CloneTeamsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	gateway, gatewayError := resolveGateway(builder.GatewayResolver, command.Context(), configuration)
	if gatewayError != nil {
		return gatewayError
	}

	cloningService, serviceError := teams.NewService(teams.Dependencies{
		Logger:  resolveLogger(builder.LoggerProvider),
		Gateway: gateway,
	})
	if serviceError != nil {
		return serviceError
	}

	cloningResult, cloningError := cloningService.Clone(command.Context(), teams.Options{
		Organization:          arguments[0],
		SourceRepository:      arguments[1],
		DestinationRepository: arguments[2],
	})
	if cloningError != nil {
		return cloningError
	}

	fmt.Fprintf(command.OutOrStdout(), teamsSummaryOutputTemplate, len(cloningResult.GrantedTeams))
	return nil
}

func (builder *CloneTeamsCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
