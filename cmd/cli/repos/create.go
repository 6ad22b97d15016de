package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposmith/reposmith/internal/repos/create"
)

const (
	createUseConstant      = "create NAME"
	createShortDescription = "Create a GitHub repository"
	createLongDescription  = "create provisions a repository under an organization or the authenticated user."

	createOrgFlagNameConstant       = "org"
	createOrgFlagUsageConstant      = "Organization that owns the new repository (default: authenticated user)."
	descriptionFlagNameConstant     = "description"
	descriptionFlagUsageConstant    = "Repository description."
	homepageFlagNameConstant        = "homepage"
	homepageFlagUsageConstant       = "Repository homepage URL."
	privateFlagNameConstant         = "private"
	privateFlagUsageConstant        = "Create the repository as private."
	noIssuesFlagNameConstant        = "no-issues"
	noIssuesFlagUsageConstant       = "Disable the issue tracker."
	noWikiFlagNameConstant          = "no-wiki"
	noWikiFlagUsageConstant         = "Disable the wiki."
	noDownloadsFlagNameConstant     = "no-downloads"
	noDownloadsFlagUsageConstant    = "Disable downloads."
	noProjectsFlagNameConstant      = "no-projects"
	noProjectsFlagUsageConstant     = "Disable projects."
	noSquashMergeFlagNameConstant   = "no-squash-merge"
	noSquashMergeFlagUsageConstant  = "Disallow squash merging pull requests."
	noMergeCommitFlagNameConstant   = "no-merge-commit"
	noMergeCommitFlagUsageConstant  = "Disallow merge commits for pull requests."
	noRebaseMergeFlagNameConstant   = "no-rebase-merge"
	noRebaseMergeFlagUsageConstant  = "Disallow rebase merging pull requests."
	createdRepositoryOutputTemplate = "created %s (id %d)\n"
)

// CreateCommandBuilder assembles the repos create command.
type CreateCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	GatewayResolver       GatewayResolver

	organizationFlagValue string
	descriptionFlagValue  string
	homepageFlagValue     string
	privateFlagValue      bool
	noIssuesFlagValue     bool
	noWikiFlagValue       bool
	noDownloadsFlagValue  bool
	noProjectsFlagValue   bool
	noSquashFlagValue     bool
	noMergeFlagValue      bool
	noRebaseFlagValue     bool
}

// Build constructs the repos create command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   createUseConstant,
		Short: createShortDescription,
		Long:  createLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.organizationFlagValue, createOrgFlagNameConstant, "", createOrgFlagUsageConstant)
	command.Flags().StringVar(&builder.descriptionFlagValue, descriptionFlagNameConstant, "", descriptionFlagUsageConstant)
	command.Flags().StringVar(&builder.homepageFlagValue, homepageFlagNameConstant, "", homepageFlagUsageConstant)
	command.Flags().BoolVar(&builder.privateFlagValue, privateFlagNameConstant, false, privateFlagUsageConstant)
	command.Flags().BoolVar(&builder.noIssuesFlagValue, noIssuesFlagNameConstant, false, noIssuesFlagUsageConstant)
	command.Flags().BoolVar(&builder.noWikiFlagValue, noWikiFlagNameConstant, false, noWikiFlagUsageConstant)
	command.Flags().BoolVar(&builder.noDownloadsFlagValue, noDownloadsFlagNameConstant, false, noDownloadsFlagUsageConstant)
	command.Flags().BoolVar(&builder.noProjectsFlagValue, noProjectsFlagNameConstant, false, noProjectsFlagUsageConstant)
	command.Flags().BoolVar(&builder.noSquashFlagValue, noSquashMergeFlagNameConstant, false, noSquashMergeFlagUsageConstant)
	command.Flags().BoolVar(&builder.noMergeFlagValue, noMergeCommitFlagNameConstant, false, noMergeCommitFlagUsageConstant)
	command.Flags().BoolVar(&builder.noRebaseFlagValue, noRebaseMergeFlagNameConstant, false, noRebaseMergeFlagUsageConstant)

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	gateway, gatewayError := resolveGateway(builder.GatewayResolver, command.Context(), configuration)
	if gatewayError != nil {
		return gatewayError
	}

	organizationName := builder.organizationFlagValue
	if len(organizationName) == 0 {
		organizationName = configuration.Organization
	}

	creationService, serviceError := create.NewService(create.Dependencies{
		Logger:  resolveLogger(builder.LoggerProvider),
		Gateway: gateway,
	})
	if serviceError != nil {
		return serviceError
	}

	creationResult, creationError := creationService.Create(command.Context(), create.Options{
		Name:               arguments[0],
		Organization:       organizationName,
		Description:        builder.descriptionFlagValue,
		Homepage:           builder.homepageFlagValue,
		Private:            builder.privateFlagValue,
		DisableIssues:      builder.noIssuesFlagValue,
		DisableWiki:        builder.noWikiFlagValue,
		DisableDownloads:   builder.noDownloadsFlagValue,
		DisableProjects:    builder.noProjectsFlagValue,
		DisableSquashMerge: builder.noSquashFlagValue,
		DisableMergeCommit: builder.noMergeFlagValue,
		DisableRebaseMerge: builder.noRebaseFlagValue,
	})
	if creationError != nil {
		return creationError
	}

	fmt.Fprintf(command.OutOrStdout(), createdRepositoryOutputTemplate, creationResult.FullName, creationResult.Identifier)
	return nil
}

func (builder *CreateCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
