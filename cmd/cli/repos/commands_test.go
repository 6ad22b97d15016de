package repos_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	reposcmd "github.com/reposmith/reposmith/cmd/cli/repos"
	"github.com/reposmith/reposmith/internal/githubapi"
)

type stubGateway struct {
	authenticatedLogin  string
	createdRepositories []githubapi.RepositoryDetails
	createdOrganization string
	sourceLabels        []githubapi.Label
	createdLabels       []string
	grantedTeams        []string
	defaultBranches     map[string]string
	setDefaultBranch    string
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		authenticatedLogin: "octocat",
		defaultBranches:    map[string]string{},
	}
}

func (gateway *stubGateway) AuthenticatedLogin(_ context.Context) (string, error) {
	return gateway.authenticatedLogin, nil
}

func (gateway *stubGateway) CreateRepository(_ context.Context, organizationName string, details githubapi.RepositoryDetails) (githubapi.Repository, error) {
	gateway.createdOrganization = organizationName
	gateway.createdRepositories = append(gateway.createdRepositories, details)
	return githubapi.Repository{Identifier: 42, FullName: "acme/" + details.Name}, nil
}

func (gateway *stubGateway) GetRepository(_ context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error) {
	return githubapi.Repository{Name: repositoryName, DefaultBranch: gateway.defaultBranches[ownerLogin+"/"+repositoryName]}, nil
}

func (gateway *stubGateway) SetDefaultBranch(_ context.Context, _ string, _ string, branchName string) error {
	gateway.setDefaultBranch = branchName
	return nil
}

func (gateway *stubGateway) ListLabels(_ context.Context, _ string, _ string) ([]githubapi.Label, error) {
	return gateway.sourceLabels, nil
}

func (gateway *stubGateway) GetLabel(_ context.Context, _ string, _ string, _ string) (githubapi.Label, error) {
	return githubapi.Label{}, &githubapi.RemoteError{StatusCode: 404, Message: "Not Found"}
}

func (gateway *stubGateway) CreateLabel(_ context.Context, _ string, _ string, label githubapi.Label) error {
	gateway.createdLabels = append(gateway.createdLabels, label.Name)
	return nil
}

func (gateway *stubGateway) UpdateLabel(_ context.Context, _ string, _ string, _ githubapi.Label) error {
	return nil
}

func (gateway *stubGateway) DeleteLabel(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (gateway *stubGateway) ListRepositoryTeams(_ context.Context, _ string, _ string) ([]githubapi.Team, error) {
	return []githubapi.Team{{Slug: "platform", Name: "Platform"}}, nil
}

func (gateway *stubGateway) GrantTeamRepositoryAccess(_ context.Context, _ string, teamSlug string, _ string, _ string) error {
	gateway.grantedTeams = append(gateway.grantedTeams, teamSlug)
	return nil
}

func (gateway *stubGateway) EnsureBranchExists(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (gateway *stubGateway) GetBranchProtection(_ context.Context, _ string, _ string, _ string) (*githubapi.ProtectionRules, error) {
	return nil, nil
}

func (gateway *stubGateway) UpdateBranchProtection(_ context.Context, _ string, _ string, _ string, _ githubapi.ProtectionRules) error {
	return nil
}

func (gateway *stubGateway) RemoveBranchProtection(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func stubResolver(gateway *stubGateway) reposcmd.GatewayResolver {
	return func(_ context.Context, _ reposcmd.ToolsConfiguration) (reposcmd.GitHubGateway, error) {
		return gateway, nil
	}
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments []string) string {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs(arguments)

	require.NoError(testInstance, command.Execute())
	return outputBuffer.String()
}

func TestCreateCommandCreatesRepository(testInstance *testing.T) {
	gateway := newStubGateway()
	commandBuilder := reposcmd.CreateCommandBuilder{GatewayResolver: stubResolver(gateway)}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"widgets", "--org", "acme", "--private", "--no-wiki"})

	require.Len(testInstance, gateway.createdRepositories, 1)
	require.Equal(testInstance, "acme", gateway.createdOrganization)
	require.True(testInstance, gateway.createdRepositories[0].Private)
	require.False(testInstance, gateway.createdRepositories[0].EnableWiki)
	require.True(testInstance, gateway.createdRepositories[0].EnableIssues)
	require.Contains(testInstance, commandOutput, "created acme/widgets (id 42)")
}

func TestCloneLabelsCommandResolvesAuthenticatedOwner(testInstance *testing.T) {
	gateway := newStubGateway()
	gateway.sourceLabels = []githubapi.Label{{Name: "bug", Color: "ff0000"}}
	commandBuilder := reposcmd.CloneLabelsCommandBuilder{GatewayResolver: stubResolver(gateway)}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"template", "widgets"})

	require.Equal(testInstance, []string{"bug"}, gateway.createdLabels)
	require.Contains(testInstance, commandOutput, "labels cloned: 1 created")
}

func TestCloneTeamsCommandGrantsAccess(testInstance *testing.T) {
	gateway := newStubGateway()
	commandBuilder := reposcmd.CloneTeamsCommandBuilder{GatewayResolver: stubResolver(gateway)}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"acme", "template", "widgets"})

	require.Equal(testInstance, []string{"platform"}, gateway.grantedTeams)
	require.Contains(testInstance, commandOutput, "teams granted: 1")
}

func TestCloneProtectionCommandReportsRemoval(testInstance *testing.T) {
	gateway := newStubGateway()
	commandBuilder := reposcmd.CloneProtectionCommandBuilder{GatewayResolver: stubResolver(gateway)}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"template", "widgets", "--org-source", "acme", "--org-dest", "acme"})

	require.Contains(testInstance, commandOutput, "protection removed from acme/widgets@master")
}

func TestCloneDefaultBranchCommandAppliesSourceBranch(testInstance *testing.T) {
	gateway := newStubGateway()
	gateway.defaultBranches["octocat/template"] = "main"
	gateway.defaultBranches["octocat/widgets"] = "master"
	commandBuilder := reposcmd.CloneDefaultBranchCommandBuilder{GatewayResolver: stubResolver(gateway)}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"template", "widgets"})

	require.Equal(testInstance, "main", gateway.setDefaultBranch)
	require.Contains(testInstance, commandOutput, "default branch of octocat/widgets set to main")
}
