package teams

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reposmith/reposmith/internal/githubapi"
)

const (
	testOrganizationConstant = "acme"
	testSourceNameConstant   = "template"
	testDestinationConstant  = "widgets"
)

type stubTeamGateway struct {
	missingRepositories map[string]bool
	repositoryTeams     []githubapi.Team
	failingTeamSlugs    map[string]error
	grantedTeamSlugs    []string
	listError           error
}

func newStubTeamGateway() *stubTeamGateway {
	return &stubTeamGateway{
		missingRepositories: map[string]bool{},
		failingTeamSlugs:    map[string]error{},
	}
}

func (gateway *stubTeamGateway) GetRepository(_ context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error) {
	if gateway.missingRepositories[ownerLogin+"/"+repositoryName] {
		return githubapi.Repository{}, &githubapi.RemoteError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	return githubapi.Repository{Name: repositoryName}, nil
}

func (gateway *stubTeamGateway) ListRepositoryTeams(_ context.Context, _ string, _ string) ([]githubapi.Team, error) {
	if gateway.listError != nil {
		return nil, gateway.listError
	}
	return gateway.repositoryTeams, nil
}

func (gateway *stubTeamGateway) GrantTeamRepositoryAccess(_ context.Context, _ string, teamSlug string, _ string, _ string) error {
	if grantError, grantFails := gateway.failingTeamSlugs[teamSlug]; grantFails {
		return grantError
	}
	gateway.grantedTeamSlugs = append(gateway.grantedTeamSlugs, teamSlug)
	return nil
}

func newTeamService(t *testing.T, gateway TeamGateway) *Service {
	t.Helper()
	service, creationError := NewService(Dependencies{Gateway: gateway})
	require.NoError(t, creationError)
	return service
}

func defaultOptions() Options {
	return Options{
		Organization:          testOrganizationConstant,
		SourceRepository:      testSourceNameConstant,
		DestinationRepository: testDestinationConstant,
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	service, creationError := NewService(Dependencies{})
	require.ErrorIs(t, creationError, ErrGatewayNotConfigured)
	require.Nil(t, service)
}

func TestCloneRequiresOrganization(t *testing.T) {
	service := newTeamService(t, newStubTeamGateway())

	options := defaultOptions()
	options.Organization = "  "
	_, cloneError := service.Clone(context.Background(), options)
	require.ErrorIs(t, cloneError, ErrOrganizationRequired)
}

func TestCloneReportsMissingRepositories(t *testing.T) {
	gateway := newStubTeamGateway()
	gateway.missingRepositories[testOrganizationConstant+"/"+testDestinationConstant] = true
	service := newTeamService(t, gateway)

	_, cloneError := service.Clone(context.Background(), defaultOptions())
	require.ErrorContains(t, cloneError, "destination repository acme/widgets could not be found")
}

func TestCloneGrantsEveryTeam(t *testing.T) {
	gateway := newStubTeamGateway()
	gateway.repositoryTeams = []githubapi.Team{
		{Slug: "maintainers", Name: "Maintainers"},
		{Slug: "release", Name: "Release"},
	}
	service := newTeamService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), defaultOptions())
	require.NoError(t, cloneError)
	require.Equal(t, []string{"maintainers", "release"}, cloneResult.GrantedTeams)
	require.Empty(t, cloneResult.FailedTeams)
}

func TestCloneAttemptsAllTeamsBeforeFailing(t *testing.T) {
	gateway := newStubTeamGateway()
	gateway.repositoryTeams = []githubapi.Team{
		{Slug: "maintainers"},
		{Slug: "release"},
		{Slug: "docs"},
	}
	gateway.failingTeamSlugs["release"] = errors.New("insufficient permissions")
	service := newTeamService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), defaultOptions())
	require.ErrorIs(t, cloneError, ErrTeamGrantsFailed)
	require.Equal(t, []string{"maintainers", "docs"}, cloneResult.GrantedTeams)
	require.Equal(t, []string{"release"}, cloneResult.FailedTeams)
}

func TestClonePropagatesTeamListFailure(t *testing.T) {
	gateway := newStubTeamGateway()
	gateway.listError = errors.New("rate limited")
	service := newTeamService(t, gateway)

	_, cloneError := service.Clone(context.Background(), defaultOptions())
	require.ErrorContains(t, cloneError, "could not get teams for repository acme/template")
}
