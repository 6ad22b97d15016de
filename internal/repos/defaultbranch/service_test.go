package defaultbranch

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reposmith/reposmith/internal/githubapi"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

var (
	testSourceReference      = shared.RepositoryReference{Owner: "acme", Name: "template"}
	testDestinationReference = shared.RepositoryReference{Owner: "octocat", Name: "widgets"}
)

type stubBranchGateway struct {
	missingRepositories map[string]bool
	sourceDefaultBranch string
	recordedBranch      string
	recordedRepository  string
	updateError         error
}

func newStubBranchGateway() *stubBranchGateway {
	return &stubBranchGateway{missingRepositories: map[string]bool{}, sourceDefaultBranch: "main"}
}

func (gateway *stubBranchGateway) GetRepository(_ context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error) {
	if gateway.missingRepositories[ownerLogin+"/"+repositoryName] {
		return githubapi.Repository{}, &githubapi.RemoteError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	return githubapi.Repository{Name: repositoryName, DefaultBranch: gateway.sourceDefaultBranch}, nil
}

func (gateway *stubBranchGateway) SetDefaultBranch(_ context.Context, ownerLogin string, repositoryName string, branchName string) error {
	if gateway.updateError != nil {
		return gateway.updateError
	}
	gateway.recordedRepository = ownerLogin + "/" + repositoryName
	gateway.recordedBranch = branchName
	return nil
}

func newBranchService(t *testing.T, gateway BranchGateway) *Service {
	t.Helper()
	service, creationError := NewService(Dependencies{Gateway: gateway})
	require.NoError(t, creationError)
	return service
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	service, creationError := NewService(Dependencies{})
	require.ErrorIs(t, creationError, ErrGatewayNotConfigured)
	require.Nil(t, service)
}

func TestCloneValidatesReferences(t *testing.T) {
	service := newBranchService(t, newStubBranchGateway())

	_, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference})
	require.ErrorIs(t, cloneError, shared.ErrOwnerRequired)
}

func TestCloneReportsMissingDestination(t *testing.T) {
	gateway := newStubBranchGateway()
	gateway.missingRepositories[testDestinationReference.String()] = true
	service := newBranchService(t, gateway)

	_, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.ErrorContains(t, cloneError, "destination repository octocat/widgets could not be found")
}

func TestCloneMirrorsSourceDefaultBranch(t *testing.T) {
	gateway := newStubBranchGateway()
	gateway.sourceDefaultBranch = "develop"
	service := newBranchService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.NoError(t, cloneError)
	require.Equal(t, "develop", cloneResult.DefaultBranch)
	require.Equal(t, "octocat/widgets", gateway.recordedRepository)
	require.Equal(t, "develop", gateway.recordedBranch)
}

func TestClonePropagatesUpdateFailure(t *testing.T) {
	gateway := newStubBranchGateway()
	gateway.updateError = errors.New("permission denied")
	service := newBranchService(t, gateway)

	_, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.ErrorContains(t, cloneError, `could not set default branch "main" for repository octocat/widgets`)
}
