package labels

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
	testDestinationReference = shared.RepositoryReference{Owner: "acme", Name: "widgets"}
)

type stubLabelGateway struct {
	missingRepositories map[string]bool
	sourceLabels        []githubapi.Label
	destinationLabels   map[string]githubapi.Label
	createdLabels       []string
	updatedLabels       []string
	deletedLabels       []string
	listError           error
}

func newStubLabelGateway() *stubLabelGateway {
	return &stubLabelGateway{
		missingRepositories: map[string]bool{},
		destinationLabels:   map[string]githubapi.Label{},
	}
}

func notFoundError() error {
	return &githubapi.RemoteError{StatusCode: http.StatusNotFound, Message: "Not Found"}
}

func (gateway *stubLabelGateway) GetRepository(_ context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error) {
	if gateway.missingRepositories[ownerLogin+"/"+repositoryName] {
		return githubapi.Repository{}, notFoundError()
	}
	return githubapi.Repository{Name: repositoryName}, nil
}

func (gateway *stubLabelGateway) ListLabels(_ context.Context, _ string, repositoryName string) ([]githubapi.Label, error) {
	if gateway.listError != nil {
		return nil, gateway.listError
	}
	if repositoryName == testSourceReference.Name {
		return gateway.sourceLabels, nil
	}
	collectedLabels := []githubapi.Label{}
	for _, destinationLabel := range gateway.destinationLabels {
		collectedLabels = append(collectedLabels, destinationLabel)
	}
	return collectedLabels, nil
}

func (gateway *stubLabelGateway) GetLabel(_ context.Context, _ string, _ string, labelName string) (githubapi.Label, error) {
	existingLabel, labelPresent := gateway.destinationLabels[labelName]
	if !labelPresent {
		return githubapi.Label{}, notFoundError()
	}
	return existingLabel, nil
}

func (gateway *stubLabelGateway) CreateLabel(_ context.Context, _ string, _ string, label githubapi.Label) error {
	gateway.createdLabels = append(gateway.createdLabels, label.Name)
	gateway.destinationLabels[label.Name] = label
	return nil
}

func (gateway *stubLabelGateway) UpdateLabel(_ context.Context, _ string, _ string, label githubapi.Label) error {
	gateway.updatedLabels = append(gateway.updatedLabels, label.Name)
	gateway.destinationLabels[label.Name] = label
	return nil
}

func (gateway *stubLabelGateway) DeleteLabel(_ context.Context, _ string, _ string, labelName string) error {
	gateway.deletedLabels = append(gateway.deletedLabels, labelName)
	delete(gateway.destinationLabels, labelName)
	return nil
}

func newLabelService(t *testing.T, gateway LabelGateway) *Service {
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
	service := newLabelService(t, newStubLabelGateway())

	_, cloneError := service.Clone(context.Background(), Options{Destination: testDestinationReference})
	require.ErrorIs(t, cloneError, shared.ErrOwnerRequired)
}

func TestCloneReportsMissingSourceRepository(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.missingRepositories[testSourceReference.String()] = true
	service := newLabelService(t, gateway)

	_, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.ErrorContains(t, cloneError, "source repository acme/template could not be found")
}

func TestCloneCreatesMissingLabels(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.sourceLabels = []githubapi.Label{
		{Name: "bug", Color: "d73a4a"},
		{Name: "enhancement", Color: "a2eeef"},
	}
	service := newLabelService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.NoError(t, cloneError)
	require.Equal(t, 2, cloneResult.CreatedLabels)
	require.Equal(t, []string{"bug", "enhancement"}, gateway.createdLabels)
}

func TestCloneSkipsExistingLabelsWithoutOverwrite(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.sourceLabels = []githubapi.Label{{Name: "bug", Color: "d73a4a"}}
	gateway.destinationLabels["bug"] = githubapi.Label{Name: "bug", Color: "ffffff"}
	service := newLabelService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.NoError(t, cloneError)
	require.Equal(t, 1, cloneResult.SkippedLabels)
	require.Empty(t, gateway.updatedLabels)
	require.Equal(t, "ffffff", gateway.destinationLabels["bug"].Color)
}

func TestCloneOverwritesExistingLabels(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.sourceLabels = []githubapi.Label{{Name: "bug", Color: "d73a4a", Description: "Something is broken"}}
	gateway.destinationLabels["bug"] = githubapi.Label{Name: "bug", Color: "ffffff"}
	service := newLabelService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), Options{
		Source:      testSourceReference,
		Destination: testDestinationReference,
		Overwrite:   true,
	})
	require.NoError(t, cloneError)
	require.Equal(t, 1, cloneResult.UpdatedLabels)
	require.Equal(t, "d73a4a", gateway.destinationLabels["bug"].Color)
}

func TestCloneDeletesExistingLabelsFirst(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.sourceLabels = []githubapi.Label{{Name: "bug", Color: "d73a4a"}}
	gateway.destinationLabels["stale"] = githubapi.Label{Name: "stale"}
	service := newLabelService(t, gateway)

	cloneResult, cloneError := service.Clone(context.Background(), Options{
		Source:         testSourceReference,
		Destination:    testDestinationReference,
		DeleteExisting: true,
	})
	require.NoError(t, cloneError)
	require.Equal(t, 1, cloneResult.DeletedLabels)
	require.Equal(t, []string{"stale"}, gateway.deletedLabels)
	require.Equal(t, 1, cloneResult.CreatedLabels)
}

func TestClonePropagatesListFailure(t *testing.T) {
	gateway := newStubLabelGateway()
	gateway.listError = errors.New("rate limited")
	service := newLabelService(t, gateway)

	_, cloneError := service.Clone(context.Background(), Options{Source: testSourceReference, Destination: testDestinationReference})
	require.ErrorContains(t, cloneError, "rate limited")
}
