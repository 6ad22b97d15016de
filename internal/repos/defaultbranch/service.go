package defaultbranch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/githubapi"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	gatewayMissingMessageConstant                = "repository gateway not configured"
	sourceRepositoryMissingTemplateConstant      = "source repository %s could not be found: %w"
	destinationRepositoryMissingTemplateConstant = "destination repository %s could not be found: %w"
	setDefaultBranchFailureTemplateConstant      = "could not set default branch %q for repository %s: %w"
	defaultBranchUpdatedMessageConstant          = "default branch updated"
	logFieldBranchConstant                       = "branch"
	logFieldRepositoryConstant                   = "repository"
)

// ErrGatewayNotConfigured indicates the gateway dependency was missing.
var ErrGatewayNotConfigured = errors.New(gatewayMissingMessageConstant)

// BranchGateway enumerates the GitHub operations required by the service.
type BranchGateway interface {
	GetRepository(executionContext context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error)
	SetDefaultBranch(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error
}

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger  *zap.Logger
	Gateway BranchGateway
}

// Options configures a default branch cloning run.
type Options struct {
	Source      shared.RepositoryReference
	Destination shared.RepositoryReference
}

// Result captures the applied default branch.
type Result struct {
	DefaultBranch string
}

// Service mirrors the source repository's default branch onto the destination.
type Service struct {
	logger  *zap.Logger
	gateway BranchGateway
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	return &Service{logger: serviceLogger, gateway: dependencies.Gateway}, nil
}

// Clone sets the destination repository's default branch to the source's.
func (service *Service) Clone(executionContext context.Context, options Options) (Result, error) {
	if validationError := options.Source.Validate(); validationError != nil {
		return Result{}, validationError
	}
	if validationError := options.Destination.Validate(); validationError != nil {
		return Result{}, validationError
	}

	sourceRepository, sourceError := service.gateway.GetRepository(executionContext, options.Source.Owner, options.Source.Name)
	if sourceError != nil {
		return Result{}, fmt.Errorf(sourceRepositoryMissingTemplateConstant, options.Source, sourceError)
	}
	if _, destinationError := service.gateway.GetRepository(executionContext, options.Destination.Owner, options.Destination.Name); destinationError != nil {
		return Result{}, fmt.Errorf(destinationRepositoryMissingTemplateConstant, options.Destination, destinationError)
	}

	if updateError := service.gateway.SetDefaultBranch(executionContext, options.Destination.Owner, options.Destination.Name, sourceRepository.DefaultBranch); updateError != nil {
		return Result{}, fmt.Errorf(setDefaultBranchFailureTemplateConstant, sourceRepository.DefaultBranch, options.Destination, updateError)
	}

	service.logger.Info(
		defaultBranchUpdatedMessageConstant,
		zap.String(logFieldBranchConstant, sourceRepository.DefaultBranch),
		zap.String(logFieldRepositoryConstant, options.Destination.String()),
	)

	return Result{DefaultBranch: sourceRepository.DefaultBranch}, nil
}
