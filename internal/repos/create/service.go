package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/githubapi"
)

const (
	repositoryNameRequiredMessageConstant = "repository name must be provided"
	gatewayMissingMessageConstant         = "repository gateway not configured"
	creationFailureTemplateConstant       = "could not create repository: %w"
	repositoryCreatedMessageConstant      = "repository created"
	logFieldFullNameConstant              = "full_name"
	logFieldIdentifierConstant            = "identifier"
)

// ErrRepositoryNameRequired indicates the repository name option was empty.
var ErrRepositoryNameRequired = errors.New(repositoryNameRequiredMessageConstant)

// ErrGatewayNotConfigured indicates the gateway dependency was missing.
var ErrGatewayNotConfigured = errors.New(gatewayMissingMessageConstant)

// RepositoryGateway enumerates the GitHub operations required by the service.
type RepositoryGateway interface {
	CreateRepository(executionContext context.Context, organizationName string, details githubapi.RepositoryDetails) (githubapi.Repository, error)
}

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger  *zap.Logger
	Gateway RepositoryGateway
}

// Options configures a repository creation.
type Options struct {
	Name               string
	Organization       string
	Description        string
	Homepage           string
	Private            bool
	DisableIssues      bool
	DisableWiki        bool
	DisableDownloads   bool
	DisableProjects    bool
	DisableSquashMerge bool
	DisableMergeCommit bool
	DisableRebaseMerge bool
}

// Result captures details of the created repository.
type Result struct {
	Identifier int64
	FullName   string
}

// Service creates repositories through the GitHub API.
type Service struct {
	logger  *zap.Logger
	gateway RepositoryGateway
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

// Create provisions the repository described by the options.
func (service *Service) Create(executionContext context.Context, options Options) (Result, error) {
	trimmedName := strings.TrimSpace(options.Name)
	if len(trimmedName) == 0 {
		return Result{}, ErrRepositoryNameRequired
	}

	repositoryDetails := githubapi.RepositoryDetails{
		Name:             trimmedName,
		Description:      strings.TrimSpace(options.Description),
		Homepage:         strings.TrimSpace(options.Homepage),
		Private:          options.Private,
		EnableIssues:     !options.DisableIssues,
		EnableWiki:       !options.DisableWiki,
		EnableDownloads:  !options.DisableDownloads,
		EnableProjects:   !options.DisableProjects,
		AllowSquashMerge: !options.DisableSquashMerge,
		AllowMergeCommit: !options.DisableMergeCommit,
		AllowRebaseMerge: !options.DisableRebaseMerge,
	}

	createdRepository, creationError := service.gateway.CreateRepository(executionContext, strings.TrimSpace(options.Organization), repositoryDetails)
	if creationError != nil {
		return Result{}, fmt.Errorf(creationFailureTemplateConstant, creationError)
	}

	service.logger.Info(
		repositoryCreatedMessageConstant,
		zap.String(logFieldFullNameConstant, createdRepository.FullName),
		zap.Int64(logFieldIdentifierConstant, createdRepository.Identifier),
	)

	return Result{Identifier: createdRepository.Identifier, FullName: createdRepository.FullName}, nil
}
