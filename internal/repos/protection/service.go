package protection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/githubapi"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	gatewayMissingMessageConstant                = "protection gateway not configured"
	sourceBranchRequiredMessageConstant          = "source branch must be provided"
	destinationBranchRequiredMessageConstant     = "destination branch must be provided"
	sourceRepositoryMissingTemplateConstant      = "source repository %s could not be found: %w"
	destinationRepositoryMissingTemplateConstant = "destination repository %s could not be found: %w"
	sourceBranchMissingTemplateConstant          = "branch %q not found in repository %s: %w"
	destinationBranchMissingTemplateConstant     = "branch %q not found in repository %s: %w"
	readProtectionFailureTemplateConstant        = "could not get protection rules for branch %q in %s: %w"
	applyProtectionFailureTemplateConstant       = "could not apply protection rules to branch %q in %s: %w"
	removeProtectionFailureTemplateConstant      = "could not remove protection rules from branch %q in %s: %w"
	protectionAppliedMessageConstant             = "branch protection applied"
	protectionRemovedMessageConstant             = "source branch unprotected, destination protection removed"
	logFieldBranchConstant                       = "branch"
	logFieldRepositoryConstant                   = "repository"
)

// ErrGatewayNotConfigured indicates the gateway dependency was missing.
var ErrGatewayNotConfigured = errors.New(gatewayMissingMessageConstant)

// ErrSourceBranchRequired indicates the source branch option was empty.
var ErrSourceBranchRequired = errors.New(sourceBranchRequiredMessageConstant)

// ErrDestinationBranchRequired indicates the destination branch option was empty.
var ErrDestinationBranchRequired = errors.New(destinationBranchRequiredMessageConstant)

// Action enumerates the observable outcomes of a protection clone.
type Action string

// Protection clone outcomes.
const (
	ActionApplied Action = Action("applied")
	ActionRemoved Action = Action("removed")
)

// ProtectionGateway enumerates the GitHub operations required by the service.
type ProtectionGateway interface {
	GetRepository(executionContext context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error)
	EnsureBranchExists(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error
	GetBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) (*githubapi.ProtectionRules, error)
	UpdateBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string, rules githubapi.ProtectionRules) error
	RemoveBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error
}

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger  *zap.Logger
	Gateway ProtectionGateway
}

// Options configures a protection cloning run.
type Options struct {
	Source              shared.RepositoryReference
	Destination         shared.RepositoryReference
	SourceBranch        string
	DestinationBranch   string
	IncludeStatusChecks bool
}

// Result captures the observable outcome of a protection clone.
type Result struct {
	Action Action
}

// Service copies branch protection rules through the GitHub API.
type Service struct {
	logger  *zap.Logger
	gateway ProtectionGateway
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

// Clone copies protection rules from the source branch onto the destination
// branch. An unprotected source branch removes destination protection instead.
func (service *Service) Clone(executionContext context.Context, options Options) (Result, error) {
	if validationError := options.Source.Validate(); validationError != nil {
		return Result{}, validationError
	}
	if validationError := options.Destination.Validate(); validationError != nil {
		return Result{}, validationError
	}

	trimmedSourceBranch := strings.TrimSpace(options.SourceBranch)
	if len(trimmedSourceBranch) == 0 {
		return Result{}, ErrSourceBranchRequired
	}
	trimmedDestinationBranch := strings.TrimSpace(options.DestinationBranch)
	if len(trimmedDestinationBranch) == 0 {
		return Result{}, ErrDestinationBranchRequired
	}

	if _, sourceError := service.gateway.GetRepository(executionContext, options.Source.Owner, options.Source.Name); sourceError != nil {
		return Result{}, fmt.Errorf(sourceRepositoryMissingTemplateConstant, options.Source, sourceError)
	}
	if _, destinationError := service.gateway.GetRepository(executionContext, options.Destination.Owner, options.Destination.Name); destinationError != nil {
		return Result{}, fmt.Errorf(destinationRepositoryMissingTemplateConstant, options.Destination, destinationError)
	}

	if branchError := service.gateway.EnsureBranchExists(executionContext, options.Source.Owner, options.Source.Name, trimmedSourceBranch); branchError != nil {
		return Result{}, fmt.Errorf(sourceBranchMissingTemplateConstant, trimmedSourceBranch, options.Source, branchError)
	}
	if branchError := service.gateway.EnsureBranchExists(executionContext, options.Destination.Owner, options.Destination.Name, trimmedDestinationBranch); branchError != nil {
		return Result{}, fmt.Errorf(destinationBranchMissingTemplateConstant, trimmedDestinationBranch, options.Destination, branchError)
	}

	sourceRules, readError := service.gateway.GetBranchProtection(executionContext, options.Source.Owner, options.Source.Name, trimmedSourceBranch)
	if readError != nil {
		return Result{}, fmt.Errorf(readProtectionFailureTemplateConstant, trimmedSourceBranch, options.Source, readError)
	}

	if sourceRules == nil {
		if removalError := service.gateway.RemoveBranchProtection(executionContext, options.Destination.Owner, options.Destination.Name, trimmedDestinationBranch); removalError != nil {
			return Result{}, fmt.Errorf(removeProtectionFailureTemplateConstant, trimmedDestinationBranch, options.Destination, removalError)
		}

		service.logger.Info(
			protectionRemovedMessageConstant,
			zap.String(logFieldBranchConstant, trimmedDestinationBranch),
			zap.String(logFieldRepositoryConstant, options.Destination.String()),
		)

		return Result{Action: ActionRemoved}, nil
	}

	rulesToApply := *sourceRules
	if !options.IncludeStatusChecks {
		rulesToApply.StatusChecks = nil
	}

	if applyError := service.gateway.UpdateBranchProtection(executionContext, options.Destination.Owner, options.Destination.Name, trimmedDestinationBranch, rulesToApply); applyError != nil {
		return Result{}, fmt.Errorf(applyProtectionFailureTemplateConstant, trimmedDestinationBranch, options.Destination, applyError)
	}

	service.logger.Info(
		protectionAppliedMessageConstant,
		zap.String(logFieldBranchConstant, trimmedDestinationBranch),
		zap.String(logFieldRepositoryConstant, options.Destination.String()),
	)

	return Result{Action: ActionApplied}, nil
}
