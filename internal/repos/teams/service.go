package teams

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
	gatewayMissingMessageConstant                = "team gateway not configured"
	organizationRequiredMessageConstant          = "organization must be provided"
	teamGrantsFailedMessageConstant              = "one or more teams could not be added"
	sourceRepositoryMissingTemplateConstant      = "source repository %s could not be found: %w"
	destinationRepositoryMissingTemplateConstant = "destination repository %s could not be found: %w"
	listTeamsFailureTemplateConstant             = "could not get teams for repository %s: %w"
	teamGrantedMessageConstant                   = "team granted repository access"
	teamGrantFailedMessageConstant               = "could not grant team repository access"
	logFieldTeamSlugConstant                     = "team_slug"
	logFieldRepositoryConstant                   = "repository"
)

// ErrGatewayNotConfigured indicates the gateway dependency was missing.
var ErrGatewayNotConfigured = errors.New(gatewayMissingMessageConstant)

// ErrOrganizationRequired indicates the organization option was empty.
var ErrOrganizationRequired = errors.New(organizationRequiredMessageConstant)

// ErrTeamGrantsFailed indicates at least one team could not be granted access.
var ErrTeamGrantsFailed = errors.New(teamGrantsFailedMessageConstant)

// TeamGateway enumerates the GitHub operations required by the service.
type TeamGateway interface {
	GetRepository(executionContext context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error)
	ListRepositoryTeams(executionContext context.Context, ownerLogin string, repositoryName string) ([]githubapi.Team, error)
	GrantTeamRepositoryAccess(executionContext context.Context, organizationName string, teamSlug string, ownerLogin string, repositoryName string) error
}

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger  *zap.Logger
	Gateway TeamGateway
}

// Options configures a team cloning run. Source and destination repositories
// must live under the same organization.
type Options struct {
	Organization          string
	SourceRepository      string
	DestinationRepository string
}

// Result summarizes the team cloning outcome.
type Result struct {
	GrantedTeams []string
	FailedTeams  []string
}

// Service copies team access from a source repository to a destination repository.
type Service struct {
	logger  *zap.Logger
	gateway TeamGateway
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

// Clone grants every team attached to the source repository access to the
// destination repository. All teams are attempted before a failure is reported.
func (service *Service) Clone(executionContext context.Context, options Options) (Result, error) {
	trimmedOrganization := strings.TrimSpace(options.Organization)
	if len(trimmedOrganization) == 0 {
		return Result{}, ErrOrganizationRequired
	}

	sourceReference := shared.RepositoryReference{Owner: trimmedOrganization, Name: strings.TrimSpace(options.SourceRepository)}
	if validationError := sourceReference.Validate(); validationError != nil {
		return Result{}, validationError
	}
	destinationReference := shared.RepositoryReference{Owner: trimmedOrganization, Name: strings.TrimSpace(options.DestinationRepository)}
	if validationError := destinationReference.Validate(); validationError != nil {
		return Result{}, validationError
	}

	if _, sourceError := service.gateway.GetRepository(executionContext, sourceReference.Owner, sourceReference.Name); sourceError != nil {
		return Result{}, fmt.Errorf(sourceRepositoryMissingTemplateConstant, sourceReference, sourceError)
	}
	if _, destinationError := service.gateway.GetRepository(executionContext, destinationReference.Owner, destinationReference.Name); destinationError != nil {
		return Result{}, fmt.Errorf(destinationRepositoryMissingTemplateConstant, destinationReference, destinationError)
	}

	sourceTeams, listError := service.gateway.ListRepositoryTeams(executionContext, sourceReference.Owner, sourceReference.Name)
	if listError != nil {
		return Result{}, fmt.Errorf(listTeamsFailureTemplateConstant, sourceReference, listError)
	}

	cloneResult := Result{}
	for _, sourceTeam := range sourceTeams {
		grantError := service.gateway.GrantTeamRepositoryAccess(executionContext, trimmedOrganization, sourceTeam.Slug, destinationReference.Owner, destinationReference.Name)
		if grantError != nil {
			cloneResult.FailedTeams = append(cloneResult.FailedTeams, sourceTeam.Slug)
			service.logger.Warn(
				teamGrantFailedMessageConstant,
				zap.String(logFieldTeamSlugConstant, sourceTeam.Slug),
				zap.String(logFieldRepositoryConstant, destinationReference.String()),
				zap.Error(grantError),
			)
			continue
		}

		cloneResult.GrantedTeams = append(cloneResult.GrantedTeams, sourceTeam.Slug)
		service.logger.Info(
			teamGrantedMessageConstant,
			zap.String(logFieldTeamSlugConstant, sourceTeam.Slug),
			zap.String(logFieldRepositoryConstant, destinationReference.String()),
		)
	}

	if len(cloneResult.FailedTeams) > 0 {
		return cloneResult, ErrTeamGrantsFailed
	}

	return cloneResult, nil
}
