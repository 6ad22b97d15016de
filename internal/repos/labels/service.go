package labels

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/githubapi"
	"github.com/reposmith/reposmith/internal/repos/shared"
)

const (
	gatewayMissingMessageConstant                = "label gateway not configured"
	sourceRepositoryMissingTemplateConstant      = "source repository %s could not be found: %w"
	destinationRepositoryMissingTemplateConstant = "destination repository %s could not be found: %w"
	listSourceLabelsFailureTemplateConstant      = "could not list labels in %s: %w"
	deleteLabelFailureTemplateConstant           = "could not delete label %q in %s: %w"
	createLabelFailureTemplateConstant           = "could not create label %q in %s: %w"
	updateLabelFailureTemplateConstant           = "could not update label %q in %s: %w"
	inspectLabelFailureTemplateConstant          = "could not inspect label %q in %s: %w"
	labelDeletedMessageConstant                  = "label deleted"
	labelCreatedMessageConstant                  = "label created"
	labelUpdatedMessageConstant                  = "label updated"
	labelSkippedMessageConstant                  = "label exists, skipped"
	logFieldLabelNameConstant                    = "label_name"
	logFieldRepositoryConstant                   = "repository"
)

// ErrGatewayNotConfigured indicates the gateway dependency was missing.
var ErrGatewayNotConfigured = errors.New(gatewayMissingMessageConstant)

// LabelGateway enumerates the GitHub operations required by the service.
type LabelGateway interface {
	GetRepository(executionContext context.Context, ownerLogin string, repositoryName string) (githubapi.Repository, error)
	ListLabels(executionContext context.Context, ownerLogin string, repositoryName string) ([]githubapi.Label, error)
	GetLabel(executionContext context.Context, ownerLogin string, repositoryName string, labelName string) (githubapi.Label, error)
	CreateLabel(executionContext context.Context, ownerLogin string, repositoryName string, label githubapi.Label) error
	UpdateLabel(executionContext context.Context, ownerLogin string, repositoryName string, label githubapi.Label) error
	DeleteLabel(executionContext context.Context, ownerLogin string, repositoryName string, labelName string) error
}

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger  *zap.Logger
	Gateway LabelGateway
}

// Options configures a label cloning run.
type Options struct {
	Source         shared.RepositoryReference
	Destination    shared.RepositoryReference
	Overwrite      bool
	DeleteExisting bool
}

// Result summarizes the label cloning outcome.
type Result struct {
	CreatedLabels int
	UpdatedLabels int
	SkippedLabels int
	DeletedLabels int
}

// Service copies labels from a source repository to a destination repository.
type Service struct {
	logger  *zap.Logger
	gateway LabelGateway
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

// Clone copies every label from the source repository into the destination.
func (service *Service) Clone(executionContext context.Context, options Options) (Result, error) {
	if validationError := options.Source.Validate(); validationError != nil {
		return Result{}, validationError
	}
	if validationError := options.Destination.Validate(); validationError != nil {
		return Result{}, validationError
	}

	if _, sourceError := service.gateway.GetRepository(executionContext, options.Source.Owner, options.Source.Name); sourceError != nil {
		return Result{}, fmt.Errorf(sourceRepositoryMissingTemplateConstant, options.Source, sourceError)
	}
	if _, destinationError := service.gateway.GetRepository(executionContext, options.Destination.Owner, options.Destination.Name); destinationError != nil {
		return Result{}, fmt.Errorf(destinationRepositoryMissingTemplateConstant, options.Destination, destinationError)
	}

	cloneResult := Result{}

	if options.DeleteExisting {
		existingLabels, listError := service.gateway.ListLabels(executionContext, options.Destination.Owner, options.Destination.Name)
		if listError != nil {
			return Result{}, fmt.Errorf(listSourceLabelsFailureTemplateConstant, options.Destination, listError)
		}
		for _, existingLabel := range existingLabels {
			if deletionError := service.gateway.DeleteLabel(executionContext, options.Destination.Owner, options.Destination.Name, existingLabel.Name); deletionError != nil {
				return cloneResult, fmt.Errorf(deleteLabelFailureTemplateConstant, existingLabel.Name, options.Destination, deletionError)
			}
			cloneResult.DeletedLabels++
			service.logger.Info(
				labelDeletedMessageConstant,
				zap.String(logFieldLabelNameConstant, existingLabel.Name),
				zap.String(logFieldRepositoryConstant, options.Destination.String()),
			)
		}
	}

	sourceLabels, listError := service.gateway.ListLabels(executionContext, options.Source.Owner, options.Source.Name)
	if listError != nil {
		return cloneResult, fmt.Errorf(listSourceLabelsFailureTemplateConstant, options.Source, listError)
	}

	for _, sourceLabel := range sourceLabels {
		_, inspectionError := service.gateway.GetLabel(executionContext, options.Destination.Owner, options.Destination.Name, sourceLabel.Name)
		switch {
		case inspectionError == nil && options.Overwrite:
			if updateError := service.gateway.UpdateLabel(executionContext, options.Destination.Owner, options.Destination.Name, sourceLabel); updateError != nil {
				return cloneResult, fmt.Errorf(updateLabelFailureTemplateConstant, sourceLabel.Name, options.Destination, updateError)
			}
			cloneResult.UpdatedLabels++
			service.logger.Info(
				labelUpdatedMessageConstant,
				zap.String(logFieldLabelNameConstant, sourceLabel.Name),
				zap.String(logFieldRepositoryConstant, options.Destination.String()),
			)
		case inspectionError == nil:
			cloneResult.SkippedLabels++
			service.logger.Info(
				labelSkippedMessageConstant,
				zap.String(logFieldLabelNameConstant, sourceLabel.Name),
				zap.String(logFieldRepositoryConstant, options.Destination.String()),
			)
		case githubapi.IsNotFound(inspectionError):
			if creationError := service.gateway.CreateLabel(executionContext, options.Destination.Owner, options.Destination.Name, sourceLabel); creationError != nil {
				return cloneResult, fmt.Errorf(createLabelFailureTemplateConstant, sourceLabel.Name, options.Destination, creationError)
			}
			cloneResult.CreatedLabels++
			service.logger.Info(
				labelCreatedMessageConstant,
				zap.String(logFieldLabelNameConstant, sourceLabel.Name),
				zap.String(logFieldRepositoryConstant, options.Destination.String()),
			)
		default:
			return cloneResult, fmt.Errorf(inspectLabelFailureTemplateConstant, sourceLabel.Name, options.Destination, inspectionError)
		}
	}

	return cloneResult, nil
}
