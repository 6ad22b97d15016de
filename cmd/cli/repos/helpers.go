package repos

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/githubapi"
	"github.com/reposmith/reposmith/internal/githubauth"
	"github.com/reposmith/reposmith/internal/repos/create"
	"github.com/reposmith/reposmith/internal/repos/defaultbranch"
	"github.com/reposmith/reposmith/internal/repos/labels"
	"github.com/reposmith/reposmith/internal/repos/protection"
	"github.com/reposmith/reposmith/internal/repos/shared"
	"github.com/reposmith/reposmith/internal/repos/teams"
)

const (
	missingTokenMessageConstant = "GitHub token not found; set GITHUB_TOKEN, GH_TOKEN, or GITHUB_API_TOKEN"
)

// ErrTokenMissing indicates no GitHub token could be resolved from the environment.
var ErrTokenMissing = errors.New(missingTokenMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// GitHubGateway aggregates the API operations repository commands rely on.
type GitHubGateway interface {
	shared.LoginResolver
	create.RepositoryGateway
	labels.LabelGateway
	teams.TeamGateway
	protection.ProtectionGateway
	defaultbranch.BranchGateway
}

// GatewayResolver produces a GitHub gateway for a command invocation.
type GatewayResolver func(executionContext context.Context, configuration ToolsConfiguration) (GitHubGateway, error)

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func resolveGateway(resolver GatewayResolver, executionContext context.Context, configuration ToolsConfiguration) (GitHubGateway, error) {
	if resolver != nil {
		return resolver(executionContext, configuration)
	}
	return resolveAuthenticatedGateway(executionContext, configuration)
}

func resolveAuthenticatedGateway(executionContext context.Context, configuration ToolsConfiguration) (GitHubGateway, error) {
	resolvedToken, tokenFound := githubauth.ResolveToken(nil)
	if !tokenFound {
		return nil, ErrTokenMissing
	}

	return githubapi.NewClient(executionContext, githubapi.ClientOptions{
		Token:      resolvedToken,
		APIBaseURL: configuration.APIBaseURL,
	})
}

func resolveRepositoryOwner(executionContext context.Context, gateway GitHubGateway, flagOrganization string, configuredOrganization string) (string, error) {
	trimmedFlagOrganization := strings.TrimSpace(flagOrganization)
	if len(trimmedFlagOrganization) > 0 {
		return trimmedFlagOrganization, nil
	}
	return shared.ResolveOwner(executionContext, gateway, configuredOrganization)
}
