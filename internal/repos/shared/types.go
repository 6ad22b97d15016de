package shared

import (
	"context"
	"errors"
	"strings"
)

const (
	repositoryReferenceSeparatorConstant  = "/"
	repositoryNameRequiredMessageConstant = "repository name must be provided"
	ownerRequiredMessageConstant          = "repository owner must be provided"
	loginResolverMissingMessageConstant   = "login resolver not configured"
)

// ErrRepositoryNameRequired indicates a repository reference without a name.
var ErrRepositoryNameRequired = errors.New(repositoryNameRequiredMessageConstant)

// ErrOwnerRequired indicates a repository reference without an owner.
var ErrOwnerRequired = errors.New(ownerRequiredMessageConstant)

// ErrLoginResolverNotConfigured indicates the login resolver dependency was missing.
var ErrLoginResolverNotConfigured = errors.New(loginResolverMissingMessageConstant)

// RepositoryReference identifies a repository by owner login and name.
type RepositoryReference struct {
	Owner string
	Name  string
}

// String renders the owner-qualified repository name.
func (reference RepositoryReference) String() string {
	return reference.Owner + repositoryReferenceSeparatorConstant + reference.Name
}

// Validate confirms owner and name are present.
func (reference RepositoryReference) Validate() error {
	if len(strings.TrimSpace(reference.Owner)) == 0 {
		return ErrOwnerRequired
	}
	if len(strings.TrimSpace(reference.Name)) == 0 {
		return ErrRepositoryNameRequired
	}
	return nil
}

// LoginResolver resolves the authenticated user's login.
type LoginResolver interface {
	AuthenticatedLogin(executionContext context.Context) (string, error)
}

// ResolveOwner returns the organization name when provided, falling back to
// the authenticated user's login otherwise.
func ResolveOwner(executionContext context.Context, resolver LoginResolver, organizationName string) (string, error) {
	trimmedOrganization := strings.TrimSpace(organizationName)
	if len(trimmedOrganization) > 0 {
		return trimmedOrganization, nil
	}
	if resolver == nil {
		return "", ErrLoginResolverNotConfigured
	}
	return resolver.AuthenticatedLogin(executionContext)
}
