package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const (
	baseURLTrailingSlashConstant          = "/"
	baseURLParseErrorTemplateConstant     = "invalid API base URL %q: %w"
	listPageSizeConstant                  = 100
	authenticatedUserLoginConstant        = ""
	resolveViewerOperationConstant        = OperationName("ResolveAuthenticatedUser")
	createRepositoryOperationConstant     = OperationName("CreateRepository")
	getRepositoryOperationConstant        = OperationName("GetRepository")
	setDefaultBranchOperationConstant     = OperationName("SetDefaultBranch")
	listLabelsOperationConstant           = OperationName("ListLabels")
	getLabelOperationConstant             = OperationName("GetLabel")
	createLabelOperationConstant          = OperationName("CreateLabel")
	updateLabelOperationConstant          = OperationName("UpdateLabel")
	deleteLabelOperationConstant          = OperationName("DeleteLabel")
	listRepositoryTeamsOperationConstant  = OperationName("ListRepositoryTeams")
	grantTeamAccessOperationConstant      = OperationName("GrantTeamRepositoryAccess")
	ensureBranchOperationConstant         = OperationName("EnsureBranchExists")
	getBranchProtectionOperationConstant  = OperationName("GetBranchProtection")
	setBranchProtectionOperationConstant  = OperationName("UpdateBranchProtection")
	dropBranchProtectionOperationConstant = OperationName("RemoveBranchProtection")
)

// ClientOptions configures gateway construction.
type ClientOptions struct {
	Token      string
	APIBaseURL string
	HTTPClient *http.Client
}

// Client issues authenticated GitHub REST API v3 requests.
type Client struct {
	rest *github.Client
}

// NewClient constructs a gateway authenticated with the provided token.
func NewClient(executionContext context.Context, options ClientOptions) (*Client, error) {
	trimmedToken := strings.TrimSpace(options.Token)
	if len(trimmedToken) == 0 {
		return nil, ErrTokenRequired
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken})
		httpClient = oauth2.NewClient(executionContext, tokenSource)
	}

	restClient := github.NewClient(httpClient)

	trimmedBaseURL := strings.TrimSpace(options.APIBaseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, baseURLTrailingSlashConstant) {
			trimmedBaseURL += baseURLTrailingSlashConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, fmt.Errorf(baseURLParseErrorTemplateConstant, options.APIBaseURL, parseError)
		}
		restClient.BaseURL = parsedBaseURL
	}

	return &Client{rest: restClient}, nil
}

// AuthenticatedLogin resolves the login of the token's user.
func (client *Client) AuthenticatedLogin(executionContext context.Context) (string, error) {
	viewer, _, viewerError := client.rest.Users.Get(executionContext, authenticatedUserLoginConstant)
	if viewerError != nil {
		return "", translateError(resolveViewerOperationConstant, viewerError)
	}
	return viewer.GetLogin(), nil
}

// CreateRepository creates a repository under the organization, or under the
// authenticated user when organizationName is empty.
func (client *Client) CreateRepository(executionContext context.Context, organizationName string, details RepositoryDetails) (Repository, error) {
	repositoryRequest := &github.Repository{
		Name:             github.String(details.Name),
		Private:          github.Bool(details.Private),
		HasIssues:        github.Bool(details.EnableIssues),
		HasWiki:          github.Bool(details.EnableWiki),
		HasDownloads:     github.Bool(details.EnableDownloads),
		HasProjects:      github.Bool(details.EnableProjects),
		AutoInit:         github.Bool(false),
		AllowSquashMerge: github.Bool(details.AllowSquashMerge),
		AllowMergeCommit: github.Bool(details.AllowMergeCommit),
		AllowRebaseMerge: github.Bool(details.AllowRebaseMerge),
	}
	if len(details.Description) > 0 {
		repositoryRequest.Description = github.String(details.Description)
	}
	if len(details.Homepage) > 0 {
		repositoryRequest.Homepage = github.String(details.Homepage)
	}

	createdRepository, _, creationError := client.rest.Repositories.Create(executionContext, organizationName, repositoryRequest)
	if creationError != nil {
		return Repository{}, translateError(createRepositoryOperationConstant, creationError)
	}

	return convertRepository(createdRepository), nil
}

// GetRepository fetches repository metadata.
func (client *Client) GetRepository(executionContext context.Context, ownerLogin string, repositoryName string) (Repository, error) {
	fetchedRepository, _, fetchError := client.rest.Repositories.Get(executionContext, ownerLogin, repositoryName)
	if fetchError != nil {
		return Repository{}, translateError(getRepositoryOperationConstant, fetchError)
	}
	return convertRepository(fetchedRepository), nil
}

// SetDefaultBranch updates the repository's default branch.
func (client *Client) SetDefaultBranch(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error {
	repositoryUpdate := &github.Repository{DefaultBranch: github.String(branchName)}
	_, _, updateError := client.rest.Repositories.Edit(executionContext, ownerLogin, repositoryName, repositoryUpdate)
	if updateError != nil {
		return translateError(setDefaultBranchOperationConstant, updateError)
	}
	return nil
}

// ListLabels enumerates every label defined on the repository.
func (client *Client) ListLabels(executionContext context.Context, ownerLogin string, repositoryName string) ([]Label, error) {
	listOptions := &github.ListOptions{PerPage: listPageSizeConstant}
	collectedLabels := []Label{}

	for {
		pageLabels, pageResponse, listError := client.rest.Issues.ListLabels(executionContext, ownerLogin, repositoryName, listOptions)
		if listError != nil {
			return nil, translateError(listLabelsOperationConstant, listError)
		}
		for _, pageLabel := range pageLabels {
			collectedLabels = append(collectedLabels, convertLabel(pageLabel))
		}
		if pageResponse == nil || pageResponse.NextPage == 0 {
			break
		}
		listOptions.Page = pageResponse.NextPage
	}

	return collectedLabels, nil
}

// GetLabel fetches a single label by name.
func (client *Client) GetLabel(executionContext context.Context, ownerLogin string, repositoryName string, labelName string) (Label, error) {
	fetchedLabel, _, fetchError := client.rest.Issues.GetLabel(executionContext, ownerLogin, repositoryName, labelName)
	if fetchError != nil {
		return Label{}, translateError(getLabelOperationConstant, fetchError)
	}
	return convertLabel(fetchedLabel), nil
}

// CreateLabel adds a label to the repository.
func (client *Client) CreateLabel(executionContext context.Context, ownerLogin string, repositoryName string, label Label) error {
	_, _, creationError := client.rest.Issues.CreateLabel(executionContext, ownerLogin, repositoryName, convertLabelRequest(label))
	if creationError != nil {
		return translateError(createLabelOperationConstant, creationError)
	}
	return nil
}

// UpdateLabel edits an existing label in place.
func (client *Client) UpdateLabel(executionContext context.Context, ownerLogin string, repositoryName string, label Label) error {
	_, _, updateError := client.rest.Issues.EditLabel(executionContext, ownerLogin, repositoryName, label.Name, convertLabelRequest(label))
	if updateError != nil {
		return translateError(updateLabelOperationConstant, updateError)
	}
	return nil
}

// DeleteLabel removes a label from the repository.
func (client *Client) DeleteLabel(executionContext context.Context, ownerLogin string, repositoryName string, labelName string) error {
	_, deletionError := client.rest.Issues.DeleteLabel(executionContext, ownerLogin, repositoryName, labelName)
	if deletionError != nil {
		return translateError(deleteLabelOperationConstant, deletionError)
	}
	return nil
}

// ListRepositoryTeams enumerates the teams attached to the repository.
func (client *Client) ListRepositoryTeams(executionContext context.Context, ownerLogin string, repositoryName string) ([]Team, error) {
	listOptions := &github.ListOptions{PerPage: listPageSizeConstant}
	collectedTeams := []Team{}

	for {
		pageTeams, pageResponse, listError := client.rest.Repositories.ListTeams(executionContext, ownerLogin, repositoryName, listOptions)
		if listError != nil {
			return nil, translateError(listRepositoryTeamsOperationConstant, listError)
		}
		for _, pageTeam := range pageTeams {
			collectedTeams = append(collectedTeams, Team{Slug: pageTeam.GetSlug(), Name: pageTeam.GetName()})
		}
		if pageResponse == nil || pageResponse.NextPage == 0 {
			break
		}
		listOptions.Page = pageResponse.NextPage
	}

	return collectedTeams, nil
}

// GrantTeamRepositoryAccess adds the repository to the team with default permissions.
func (client *Client) GrantTeamRepositoryAccess(executionContext context.Context, organizationName string, teamSlug string, ownerLogin string, repositoryName string) error {
	_, grantError := client.rest.Teams.AddTeamRepoBySlug(executionContext, organizationName, teamSlug, ownerLogin, repositoryName, nil)
	if grantError != nil {
		return translateError(grantTeamAccessOperationConstant, grantError)
	}
	return nil
}

// EnsureBranchExists verifies the named branch is present on the repository.
func (client *Client) EnsureBranchExists(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error {
	_, _, fetchError := client.rest.Repositories.GetBranch(executionContext, ownerLogin, repositoryName, branchName, 0)
	if fetchError != nil {
		return translateError(ensureBranchOperationConstant, fetchError)
	}
	return nil
}

// GetBranchProtection fetches protection rules for the branch. A nil result
// without error reports an unprotected branch.
func (client *Client) GetBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) (*ProtectionRules, error) {
	fetchedProtection, _, fetchError := client.rest.Repositories.GetBranchProtection(executionContext, ownerLogin, repositoryName, branchName)
	if fetchError != nil {
		if errors.Is(fetchError, github.ErrBranchNotProtected) {
			return nil, nil
		}
		return nil, translateError(getBranchProtectionOperationConstant, fetchError)
	}
	return convertProtection(fetchedProtection), nil
}

// UpdateBranchProtection applies the provided protection rules to the branch.
func (client *Client) UpdateBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string, rules ProtectionRules) error {
	protectionRequest := &github.ProtectionRequest{EnforceAdmins: rules.EnforceAdmins}

	if rules.StatusChecks != nil {
		statusCheckContexts := append([]string{}, rules.StatusChecks.Contexts...)
		protectionRequest.RequiredStatusChecks = &github.RequiredStatusChecks{
			Strict:   rules.StatusChecks.Strict,
			Contexts: &statusCheckContexts,
		}
	}

	if rules.Reviews != nil {
		dismissalUsers := append([]string{}, rules.Reviews.DismissalUsers...)
		dismissalTeams := append([]string{}, rules.Reviews.DismissalTeams...)
		protectionRequest.RequiredPullRequestReviews = &github.PullRequestReviewsEnforcementRequest{
			DismissalRestrictionsRequest: &github.DismissalRestrictionsRequest{
				Users: &dismissalUsers,
				Teams: &dismissalTeams,
			},
			DismissStaleReviews:          rules.Reviews.DismissStaleReviews,
			RequireCodeOwnerReviews:      rules.Reviews.RequireCodeOwnerReviews,
			RequiredApprovingReviewCount: rules.Reviews.RequiredApprovingReviewCount,
		}
	}

	if rules.PushRestrictions != nil {
		protectionRequest.Restrictions = &github.BranchRestrictionsRequest{
			Users: append([]string{}, rules.PushRestrictions.Users...),
			Teams: append([]string{}, rules.PushRestrictions.Teams...),
		}
	}

	_, _, updateError := client.rest.Repositories.UpdateBranchProtection(executionContext, ownerLogin, repositoryName, branchName, protectionRequest)
	if updateError != nil {
		return translateError(setBranchProtectionOperationConstant, updateError)
	}
	return nil
}

// RemoveBranchProtection clears protection rules from the branch.
func (client *Client) RemoveBranchProtection(executionContext context.Context, ownerLogin string, repositoryName string, branchName string) error {
	_, removalError := client.rest.Repositories.RemoveBranchProtection(executionContext, ownerLogin, repositoryName, branchName)
	if removalError != nil {
		return translateError(dropBranchProtectionOperationConstant, removalError)
	}
	return nil
}

func convertRepository(apiRepository *github.Repository) Repository {
	if apiRepository == nil {
		return Repository{}
	}
	return Repository{
		Identifier:    apiRepository.GetID(),
		Name:          apiRepository.GetName(),
		FullName:      apiRepository.GetFullName(),
		Description:   apiRepository.GetDescription(),
		DefaultBranch: apiRepository.GetDefaultBranch(),
		Private:       apiRepository.GetPrivate(),
	}
}

func convertLabel(apiLabel *github.Label) Label {
	if apiLabel == nil {
		return Label{}
	}
	return Label{
		Name:        apiLabel.GetName(),
		Color:       apiLabel.GetColor(),
		Description: apiLabel.GetDescription(),
	}
}

func convertLabelRequest(label Label) *github.Label {
	return &github.Label{
		Name:        github.String(label.Name),
		Color:       github.String(label.Color),
		Description: github.String(label.Description),
	}
}

func convertProtection(apiProtection *github.Protection) *ProtectionRules {
	if apiProtection == nil {
		return nil
	}

	convertedRules := &ProtectionRules{}

	if apiProtection.EnforceAdmins != nil {
		convertedRules.EnforceAdmins = apiProtection.EnforceAdmins.Enabled
	}

	if apiProtection.RequiredStatusChecks != nil {
		statusCheckContexts := []string{}
		if apiProtection.RequiredStatusChecks.Contexts != nil {
			statusCheckContexts = append(statusCheckContexts, *apiProtection.RequiredStatusChecks.Contexts...)
		}
		convertedRules.StatusChecks = &StatusCheckPolicy{
			Strict:   apiProtection.RequiredStatusChecks.Strict,
			Contexts: statusCheckContexts,
		}
	}

	if apiProtection.RequiredPullRequestReviews != nil {
		reviewPolicy := &ReviewPolicy{
			DismissStaleReviews:          apiProtection.RequiredPullRequestReviews.DismissStaleReviews,
			RequireCodeOwnerReviews:      apiProtection.RequiredPullRequestReviews.RequireCodeOwnerReviews,
			RequiredApprovingReviewCount: apiProtection.RequiredPullRequestReviews.RequiredApprovingReviewCount,
		}
		if apiProtection.RequiredPullRequestReviews.DismissalRestrictions != nil {
			for _, dismissalUser := range apiProtection.RequiredPullRequestReviews.DismissalRestrictions.Users {
				reviewPolicy.DismissalUsers = append(reviewPolicy.DismissalUsers, dismissalUser.GetLogin())
			}
			for _, dismissalTeam := range apiProtection.RequiredPullRequestReviews.DismissalRestrictions.Teams {
				reviewPolicy.DismissalTeams = append(reviewPolicy.DismissalTeams, dismissalTeam.GetSlug())
			}
		}
		convertedRules.Reviews = reviewPolicy
	}

	if apiProtection.Restrictions != nil {
		pushRestrictions := &PushRestrictionPolicy{}
		for _, allowedUser := range apiProtection.Restrictions.Users {
			pushRestrictions.Users = append(pushRestrictions.Users, allowedUser.GetLogin())
		}
		for _, allowedTeam := range apiProtection.Restrictions.Teams {
			pushRestrictions.Teams = append(pushRestrictions.Teams, allowedTeam.GetSlug())
		}
		convertedRules.PushRestrictions = pushRestrictions
	}

	return convertedRules
}
