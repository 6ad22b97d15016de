package githubapi

// Repository contains the repository details consumed by services.
type Repository struct {
	Identifier    int64
	Name          string
	FullName      string
	Description   string
	DefaultBranch string
	Private       bool
}

// RepositoryDetails describes a repository to be created.
type RepositoryDetails struct {
	Name             string
	Description      string
	Homepage         string
	Private          bool
	EnableIssues     bool
	EnableWiki       bool
	EnableDownloads  bool
	EnableProjects   bool
	AllowSquashMerge bool
	AllowMergeCommit bool
	AllowRebaseMerge bool
}

// Label describes an issue label.
type Label struct {
	Name        string
	Color       string
	Description string
}

// Team identifies an organization team granted access to a repository.
type Team struct {
	Slug string
	Name string
}

// StatusCheckPolicy captures required status check settings for a protected branch.
type StatusCheckPolicy struct {
	Strict   bool
	Contexts []string
}

// ReviewPolicy captures required pull request review settings for a protected branch.
type ReviewPolicy struct {
	DismissStaleReviews          bool
	RequireCodeOwnerReviews      bool
	RequiredApprovingReviewCount int
	DismissalUsers               []string
	DismissalTeams               []string
}

// PushRestrictionPolicy lists users and teams allowed to push to a protected branch.
type PushRestrictionPolicy struct {
	Users []string
	Teams []string
}

// ProtectionRules aggregates the branch protection settings the CLI clones.
type ProtectionRules struct {
	StatusChecks     *StatusCheckPolicy
	Reviews          *ReviewPolicy
	PushRestrictions *PushRestrictionPolicy
	EnforceAdmins    bool
}
