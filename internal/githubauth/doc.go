// Package githubauth resolves GitHub authentication tokens from the
// environment before any API request is issued.
package githubauth
