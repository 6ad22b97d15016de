// Package protection clones branch protection rules between GitHub
// repositories, removing destination rules when the source branch is
// unprotected.
package protection
