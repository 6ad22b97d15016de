// Package repos wires the repository administration commands: repository
// creation plus label, team, branch protection, and default branch cloning
// against the GitHub REST API.
package repos
