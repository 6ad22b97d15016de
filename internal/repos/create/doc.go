// Package create provisions new GitHub repositories under an organization or
// the authenticated user.
package create
