// Package shared holds types and helpers common to the repository
// administration services.
package shared
