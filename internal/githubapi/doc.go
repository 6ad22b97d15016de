// Package githubapi wraps the GitHub REST API v3 behind a gateway consumed
// by the repository administration services.
//
// It exposes Client for authenticated calls through google/go-github, typed
// operation errors that surface remote failure payloads, and plain domain
// structs so services never depend on the underlying SDK types.
package githubapi
