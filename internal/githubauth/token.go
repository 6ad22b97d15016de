package githubauth

import (
	"os"
	"strings"
)

// Environment variable names inspected when resolving a GitHub credential.
const (
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubToken,
	EnvGitHubCLIToken,
	EnvGitHubAPIToken,
}

// ResolveToken returns the first non-empty GitHub authentication token observed
// in the provided environment map or the process environment.
func ResolveToken(environment map[string]string) (string, bool) {
	for _, variableName := range tokenPreference {
		if tokenValue, tokenFound := lookup(environment, variableName); tokenFound {
			return tokenValue, true
		}
	}
	if environment != nil {
		return "", false
	}
	for _, variableName := range tokenPreference {
		if tokenValue, tokenFound := os.LookupEnv(variableName); tokenFound {
			trimmedToken := strings.TrimSpace(tokenValue)
			if len(trimmedToken) > 0 {
				return trimmedToken, true
			}
		}
	}
	return "", false
}

func lookup(environment map[string]string, variableName string) (string, bool) {
	if environment == nil {
		return "", false
	}
	tokenValue, variablePresent := environment[variableName]
	if !variablePresent {
		return "", false
	}
	trimmedToken := strings.TrimSpace(tokenValue)
	if len(trimmedToken) == 0 {
		return "", false
	}
	return trimmedToken, true
}
