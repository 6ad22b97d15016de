package cli_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reposmith/reposmith/cmd/cli"
	reposcmd "github.com/reposmith/reposmith/cmd/cli/repos"
)

const (
	testReposGroupNameConstant    = "repos"
	testScaffoldGroupNameConstant = "scaffold"
)

var expectedReposSubcommands = []string{
	"create",
	"clone-labels",
	"clone-teams",
	"clone-protection",
	"clone-default-branch",
}

var expectedScaffoldSubcommands = []string{
	"render",
	"prompts",
}

func clearGitHubTokenEnvironment(testInstance *testing.T) {
	testInstance.Helper()
	testInstance.Setenv("GITHUB_TOKEN", "")
	testInstance.Setenv("GH_TOKEN", "")
	testInstance.Setenv("GITHUB_API_TOKEN", "")
}

func findSubcommand(testInstance *testing.T, parentUse string, rootUse string) map[string]bool {
	testInstance.Helper()

	application := cli.NewApplication()
	registeredNames := map[string]bool{}
	for _, groupCommand := range application.RootCommand().Commands() {
		if groupCommand.Name() != parentUse {
			continue
		}
		for _, subcommand := range groupCommand.Commands() {
			registeredNames[subcommand.Name()] = true
		}
	}

	require.NotEmpty(testInstance, registeredNames, rootUse)
	return registeredNames
}

func TestApplicationRegistersRepositoryCommands(testInstance *testing.T) {
	registeredNames := findSubcommand(testInstance, testReposGroupNameConstant, testReposGroupNameConstant)
	for _, expectedName := range expectedReposSubcommands {
		require.True(testInstance, registeredNames[expectedName], expectedName)
	}
}

func TestApplicationRegistersScaffoldCommands(testInstance *testing.T) {
	registeredNames := findSubcommand(testInstance, testScaffoldGroupNameConstant, testScaffoldGroupNameConstant)
	for _, expectedName := range expectedScaffoldSubcommands {
		require.True(testInstance, registeredNames[expectedName], expectedName)
	}
}

func TestApplicationHelpExecutesWithoutCredentials(testInstance *testing.T) {
	clearGitHubTokenEnvironment(testInstance)

	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "root_help", arguments: []string{"--help"}},
		{name: "repos_help", arguments: []string{"repos", "--help"}},
		{name: "scaffold_help", arguments: []string{"scaffold", "--help"}},
		{name: "clone_labels_help", arguments: []string{"repos", "clone-labels", "--help"}},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			application := cli.NewApplication()
			outputBuffer := &bytes.Buffer{}
			application.RootCommand().SetOut(outputBuffer)
			application.RootCommand().SetErr(outputBuffer)
			application.RootCommand().SetArgs(testCase.arguments)

			require.NoError(subtest, application.Execute())
			require.NotEmpty(subtest, outputBuffer.String())
		})
	}
}

func TestRepositoryCommandsFailWithoutToken(testInstance *testing.T) {
	clearGitHubTokenEnvironment(testInstance)

	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.RootCommand().SetOut(outputBuffer)
	application.RootCommand().SetErr(outputBuffer)
	application.RootCommand().SetArgs([]string{"repos", "create", "widgets"})

	executionError := application.Execute()
	require.ErrorIs(testInstance, executionError, reposcmd.ErrTokenMissing)
}

func TestApplicationRejectsUnknownLogLevel(testInstance *testing.T) {
	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.RootCommand().SetOut(outputBuffer)
	application.RootCommand().SetErr(outputBuffer)
	application.RootCommand().SetArgs([]string{"--log-level", "verbose"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}
