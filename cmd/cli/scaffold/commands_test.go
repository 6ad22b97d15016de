package scaffold_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	scaffoldcmd "github.com/reposmith/reposmith/cmd/cli/scaffold"
	"github.com/reposmith/reposmith/internal/scaffold"
)

func writeTemplate(testInstance *testing.T) string {
	testInstance.Helper()

	templateDirectory := testInstance.TempDir()
	manifestContent := "name: service\nprompts:\n  - name: project_name\n    required: true\n  - name: package_name\n    default: service\n"
	require.NoError(testInstance, os.WriteFile(filepath.Join(templateDirectory, scaffold.ManifestFileName), []byte(manifestContent), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(templateDirectory, "README.md"), []byte("{{ .Answers.project_name }} uses {{ .Answers.package_name }}\n"), 0o644))
	return templateDirectory
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments []string) (string, error) {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs(arguments)

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestRenderCommandWritesOutput(testInstance *testing.T) {
	templateDirectory := writeTemplate(testInstance)
	outputDirectory := testInstance.TempDir()

	commandBuilder := scaffoldcmd.RenderCommandBuilder{}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput, executionError := executeCommand(testInstance, command, []string{
		templateDirectory,
		"--output-dir", outputDirectory,
		"--answer", "project_name=widgets",
		"--no-input",
	})
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, commandOutput, "rendered service: 1 files written")

	renderedContent, readError := os.ReadFile(filepath.Join(outputDirectory, "README.md"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "widgets uses service\n", string(renderedContent))
}

func TestRenderCommandReadsAnswersFile(testInstance *testing.T) {
	templateDirectory := writeTemplate(testInstance)
	outputDirectory := testInstance.TempDir()
	answersFilePath := filepath.Join(testInstance.TempDir(), "answers.yaml")
	require.NoError(testInstance, os.WriteFile(answersFilePath, []byte("project_name: widgets\npackage_name: gadgets\n"), 0o644))

	commandBuilder := scaffoldcmd.RenderCommandBuilder{}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{
		templateDirectory,
		"--output-dir", outputDirectory,
		"--answers-file", answersFilePath,
		"--no-input",
	})
	require.NoError(testInstance, executionError)

	renderedContent, readError := os.ReadFile(filepath.Join(outputDirectory, "README.md"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "widgets uses gadgets\n", string(renderedContent))
}

func TestRenderCommandFailsWithoutRequiredAnswer(testInstance *testing.T) {
	templateDirectory := writeTemplate(testInstance)

	commandBuilder := scaffoldcmd.RenderCommandBuilder{}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{
		templateDirectory,
		"--output-dir", testInstance.TempDir(),
		"--no-input",
	})
	require.ErrorIs(testInstance, executionError, scaffold.ErrAnswerMissing)
}

func TestPromptsCommandListsDeclaredPrompts(testInstance *testing.T) {
	templateDirectory := writeTemplate(testInstance)

	commandBuilder := scaffoldcmd.PromptsCommandBuilder{}
	command, buildError := commandBuilder.Build()
	require.NoError(testInstance, buildError)

	commandOutput, executionError := executeCommand(testInstance, command, []string{templateDirectory})
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, commandOutput, "template service declares 2 prompt(s):")
	require.Contains(testInstance, commandOutput, "project_name (required)")
	require.Contains(testInstance, commandOutput, "package_name [default: service]")
}
