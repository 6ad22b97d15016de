package scaffold

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reposmith/reposmith/internal/scaffold"
)

const (
	renderUseConstant      = "render TEMPLATE"
	renderShortDescription = "Render a project template"
	renderLongDescription  = "render substitutes answers across a template directory and writes the result to the output directory."

	outputDirFlagNameConstant    = "output-dir"
	outputDirFlagUsageConstant   = "Directory the rendered template is written into."
	answerFlagNameConstant       = "answer"
	answerFlagUsageConstant      = "Answer assignment in name=value form (repeatable)."
	answersFileFlagNameConstant  = "answers-file"
	answersFileFlagUsageConstant = "YAML file mapping prompt names to answers."
	noInputFlagNameConstant      = "no-input"
	noInputFlagUsageConstant     = "Never prompt; take manifest defaults for unanswered prompts."
	renderedOutputTemplate       = "rendered %s: %d files written to %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// RenderCommandBuilder assembles the scaffold render command.
type RenderCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() ToolsConfiguration
	Prompter              scaffold.Prompter

	outputDirectoryFlagValue string
	answerFlagValues         []string
	answersFileFlagValue     string
	noInputFlagValue         bool
}

// Build constructs the scaffold render command.
func (builder *RenderCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   renderUseConstant,
		Short: renderShortDescription,
		Long:  renderLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.outputDirectoryFlagValue, outputDirFlagNameConstant, "", outputDirFlagUsageConstant)
	command.Flags().StringArrayVar(&builder.answerFlagValues, answerFlagNameConstant, nil, answerFlagUsageConstant)
	command.Flags().StringVar(&builder.answersFileFlagValue, answersFileFlagNameConstant, "", answersFileFlagUsageConstant)
	command.Flags().BoolVar(&builder.noInputFlagValue, noInputFlagNameConstant, false, noInputFlagUsageConstant)

	return command, nil
}

func (builder *RenderCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	flagAnswers, parseError := scaffold.ParseAssignments(builder.answerFlagValues)
	if parseError != nil {
		return parseError
	}

	fileAnswers := map[string]string{}
	if len(builder.answersFileFlagValue) > 0 {
		loadedAnswers, loadError := scaffold.LoadAnswersFile(builder.answersFileFlagValue)
		if loadError != nil {
			return loadError
		}
		fileAnswers = loadedAnswers
	}

	outputDirectory := builder.outputDirectoryFlagValue
	if len(outputDirectory) == 0 {
		outputDirectory = configuration.OutputDirectory
	}

	renderingService, serviceError := scaffold.NewService(scaffold.Dependencies{
		Logger:   resolveLogger(builder.LoggerProvider),
		Renderer: scaffold.NewRenderer(),
		Prompter: builder.resolvePrompter(),
	})
	if serviceError != nil {
		return serviceError
	}

	renderResult, renderError := renderingService.Render(scaffold.RenderOptions{
		TemplateDirectory: arguments[0],
		OutputDirectory:   outputDirectory,
		Answers:           flagAnswers,
		FileAnswers:       fileAnswers,
		NoInput:           builder.noInputFlagValue,
	})
	if renderError != nil {
		return renderError
	}

	fmt.Fprintf(command.OutOrStdout(), renderedOutputTemplate, renderResult.TemplateName, len(renderResult.WrittenPaths), outputDirectory)
	return nil
}

func (builder *RenderCommandBuilder) resolvePrompter() scaffold.Prompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return scaffold.NewSurveyPrompter()
}

func (builder *RenderCommandBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultToolsConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
