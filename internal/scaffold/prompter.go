package scaffold

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

const (
	promptMessageTemplateConstant = "%s:"
)

// Prompter collects an answer for a declared prompt.
type Prompter interface {
	PromptAnswer(declaredPrompt Prompt) (string, error)
}

// SurveyPrompter asks for answers interactively on the terminal.
type SurveyPrompter struct{}

// NewSurveyPrompter constructs a SurveyPrompter instance.
func NewSurveyPrompter() SurveyPrompter {
	return SurveyPrompter{}
}

// PromptAnswer asks for a single answer, offering the manifest default.
func (prompter SurveyPrompter) PromptAnswer(declaredPrompt Prompt) (string, error) {
	inputQuestion := &survey.Input{
		Message: fmt.Sprintf(promptMessageTemplateConstant, declaredPrompt.Name),
		Default: declaredPrompt.Default,
		Help:    declaredPrompt.Description,
	}

	var collectedAnswer string
	if askError := survey.AskOne(inputQuestion, &collectedAnswer); askError != nil {
		return "", askError
	}

	return collectedAnswer, nil
}
