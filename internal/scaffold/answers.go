package scaffold

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	assignmentSeparatorConstant             = "="
	assignmentSeparatorPartsConstant        = 2
	invalidAssignmentTemplateConstant       = "invalid answer assignment %q: expected name=value"
	answersFileReadFailureTemplateConstant  = "could not read answers file %s: %w"
	answersFileParseFailureTemplateConstant = "could not parse answers file %s: %w"
)

// ParseAssignments converts name=value flag values into an answer map.
func ParseAssignments(assignments []string) (map[string]string, error) {
	parsedAnswers := map[string]string{}

	for _, rawAssignment := range assignments {
		assignmentParts := strings.SplitN(rawAssignment, assignmentSeparatorConstant, assignmentSeparatorPartsConstant)
		if len(assignmentParts) != assignmentSeparatorPartsConstant {
			return nil, fmt.Errorf(invalidAssignmentTemplateConstant, rawAssignment)
		}

		answerName := strings.TrimSpace(assignmentParts[0])
		if len(answerName) == 0 {
			return nil, fmt.Errorf(invalidAssignmentTemplateConstant, rawAssignment)
		}

		parsedAnswers[answerName] = assignmentParts[1]
	}

	return parsedAnswers, nil
}

// LoadAnswersFile reads a YAML document mapping prompt names to answers.
func LoadAnswersFile(answersFilePath string) (map[string]string, error) {
	answersContent, readError := os.ReadFile(answersFilePath)
	if readError != nil {
		return nil, fmt.Errorf(answersFileReadFailureTemplateConstant, answersFilePath, readError)
	}

	loadedAnswers := map[string]string{}
	if parseError := yaml.Unmarshal(answersContent, &loadedAnswers); parseError != nil {
		return nil, fmt.Errorf(answersFileParseFailureTemplateConstant, answersFilePath, parseError)
	}

	return loadedAnswers, nil
}
