package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	rendererMissingMessageConstant           = "renderer not configured"
	templateDirectoryRequiredMessageConstant = "template directory must be provided"
	answerMissingMessageConstant             = "required answer missing"
	unknownAnswerMessageConstant             = "answer does not match a declared prompt"
	answerMissingDetailTemplateConstant      = "%w: %s"
	unknownAnswerDetailTemplateConstant      = "%w: %s"
	templateRenderedMessageConstant          = "template rendered"
	logFieldTemplateConstant                 = "template"
	logFieldDestinationConstant              = "destination"
	logFieldFileCountConstant                = "file_count"
)

// ErrRendererNotConfigured indicates the renderer dependency was missing.
var ErrRendererNotConfigured = errors.New(rendererMissingMessageConstant)

// ErrTemplateDirectoryRequired indicates the template directory option was empty.
var ErrTemplateDirectoryRequired = errors.New(templateDirectoryRequiredMessageConstant)

// ErrAnswerMissing indicates a required prompt resolved to no answer.
var ErrAnswerMissing = errors.New(answerMissingMessageConstant)

// ErrUnknownAnswer indicates an answer was supplied for an undeclared prompt.
var ErrUnknownAnswer = errors.New(unknownAnswerMessageConstant)

// Dependencies enumerates external collaborators required by the service.
type Dependencies struct {
	Logger   *zap.Logger
	Renderer *Renderer
	Prompter Prompter
}

// RenderOptions configures a template rendering run.
type RenderOptions struct {
	TemplateDirectory string
	OutputDirectory   string
	Answers           map[string]string
	FileAnswers       map[string]string
	NoInput           bool
}

// RenderResult captures the rendered template outcome.
type RenderResult struct {
	TemplateName string
	WrittenPaths []string
}

// Service orchestrates manifest loading, answer resolution, and rendering.
type Service struct {
	logger   *zap.Logger
	renderer *Renderer
	prompter Prompter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Renderer == nil {
		return nil, ErrRendererNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	return &Service{logger: serviceLogger, renderer: dependencies.Renderer, prompter: dependencies.Prompter}, nil
}

// Prompts loads the template manifest without rendering anything.
func (service *Service) Prompts(templateDirectory string) (Manifest, error) {
	trimmedTemplateDirectory := strings.TrimSpace(templateDirectory)
	if len(trimmedTemplateDirectory) == 0 {
		return Manifest{}, ErrTemplateDirectoryRequired
	}
	return LoadManifest(trimmedTemplateDirectory)
}

// Render resolves answers for every declared prompt and materializes the
// template into the output directory.
func (service *Service) Render(options RenderOptions) (RenderResult, error) {
	trimmedTemplateDirectory := strings.TrimSpace(options.TemplateDirectory)
	if len(trimmedTemplateDirectory) == 0 {
		return RenderResult{}, ErrTemplateDirectoryRequired
	}

	loadedManifest, manifestError := LoadManifest(trimmedTemplateDirectory)
	if manifestError != nil {
		return RenderResult{}, manifestError
	}

	resolvedAnswers, resolutionError := service.resolveAnswers(loadedManifest, options)
	if resolutionError != nil {
		return RenderResult{}, resolutionError
	}

	writtenPaths, renderError := service.renderer.Render(RenderInput{
		TemplateDirectory:    trimmedTemplateDirectory,
		DestinationDirectory: options.OutputDirectory,
		Answers:              resolvedAnswers,
	})
	if renderError != nil {
		return RenderResult{}, renderError
	}

	service.logger.Info(
		templateRenderedMessageConstant,
		zap.String(logFieldTemplateConstant, loadedManifest.Name),
		zap.String(logFieldDestinationConstant, options.OutputDirectory),
		zap.Int(logFieldFileCountConstant, len(writtenPaths)),
	)

	return RenderResult{TemplateName: loadedManifest.Name, WrittenPaths: writtenPaths}, nil
}

func (service *Service) resolveAnswers(loadedManifest Manifest, options RenderOptions) (map[string]string, error) {
	declaredPrompts := map[string]bool{}
	for _, declaredPrompt := range loadedManifest.Prompts {
		declaredPrompts[strings.TrimSpace(declaredPrompt.Name)] = true
	}

	for answerName := range options.Answers {
		if !declaredPrompts[answerName] {
			return nil, fmt.Errorf(unknownAnswerDetailTemplateConstant, ErrUnknownAnswer, answerName)
		}
	}
	for answerName := range options.FileAnswers {
		if !declaredPrompts[answerName] {
			return nil, fmt.Errorf(unknownAnswerDetailTemplateConstant, ErrUnknownAnswer, answerName)
		}
	}

	resolvedAnswers := map[string]string{}

	for _, declaredPrompt := range loadedManifest.Prompts {
		promptName := strings.TrimSpace(declaredPrompt.Name)

		flagAnswer, flagAnswerPresent := options.Answers[promptName]
		fileAnswer, fileAnswerPresent := options.FileAnswers[promptName]

		switch {
		case flagAnswerPresent:
			resolvedAnswers[promptName] = flagAnswer
		case fileAnswerPresent:
			resolvedAnswers[promptName] = fileAnswer
		case !options.NoInput && service.prompter != nil:
			promptedAnswer, promptError := service.prompter.PromptAnswer(declaredPrompt)
			if promptError != nil {
				return nil, promptError
			}
			resolvedAnswers[promptName] = promptedAnswer
		default:
			resolvedAnswers[promptName] = declaredPrompt.Default
		}

		if declaredPrompt.Required && len(strings.TrimSpace(resolvedAnswers[promptName])) == 0 {
			return nil, fmt.Errorf(answerMissingDetailTemplateConstant, ErrAnswerMissing, promptName)
		}
	}

	return resolvedAnswers, nil
}
