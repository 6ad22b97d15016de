package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	pathTemplateNameConstant               = "path"
	contentTemplateNameConstant            = "content"
	missingKeyTemplateOptionConstant       = "missingkey=error"
	destinationExistsMessageConstant       = "destination path already exists"
	emptyRenderedPathMessageConstant       = "rendered path is empty"
	pathRenderFailureTemplateConstant      = "could not render path %q: %w"
	fileRenderFailureTemplateConstant      = "could not render file %q: %w"
	fileReadFailureTemplateConstant        = "could not read template file %q: %w"
	directoryCreateFailureTemplateConstant = "could not create directory %q: %w"
	fileWriteFailureTemplateConstant       = "could not write file %q: %w"
	collisionDetailTemplateConstant        = "%w: %s"
	directoryPermissionsConstant           = 0o755
)

// ErrDestinationExists indicates a rendered path collides with an existing file.
var ErrDestinationExists = errors.New(destinationExistsMessageConstant)

// ErrEmptyRenderedPath indicates a template path rendered to nothing.
var ErrEmptyRenderedPath = errors.New(emptyRenderedPathMessageConstant)

// TemplateData is the payload bound to every path and file template.
type TemplateData struct {
	Answers map[string]string
}

// RenderInput describes a single rendering run.
type RenderInput struct {
	TemplateDirectory    string
	DestinationDirectory string
	Answers              map[string]string
}

type plannedDirectory struct {
	destinationPath string
}

type plannedFile struct {
	destinationPath string
	content         []byte
	mode            fs.FileMode
}

// Renderer materializes template trees with token substitution.
type Renderer struct{}

// NewRenderer constructs a Renderer instance.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render substitutes tokens across the template tree and writes the result
// beneath the destination directory. The full output is planned before any
// write so collisions abort without touching the destination.
func (renderer *Renderer) Render(input RenderInput) ([]string, error) {
	templateData := TemplateData{Answers: input.Answers}
	if templateData.Answers == nil {
		templateData.Answers = map[string]string{}
	}

	plannedDirectories := []plannedDirectory{}
	plannedFiles := []plannedFile{}

	walkError := filepath.WalkDir(input.TemplateDirectory, func(currentPath string, currentEntry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return visitError
		}

		relativePath, relativeError := filepath.Rel(input.TemplateDirectory, currentPath)
		if relativeError != nil {
			return relativeError
		}
		if relativePath == "." {
			return nil
		}
		if relativePath == ManifestFileName {
			return nil
		}

		renderedRelativePath, pathError := renderer.renderString(pathTemplateNameConstant, relativePath, templateData)
		if pathError != nil {
			return fmt.Errorf(pathRenderFailureTemplateConstant, relativePath, pathError)
		}
		if len(strings.TrimSpace(renderedRelativePath)) == 0 {
			return fmt.Errorf(pathRenderFailureTemplateConstant, relativePath, ErrEmptyRenderedPath)
		}

		destinationPath := filepath.Join(input.DestinationDirectory, filepath.FromSlash(renderedRelativePath))

		if currentEntry.IsDir() {
			plannedDirectories = append(plannedDirectories, plannedDirectory{destinationPath: destinationPath})
			return nil
		}

		templateContent, readError := os.ReadFile(currentPath)
		if readError != nil {
			return fmt.Errorf(fileReadFailureTemplateConstant, relativePath, readError)
		}

		renderedContent, contentError := renderer.renderString(contentTemplateNameConstant, string(templateContent), templateData)
		if contentError != nil {
			return fmt.Errorf(fileRenderFailureTemplateConstant, relativePath, contentError)
		}

		entryInfo, infoError := currentEntry.Info()
		if infoError != nil {
			return infoError
		}

		plannedFiles = append(plannedFiles, plannedFile{
			destinationPath: destinationPath,
			content:         []byte(renderedContent),
			mode:            entryInfo.Mode().Perm(),
		})
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	for _, plannedEntry := range plannedDirectories {
		if _, statError := os.Stat(plannedEntry.destinationPath); statError == nil {
			return nil, fmt.Errorf(collisionDetailTemplateConstant, ErrDestinationExists, plannedEntry.destinationPath)
		}
	}
	for _, plannedEntry := range plannedFiles {
		if _, statError := os.Stat(plannedEntry.destinationPath); statError == nil {
			return nil, fmt.Errorf(collisionDetailTemplateConstant, ErrDestinationExists, plannedEntry.destinationPath)
		}
	}

	writtenPaths := []string{}

	for _, plannedEntry := range plannedDirectories {
		if creationError := os.MkdirAll(plannedEntry.destinationPath, directoryPermissionsConstant); creationError != nil {
			return writtenPaths, fmt.Errorf(directoryCreateFailureTemplateConstant, plannedEntry.destinationPath, creationError)
		}
	}

	for _, plannedEntry := range plannedFiles {
		parentDirectory := filepath.Dir(plannedEntry.destinationPath)
		if creationError := os.MkdirAll(parentDirectory, directoryPermissionsConstant); creationError != nil {
			return writtenPaths, fmt.Errorf(directoryCreateFailureTemplateConstant, parentDirectory, creationError)
		}
		if writeError := os.WriteFile(plannedEntry.destinationPath, plannedEntry.content, plannedEntry.mode); writeError != nil {
			return writtenPaths, fmt.Errorf(fileWriteFailureTemplateConstant, plannedEntry.destinationPath, writeError)
		}
		writtenPaths = append(writtenPaths, plannedEntry.destinationPath)
	}

	return writtenPaths, nil
}

func (renderer *Renderer) renderString(templateName string, templateText string, templateData TemplateData) (string, error) {
	parsedTemplate, parseError := template.New(templateName).
		Funcs(sprig.TxtFuncMap()).
		Option(missingKeyTemplateOptionConstant).
		Parse(templateText)
	if parseError != nil {
		return "", parseError
	}

	var renderedBuffer bytes.Buffer
	if executionError := parsedTemplate.Execute(&renderedBuffer, templateData); executionError != nil {
		return "", executionError
	}

	return renderedBuffer.String(), nil
}
