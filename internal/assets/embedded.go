package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/*
var templates embed.FS

//go:embed components/*
var components embed.FS

// DefaultTemplateName is the name of the bundled skeleton.
const DefaultTemplateName = "default"

// TemplateFileName is the skeleton file looked up in a template directory.
const TemplateFileName = "template.html"

// EmbeddedLoader loads the skeleton and the component resources bundled
// into the binary (websummary.css and websummary.js).
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads an embedded skeleton by name (without .html extension).
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// Resolve returns a bundled component resource.
// Returns ErrResourceNotFound when nothing by that name is bundled.
func (e *EmbeddedLoader) Resolve(name string) (*Resource, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := components.ReadFile("components/" + name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
		}
		return nil, fmt.Errorf("%w: %q: %v", ErrAssetRead, name, err)
	}
	return &Resource{Name: name, Content: content}, nil
}

// LoadSkeleton returns {dir}/template.html when it exists, the bundled
// default skeleton otherwise. An empty dir always yields the default.
func LoadSkeleton(dir string) (string, error) {
	if dir != "" {
		path := filepath.Join(dir, TemplateFileName)
		content, err := os.ReadFile(path) // #nosec G304 -- caller-provided template directory
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, path, err)
		}
	}
	return NewEmbeddedLoader().LoadTemplate(DefaultTemplateName)
}

// Compile-time interface check.
var _ ComponentSource = (*EmbeddedLoader)(nil)
