// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// defaultTitle is used when caller does not provide custom title.
	defaultTitle = "xml examples"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = "list"
	// defaultWrapWidth wraps plain description paragraphs at this width.
	defaultWrapWidth = 80
	// defaultListMarker is used when caller does not provide list marker style.
	defaultListMarker = "*"
)

const (
	templateListName  = "list"
	templateTableName = "table"
)

// Options configures markdown reference rendering.
type Options struct {
	// Title is the top-level heading; defaults to "xml examples".
	Title string
	// SourcePath is shown as document source marker.
	SourcePath string
	// TemplateName selects built-in template ("list" or "table").
	TemplateName string
	// TemplateText overrides built-in template when not empty.
	TemplateText string
	// ListMarker is "*" or "-".
	ListMarker string
	// WrapWidth wraps description paragraphs; zero uses default.
	WrapWidth int
	// Parameter renders model examples in request body context (readOnly omitted).
	Parameter bool
	// SkipOperations omits the operations section.
	SkipOperations bool
	// ExampleFormat adds JSON or YAML example next to XML for every model.
	ExampleFormat ExampleFormat
}

// renderView is the root view model passed to markdown templates.
type renderView struct {
	Title           string
	SourceDocument  string
	DocumentVersion string
	ListMarker      string
	Models          []modelView
	Operations      []operationView
}

// modelView represents one registry model section in markdown output.
type modelView struct {
	Name          string
	Description   string
	Attributes    []attributeView
	Properties    []propertyView
	HasProperties bool
	XML           string
	Error         string
	Example       string
	ExampleFormat string
}

// propertyView represents one property row inside a model.
type propertyView struct {
	Name        string
	Description string
	Attributes  []attributeView
}

// operationView represents one operation body example.
type operationView struct {
	Heading     string
	// Label is unique per example: operation id, role and response status.
	Label       string
	OperationID string
	Role        string
	Status      string
	MediaType   string
	XML         string
	Error       string
}

// attributeView is a single rendered name/value metadata item.
type attributeView struct {
	Name  string
	Value string
}

// RenderFile reads API document from file and renders markdown reference.
func RenderFile(path string, opt Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadDocumentFile, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Render(data, opt)
}

// Render converts Swagger/OpenAPI document bytes into deterministic CommonMark
// reference with XML examples for every model and operation body.
func Render(data []byte, opt Options) (string, error) {
	view, err := buildRenderView(data, opt)
	if err != nil {
		return "", err
	}

	markdownTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := markdownTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
