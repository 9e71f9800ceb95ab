// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"errors"
	"strings"
)

// buildRenderView prepares data for markdown template rendering.
func buildRenderView(data []byte, opt Options) (renderView, error) {
	root, err := parseDocumentNode(data)
	if err != nil {
		return renderView{}, err
	}

	registry, err := registryFromNode(root)
	if err != nil {
		return renderView{}, err
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultTitle
	}

	wrapWidth := normalizeWrapWidth(opt.WrapWidth)

	var exampleFormat ExampleFormat
	if strings.TrimSpace(string(opt.ExampleFormat)) != "" {
		exampleFormat, err = NormalizeExampleFormat(opt.ExampleFormat)
		if err != nil {
			return renderView{}, err
		}
	}

	sourcePath := strings.TrimSpace(opt.SourcePath)
	if sourcePath == "" {
		sourcePath = "(memory)"
	}

	view := renderView{
		Title:           sanitizeText(title),
		SourceDocument:  escapeInline(sourcePath),
		DocumentVersion: escapeInline(orNone(documentVersion(root))),
		ListMarker:      normalizeListMarker(opt.ListMarker),
		Models:          make([]modelView, 0, len(registry)),
	}

	for _, name := range registry.Names() {
		view.Models = append(view.Models, buildModelView(registry, name, opt.Parameter, wrapWidth, exampleFormat))
	}

	if !opt.SkipOperations {
		operations, err := RenderOperations(data)
		switch {
		case errors.Is(err, ErrUnsupportedDocument):
		case err != nil:
			return renderView{}, err
		default:
			for _, operation := range operations {
				view.Operations = append(view.Operations, buildOperationView(operation))
			}
		}
	}

	if len(view.Models) == 0 && len(view.Operations) == 0 {
		return renderView{}, ErrEmptyDocument
	}

	return view, nil
}

// buildModelView renders model metadata, properties and XML example.
func buildModelView(registry Registry, name string, isParameter bool, wrapWidth int, exampleFormat ExampleFormat) modelView {
	model := registry[name]
	definition := model.Definition

	view := modelView{
		Name:        escapeInline(name),
		Description: formatDescriptionMarkdown(definition.Description, wrapWidth),
		Attributes:  schemaAttributes(definition),
	}

	view.Properties = make([]propertyView, 0, len(definition.Properties))
	for _, property := range definition.Properties {
		if property.Schema == nil {
			continue
		}

		view.Properties = append(view.Properties, propertyView{
			Name:        escapeInline(property.Name),
			Description: sanitizeText(property.Schema.Description),
			Attributes:  schemaAttributes(property.Schema),
		})
	}

	view.HasProperties = len(view.Properties) > 0

	reference := &Schema{Ref: ModelReference(name)}
	rendered, err := RenderXML("", reference, registry, isParameter)
	if err != nil {
		view.Error = escapeInline(err.Error())
		return view
	}

	view.XML = rendered

	if exampleFormat == "" || exampleFormat == ExampleFormatXML {
		return view
	}

	example, err := GenerateExample("", reference, registry, isParameter, exampleFormat)
	if err != nil {
		view.Error = escapeInline(err.Error())
		return view
	}

	view.Example = strings.TrimRight(string(example), "\n")
	view.ExampleFormat = string(exampleFormat)
	return view
}

// buildOperationView converts rendered operation example into template view.
func buildOperationView(example OperationExample) operationView {
	label := example.OperationID + " " + example.Role
	if example.Status != "" {
		label += " " + example.Status
	}

	view := operationView{
		Heading:     example.Method + " " + example.Path,
		Label:       label,
		OperationID: escapeInline(example.OperationID),
		Role:        example.Role,
		Status:      escapeInline(orNone(example.Status)),
		MediaType:   escapeInline(example.MediaType),
		XML:         example.XML,
	}

	if example.Err != nil {
		view.Error = escapeInline(example.Err.Error())
	}

	return view
}
