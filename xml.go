// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import "fmt"

// xmlNode is one element of the rendered example tree.
type xmlNode struct {
	Name      string
	Prefix    string
	Namespace string
	Attrs     []xmlAttr
	Text      string
	Children  []xmlNode
}

// xmlRenderer holds per-call rendering state.
type xmlRenderer struct {
	registry    Registry
	guard       referenceGuard
	isParameter bool
}

// RenderXML renders an XML example fragment for schema under the given element name.
//
// Registry supplies models for $ref nodes and is never mutated. When
// isParameter is true the example is a request body and readOnly properties
// are omitted. The result has no XML declaration and no whitespace between
// tags; unwrapped arrays at the top level yield sibling elements without a
// common root. On error no partial output is returned.
func RenderXML(name string, schema *Schema, registry Registry, isParameter bool) (string, error) {
	renderer := xmlRenderer{
		registry:    registry,
		isParameter: isParameter,
	}

	path := name
	if path == "" {
		path = "(root)"
	}

	nodes, err := renderer.renderNode(name, schema, path)
	if err != nil {
		return "", err
	}

	return writeXMLNodes(nodes)
}

// renderNode classifies schema node once and dispatches to the matching handler.
func (renderer *xmlRenderer) renderNode(name string, schema *Schema, path string) ([]xmlNode, error) {
	kind, err := schema.Kind()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch kind {
	case KindReference:
		return renderer.renderReference(name, schema, path)
	case KindArray:
		return renderer.renderArray(name, schema, path)
	case KindObject:
		return renderer.renderObject(name, schema, path)
	default:
		return renderer.renderPrimitive(name, schema, path)
	}
}

// renderReference expands registry model.
// Element name precedence: xml.name, then caller name, then model name.
func (renderer *xmlRenderer) renderReference(name string, schema *Schema, path string) ([]xmlNode, error) {
	model, err := resolveReference(schema.Ref, renderer.registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	release, err := renderer.guard.enter(model.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer release()

	if name == "" {
		name = model.Name
	}

	target := model.Definition.withXMLOverlay(schema.XML)
	return renderer.renderNode(name, target, model.Name)
}

// renderArray repeats item fragment and optionally wraps it into envelope element.
func (renderer *xmlRenderer) renderArray(name string, schema *Schema, path string) ([]xmlNode, error) {
	arrayName := schema.effectiveName(name)
	item, err := renderer.renderNode(arrayName, schema.Items, path+".items")
	if err != nil {
		return nil, err
	}

	items := make([]xmlNode, 0, len(item)*ExampleItemCount)
	for range ExampleItemCount {
		items = append(items, item...)
	}

	meta := schema.xmlMeta()
	if !meta.Wrapped {
		return items, nil
	}

	if arrayName == "" {
		return nil, fmt.Errorf("%s: %w: wrapped array has no element name", path, ErrMalformedSchema)
	}

	return []xmlNode{{
		Name:      arrayName,
		Prefix:    meta.Prefix,
		Namespace: meta.Namespace,
		Children:  items,
	}}, nil
}

// renderObject renders attribute properties on the opening tag and other properties as children.
func (renderer *xmlRenderer) renderObject(name string, schema *Schema, path string) ([]xmlNode, error) {
	meta := schema.xmlMeta()
	element := xmlNode{
		Name:      schema.effectiveName(name),
		Prefix:    meta.Prefix,
		Namespace: meta.Namespace,
	}

	if element.Name == "" {
		return nil, fmt.Errorf("%s: %w: object has no element name", path, ErrMalformedSchema)
	}

	for _, property := range schema.Properties {
		propertyPath := path + ".properties." + property.Name
		if property.Schema == nil {
			return nil, fmt.Errorf("%s: %w: empty property schema", propertyPath, ErrMalformedSchema)
		}

		if renderer.isParameter && property.Schema.ReadOnly {
			continue
		}

		if property.Schema.xmlMeta().Attribute {
			attr, err := renderer.renderAttribute(property.Name, property.Schema, propertyPath)
			if err != nil {
				return nil, err
			}

			element.Attrs = append(element.Attrs, attr)
			continue
		}

		children, err := renderer.renderNode(property.Name, property.Schema, propertyPath)
		if err != nil {
			return nil, err
		}

		element.Children = append(element.Children, children...)
	}

	return []xmlNode{element}, nil
}

// renderAttribute renders primitive property as name/value pair for parent opening tag.
func (renderer *xmlRenderer) renderAttribute(name string, schema *Schema, path string) (xmlAttr, error) {
	meta := schema.xmlMeta()
	attrName := qualifiedName(schema.effectiveName(name), meta.Prefix)

	target := schema
	for hops := 0; target.Ref != ""; hops++ {
		if hops > len(renderer.registry) {
			return xmlAttr{}, fmt.Errorf("%s: %w: reference chain %q", path, ErrCyclicReference, schema.Ref)
		}

		model, err := resolveReference(target.Ref, renderer.registry)
		if err != nil {
			return xmlAttr{}, fmt.Errorf("%s: %w", path, err)
		}

		target = model.Definition
	}

	kind, err := target.Kind()
	if err != nil {
		return xmlAttr{}, fmt.Errorf("%s: %w", path, err)
	}

	if kind != KindPrimitive {
		return xmlAttr{}, fmt.Errorf("%s: %w: attribute must be primitive, got %s", path, ErrMalformedSchema, kind)
	}

	text, err := primitiveText(target)
	if err != nil {
		return xmlAttr{}, fmt.Errorf("%s: %w", path, err)
	}

	return xmlAttr{Name: attrName, Value: text}, nil
}

// renderPrimitive renders scalar element with placeholder, enum or example text.
func (renderer *xmlRenderer) renderPrimitive(name string, schema *Schema, path string) ([]xmlNode, error) {
	elementName := schema.effectiveName(name)
	if elementName == "" {
		return nil, fmt.Errorf("%s: %w: element has no name", path, ErrMalformedSchema)
	}

	text, err := primitiveText(schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	meta := schema.xmlMeta()
	return []xmlNode{{
		Name:      elementName,
		Prefix:    meta.Prefix,
		Namespace: meta.Namespace,
		Text:      text,
	}}, nil
}
