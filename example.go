// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleFormatXML encodes example payload as XML fragment.
	ExampleFormatXML ExampleFormat = "xml"
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleScalarPlaceholders provides typed fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]any{
	"string":  "string",
	"integer": 1,
	"number":  1.1,
	"boolean": true,
}

// exampleField is one key of an ordered example object.
type exampleField struct {
	Key     string
	Value   any
	Comment string
}

// exampleObject keeps object keys in schema declaration order.
type exampleObject []exampleField

// exampleBuilder converts schema tree into example values.
type exampleBuilder struct {
	registry    Registry
	guard       referenceGuard
	isParameter bool
}

// GenerateExample renders example payload for schema in selected format.
// The name is used as root element name for XML and ignored otherwise.
func GenerateExample(name string, schema *Schema, registry Registry, isParameter bool, format ExampleFormat) ([]byte, error) {
	format, err := NormalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExampleFormatXML:
		rendered, err := RenderXML(name, schema, registry, isParameter)
		if err != nil {
			return nil, err
		}

		return []byte(rendered), nil
	case ExampleFormatJSON:
		return GenerateExampleJSON(schema, registry, isParameter)
	case ExampleFormatYAML:
		return GenerateExampleYAML(schema, registry, isParameter)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// GenerateExampleJSON returns generated example payload encoded as pretty JSON.
func GenerateExampleJSON(schema *Schema, registry Registry, isParameter bool) ([]byte, error) {
	value, err := generateExampleValue(schema, registry, isParameter)
	if err != nil {
		return nil, err
	}

	data, err := marshalExampleJSON(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
	}

	return data, nil
}

// GenerateExampleYAML returns generated example payload encoded as YAML with description comments.
func GenerateExampleYAML(schema *Schema, registry Registry, isParameter bool) ([]byte, error) {
	value, err := generateExampleValue(schema, registry, isParameter)
	if err != nil {
		return nil, err
	}

	data, err := marshalExampleYAMLNode(yamlNodeForValue(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

// NormalizeExampleFormat validates and normalizes caller format value.
func NormalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case ExampleFormatXML, ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// generateExampleValue builds example value tree for schema.
func generateExampleValue(schema *Schema, registry Registry, isParameter bool) (any, error) {
	builder := exampleBuilder{
		registry:    registry,
		isParameter: isParameter,
	}

	return builder.buildNode(schema, "(root)")
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(schema *Schema, path string) (any, error) {
	kind, err := schema.Kind()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch kind {
	case KindReference:
		model, err := resolveReference(schema.Ref, builder.registry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		release, err := builder.guard.enter(model.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer release()

		return builder.buildNode(model.Definition, model.Name)
	case KindArray:
		item, err := builder.buildNode(schema.Items, path+".items")
		if err != nil {
			return nil, err
		}

		return []any{item}, nil
	case KindObject:
		return builder.buildObject(schema, path)
	default:
		return primitiveExampleValue(schema)
	}
}

// buildObject materializes ordered object value from schema properties.
func (builder *exampleBuilder) buildObject(schema *Schema, path string) (exampleObject, error) {
	out := make(exampleObject, 0, len(schema.Properties))
	for _, property := range schema.Properties {
		propertyPath := path + ".properties." + property.Name
		if property.Schema == nil {
			return nil, fmt.Errorf("%s: %w: empty property schema", propertyPath, ErrMalformedSchema)
		}

		if builder.isParameter && property.Schema.ReadOnly {
			continue
		}

		value, err := builder.buildNode(property.Schema, propertyPath)
		if err != nil {
			return nil, err
		}

		out = append(out, exampleField{
			Key:     property.Name,
			Value:   value,
			Comment: property.Schema.Description,
		})
	}

	return out, nil
}

// primitiveExampleValue returns enum, explicit example or typed placeholder value.
func primitiveExampleValue(schema *Schema) (any, error) {
	if len(schema.Enum) > EnumExampleIndex {
		return cloneJSONValue(schema.Enum[EnumExampleIndex]), nil
	}

	if schema.Example != nil {
		return cloneJSONValue(schema.Example), nil
	}

	if schema.Type == "string" && (schema.Format == "date" || schema.Format == "date-time") {
		return renderValue(schema.Type, schema.Format)
	}

	value, ok := exampleScalarPlaceholders[schema.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedType, schema.Type)
	}

	return value, nil
}

// cloneJSONValue deep-copies maps and slices used as generated payload values.
func cloneJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneJSONValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneJSONValue(item))
		}

		return out
	default:
		return typed
	}
}

// MarshalJSON encodes object keys in declaration order.
func (object exampleObject) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	for index, field := range object {
		if index > 0 {
			out.WriteByte(',')
		}

		key, err := marshalJSONValue(field.Key)
		if err != nil {
			return nil, err
		}

		value, err := marshalJSONValue(field.Value)
		if err != nil {
			return nil, err
		}

		out.Write(key)
		out.WriteByte(':')
		out.Write(value)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// marshalJSONValue encodes one value without HTML escaping.
func marshalJSONValue(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimRight(out.Bytes(), "\n"), nil
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// marshalExampleYAMLNode serializes example node tree as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds deterministic yaml.Node tree from example value.
func yamlNodeForValue(value any) *yaml.Node {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null")
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed))
	case string:
		return yamlScalarNode("!!str", typed)
	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed))
	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(typed, 10))
	case uint64:
		return yamlScalarNode("!!int", strconv.FormatUint(typed, 10))
	case float64:
		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'f', -1, 64))
	case exampleObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, field := range typed {
			keyNode := yamlScalarNode("!!str", field.Key)
			keyNode.HeadComment = normalizeYAMLComment(field.Comment)
			node.Content = append(node.Content, keyNode, yamlNodeForValue(field.Value))
		}
		return node
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range sortedKeys(typed) {
			node.Content = append(node.Content, yamlScalarNode("!!str", key), yamlNodeForValue(typed[key]))
		}
		return node
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			node.Content = append(node.Content, yamlNodeForValue(item))
		}
		return node
	default:
		return yamlScalarNode("!!str", formatScalar(typed))
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(normalizeLineEndings(comment), "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, line)
	}

	return strings.Join(normalized, "\n")
}
