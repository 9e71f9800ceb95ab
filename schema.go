// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the rendering variant of one schema node.
type Kind int

const (
	// KindReference is a node pointing to a registry model via $ref.
	KindReference Kind = iota + 1
	// KindArray is a node with type array and items schema.
	KindArray
	// KindObject is a node with type object and ordered properties.
	KindObject
	// KindPrimitive is a scalar string, integer, number or boolean node.
	KindPrimitive
)

// String returns lower-case kind name.
func (kind Kind) String() string {
	switch kind {
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// primitiveTypes lists scalar schema types handled by the primitive renderer.
var primitiveTypes = map[string]struct{}{
	"string":  {},
	"integer": {},
	"number":  {},
	"boolean": {},
}

// Schema is one JSON-Schema-like node as used in Swagger/OpenAPI definitions.
type Schema struct {
	// Ref is the raw $ref value, for example "#/definitions/Category".
	Ref string
	// Type is the first non-null schema type.
	Type        string
	Format      string
	Description string
	// Enum holds allowed scalar values in declaration order.
	Enum []any
	// Example is an explicit example value; nil when absent.
	Example  any
	ReadOnly bool
	XML      *XML
	Items    *Schema
	// Properties keeps object properties in declaration order.
	Properties Properties
}

// XML carries xml object metadata of one schema node.
type XML struct {
	Name      string `yaml:"name"`
	Prefix    string `yaml:"prefix"`
	Namespace string `yaml:"namespace"`
	Wrapped   bool   `yaml:"wrapped"`
	Attribute bool   `yaml:"attribute"`
}

// Property is one named object property.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered list of object properties.
type Properties []Property

// Lookup returns property schema by name.
func (properties Properties) Lookup(name string) (*Schema, bool) {
	for _, property := range properties {
		if property.Name == name {
			return property.Schema, true
		}
	}

	return nil, false
}

// Names returns property names in declaration order.
func (properties Properties) Names() []string {
	out := make([]string, 0, len(properties))
	for _, property := range properties {
		out = append(out, property.Name)
	}

	return out
}

// ParseSchema decodes one schema node from JSON or YAML bytes.
func ParseSchema(data []byte) (*Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecodeSchema)
	}

	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return &schema, nil
}

// Kind classifies schema node into one rendering variant.
func (schema *Schema) Kind() (Kind, error) {
	if schema == nil {
		return 0, fmt.Errorf("%w: empty schema node", ErrMalformedSchema)
	}

	switch {
	case schema.Ref != "":
		return KindReference, nil
	case schema.Type == "array":
		if schema.Items == nil {
			return 0, fmt.Errorf("%w: array without items", ErrMalformedSchema)
		}

		return KindArray, nil
	case schema.Type == "object":
		return KindObject, nil
	case schema.Type == "":
		if schema.Items != nil {
			return KindArray, nil
		}

		if len(schema.Properties) > 0 {
			return KindObject, nil
		}

		return 0, fmt.Errorf("%w: node has no type, $ref, items or properties", ErrMalformedSchema)
	}

	if _, ok := primitiveTypes[schema.Type]; ok {
		return KindPrimitive, nil
	}

	return 0, fmt.Errorf("%w %q", ErrUnsupportedType, schema.Type)
}

// xmlMeta returns xml metadata or zero value when absent.
func (schema *Schema) xmlMeta() XML {
	if schema == nil || schema.XML == nil {
		return XML{}
	}

	return *schema.XML
}

// effectiveName applies xml.name over caller supplied name.
func (schema *Schema) effectiveName(name string) string {
	if meta := schema.xmlMeta(); meta.Name != "" {
		return meta.Name
	}

	return name
}

// withXMLOverlay returns shallow copy whose xml fields are overridden by non-empty overlay values.
func (schema *Schema) withXMLOverlay(overlay *XML) *Schema {
	if overlay == nil || *overlay == (XML{}) {
		return schema
	}

	merged := schema.xmlMeta()
	if overlay.Name != "" {
		merged.Name = overlay.Name
	}

	if overlay.Prefix != "" {
		merged.Prefix = overlay.Prefix
	}

	if overlay.Namespace != "" {
		merged.Namespace = overlay.Namespace
	}

	merged.Wrapped = merged.Wrapped || overlay.Wrapped
	merged.Attribute = merged.Attribute || overlay.Attribute

	out := *schema
	out.XML = &merged
	return &out
}

// rawSchema mirrors Schema keywords for YAML decoding.
type rawSchema struct {
	Ref         string     `yaml:"$ref"`
	Type        schemaType `yaml:"type"`
	Format      string     `yaml:"format"`
	Description string     `yaml:"description"`
	Enum        []any      `yaml:"enum"`
	Example     any        `yaml:"example"`
	ReadOnly    bool       `yaml:"readOnly"`
	XML         *XML       `yaml:"xml"`
	Items       *Schema    `yaml:"items"`
	Properties  Properties `yaml:"properties"`
}

// UnmarshalYAML decodes schema node and keeps property declaration order.
func (schema *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schema must be an object", node.Line)
	}

	var raw rawSchema
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*schema = Schema{
		Ref:         strings.TrimSpace(raw.Ref),
		Type:        string(raw.Type),
		Format:      strings.TrimSpace(raw.Format),
		Description: raw.Description,
		Enum:        raw.Enum,
		Example:     raw.Example,
		ReadOnly:    raw.ReadOnly,
		XML:         raw.XML,
		Items:       raw.Items,
		Properties:  raw.Properties,
	}

	return nil
}

// UnmarshalYAML decodes properties mapping in document order.
func (properties *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be an object", node.Line)
	}

	out := make(Properties, 0, len(node.Content)/2)
	for index := 0; index+1 < len(node.Content); index += 2 {
		keyNode := node.Content[index]
		valueNode := node.Content[index+1]

		property := &Schema{}
		if err := valueNode.Decode(property); err != nil {
			return fmt.Errorf("property %q: %w", keyNode.Value, err)
		}

		out = append(out, Property{Name: keyNode.Value, Schema: property})
	}

	*properties = out
	return nil
}

// schemaType decodes "type" keyword given as string or list of strings.
type schemaType string

// UnmarshalYAML picks first non-null type from scalar or sequence node.
func (value *schemaType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*value = schemaType(strings.ToLower(strings.TrimSpace(node.Value)))
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			text := strings.ToLower(strings.TrimSpace(item.Value))
			if text == "" || text == "null" {
				continue
			}

			*value = schemaType(text)
			return nil
		}

		*value = ""
		return nil
	default:
		return fmt.Errorf("line %d: type must be string or list", node.Line)
	}
}
