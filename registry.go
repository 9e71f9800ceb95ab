// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// definitionContainers lists document paths that hold named model schemas.
var definitionContainers = [][]string{
	{"definitions"},
	{"components", "schemas"},
	{"$defs"},
}

// Model is one named registry entry.
type Model struct {
	Name       string
	Definition *Schema
}

// Registry maps model names to model definitions. Renderers never mutate it.
type Registry map[string]Model

// NewRegistry builds registry from models keyed by their names.
func NewRegistry(models ...Model) Registry {
	registry := make(Registry, len(models))
	for _, model := range models {
		registry[model.Name] = model
	}

	return registry
}

// Lookup returns model by name.
func (registry Registry) Lookup(name string) (Model, bool) {
	model, ok := registry[name]
	return model, ok
}

// Names returns sorted model names.
func (registry Registry) Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// ModelReference builds local reference that resolves to named registry model.
func ModelReference(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return "#/definitions/" + name
}

// ParseRegistry reads model definitions from Swagger 2.0, OpenAPI 3 or JSON Schema document bytes.
func ParseRegistry(data []byte) (Registry, error) {
	root, err := parseDocumentNode(data)
	if err != nil {
		return nil, err
	}

	return registryFromNode(root)
}

// parseDocumentNode decodes JSON or YAML bytes into root mapping node.
func parseDocumentNode(data []byte) (*yaml.Node, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecodeDocument)
	}

	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	root := &document
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be an object", ErrDecodeDocument)
	}

	return root, nil
}

// registryFromNode collects models from every known definitions container.
func registryFromNode(root *yaml.Node) (Registry, error) {
	registry := make(Registry)
	for _, path := range definitionContainers {
		container := mappingPath(root, path...)
		if container == nil {
			continue
		}

		for index := 0; index+1 < len(container.Content); index += 2 {
			name := container.Content[index].Value
			definition := &Schema{}
			if err := container.Content[index+1].Decode(definition); err != nil {
				return nil, fmt.Errorf("%w: model %q: %w", ErrDecodeSchema, name, err)
			}

			if _, exists := registry[name]; exists {
				continue
			}

			registry[name] = Model{Name: name, Definition: definition}
		}
	}

	return registry, nil
}

// mappingPath walks nested mapping keys and returns final mapping node.
func mappingPath(node *yaml.Node, keys ...string) *yaml.Node {
	current := node
	for _, key := range keys {
		current = mappingValue(current, key)
		if current == nil {
			return nil
		}
	}

	if current.Kind != yaml.MappingNode {
		return nil
	}

	return current
}

// mappingValue returns value node for key in mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for index := 0; index+1 < len(node.Content); index += 2 {
		if node.Content[index].Value == key {
			return node.Content[index+1]
		}
	}

	return nil
}
