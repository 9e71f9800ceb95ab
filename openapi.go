// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const (
	// ExampleRoleRequest marks request body examples rendered in parameter context.
	ExampleRoleRequest = "request"
	// ExampleRoleResponse marks response body examples.
	ExampleRoleResponse = "response"
)

// operationMethods fixes method iteration order inside one path item.
var operationMethods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
	http.MethodTrace,
}

// OperationExample is one XML request or response body example of an API operation.
type OperationExample struct {
	OperationID string
	Method      string
	Path        string
	// Role is ExampleRoleRequest or ExampleRoleResponse.
	Role string
	// Status is response status code, empty for requests.
	Status    string
	MediaType string
	XML       string
	// Err is set when example could not be rendered; XML is empty then.
	Err error
}

// operationBody is one body schema located in the document before rendering.
type operationBody struct {
	example OperationExample
	name    string
	pointer []string
}

// operationDocument is decoded API document with model registry.
type operationDocument struct {
	root     *yaml.Node
	registry Registry
}

// RenderOperations renders XML examples for request and response bodies of every
// operation in Swagger 2.0 or OpenAPI 3 document bytes.
//
// Only operations that consume or produce an XML media type are included.
// Failure of one example is stored in OperationExample.Err and does not stop
// other operations.
func RenderOperations(data []byte) ([]OperationExample, error) {
	root, err := parseDocumentNode(data)
	if err != nil {
		return nil, err
	}

	registry, err := registryFromNode(root)
	if err != nil {
		return nil, err
	}

	document := operationDocument{root: root, registry: registry}

	var bodies []operationBody
	switch version := documentVersion(root); {
	case version == "2.0":
		bodies, err = swaggerOperationBodies(root)
	case strings.HasPrefix(version, "3."):
		bodies, err = openAPIOperationBodies(root)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedDocument, version)
	}

	if err != nil {
		return nil, err
	}

	out := make([]OperationExample, 0, len(bodies))
	for _, body := range bodies {
		out = append(out, document.render(body))
	}

	return out, nil
}

// render decodes located body schema and renders its XML example.
func (document operationDocument) render(body operationBody) OperationExample {
	example := body.example

	node := nodeAtPointer(document.root, body.pointer)
	if node == nil {
		example.Err = fmt.Errorf("%w: schema not found at /%s", ErrMalformedSchema, strings.Join(body.pointer, "/"))
		return example
	}

	schema := &Schema{}
	if err := node.Decode(schema); err != nil {
		example.Err = fmt.Errorf("%w: %w", ErrDecodeSchema, err)
		return example
	}

	rendered, err := RenderXML(bodyElementName(body.name, schema), schema, document.registry, example.Role == ExampleRoleRequest)
	if err != nil {
		example.Err = err
		return example
	}

	example.XML = rendered
	return example
}

// bodyElementName drops the generic body name for model bodies so the model name is used.
func bodyElementName(name string, schema *Schema) string {
	if schema.Ref != "" {
		return ""
	}

	if items := schema.Items; items != nil && items.Ref != "" && !schema.xmlMeta().Wrapped {
		return ""
	}

	return name
}

// documentVersion returns swagger or openapi version string of document root.
func documentVersion(root *yaml.Node) string {
	if node := mappingValue(root, "swagger"); node != nil {
		return strings.TrimSpace(node.Value)
	}

	if node := mappingValue(root, "openapi"); node != nil {
		return strings.TrimSpace(node.Value)
	}

	return ""
}

// swaggerOperationBodies locates XML body schemas in Swagger 2.0 document.
func swaggerOperationBodies(root *yaml.Node) ([]operationBody, error) {
	var doc openapi2.T
	if err := decodeNodeJSON(root, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	var bodies []operationBody
	for _, path := range sortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}

		operations := item.Operations()
		for _, method := range operationMethods {
			operation := operations[method]
			if operation == nil {
				continue
			}

			base := OperationExample{
				OperationID: operationID(operation.OperationID, method, path),
				Method:      method,
				Path:        path,
			}
			operationPointer := []string{"paths", path, strings.ToLower(method)}

			if mediaType := firstXMLMediaType(orDefault(operation.Consumes, doc.Consumes)); mediaType != "" {
				for index, parameter := range operation.Parameters {
					if parameter == nil {
						continue
					}

					pointer := append(cloneStrings(operationPointer), "parameters", strconv.Itoa(index))
					if parameter.Ref != "" {
						pointer = referencePointer(parameter.Ref)
						resolved := parameterAt(root, pointer)
						if resolved == nil || resolved.In != "body" {
							continue
						}

						parameter = resolved
					}

					if parameter.In != "body" {
						continue
					}

					example := base
					example.Role = ExampleRoleRequest
					example.MediaType = mediaType
					bodies = append(bodies, operationBody{
						example: example,
						name:    parameter.Name,
						pointer: append(pointer, "schema"),
					})
				}
			}

			mediaType := firstXMLMediaType(orDefault(operation.Produces, doc.Produces))
			if mediaType == "" {
				continue
			}

			for _, status := range sortedKeys(operation.Responses) {
				response := operation.Responses[status]
				if response == nil {
					continue
				}

				pointer := append(cloneStrings(operationPointer), "responses", status)
				if response.Ref != "" {
					pointer = referencePointer(response.Ref)
				}

				if mappingValue(nodeAtPointer(root, pointer), "schema") == nil {
					continue
				}

				example := base
				example.Role = ExampleRoleResponse
				example.Status = status
				example.MediaType = mediaType
				bodies = append(bodies, operationBody{
					example: example,
					name:    "response",
					pointer: append(pointer, "schema"),
				})
			}
		}
	}

	return bodies, nil
}

// decodeNodeJSON decodes YAML node into kin-openapi type through its JSON unmarshalers.
func decodeNodeJSON(node *yaml.Node, target any) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	data, err := json.Marshal(stringKeyedValue(raw))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, target)
}

// stringKeyedValue converts YAML maps with non-string keys (such as status codes) for JSON encoding.
func stringKeyedValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = stringKeyedValue(item)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = stringKeyedValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, stringKeyedValue(item))
		}

		return out
	default:
		return typed
	}
}

// parameterAt decodes shared Swagger 2.0 parameter at pointer.
func parameterAt(root *yaml.Node, pointer []string) *openapi2.Parameter {
	node := nodeAtPointer(root, pointer)
	if node == nil {
		return nil
	}

	var parameter struct {
		In   string `yaml:"in"`
		Name string `yaml:"name"`
	}
	if err := node.Decode(&parameter); err != nil {
		return nil
	}

	return &openapi2.Parameter{In: parameter.In, Name: parameter.Name}
}

// openAPIOperationBodies locates XML body schemas in OpenAPI 3 document.
// References are not resolved up front, so dangling schema refs fail per example.
func openAPIOperationBodies(root *yaml.Node) ([]operationBody, error) {
	var doc openapi3.T
	if err := decodeNodeJSON(root, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	if doc.Paths == nil {
		return nil, nil
	}

	paths := doc.Paths.Map()

	var bodies []operationBody
	for _, path := range sortedKeys(paths) {
		item := paths[path]
		if item == nil {
			continue
		}

		operations := item.Operations()
		for _, method := range operationMethods {
			operation := operations[method]
			if operation == nil {
				continue
			}

			base := OperationExample{
				OperationID: operationID(operation.OperationID, method, path),
				Method:      method,
				Path:        path,
			}
			operationPointer := []string{"paths", path, strings.ToLower(method)}

			if body := operation.RequestBody; body != nil {
				pointer := append(cloneStrings(operationPointer), "requestBody")
				value := body.Value
				if body.Ref != "" {
					pointer = referencePointer(body.Ref)
					value = &openapi3.RequestBody{}
					if err := decodeAtPointer(root, pointer, value); err != nil {
						value = nil
					}
				}

				var content openapi3.Content
				if value != nil {
					content = value.Content
				}

				for _, mediaType := range xmlMediaTypes(content) {
					example := base
					example.Role = ExampleRoleRequest
					example.MediaType = mediaType
					bodies = append(bodies, operationBody{
						example: example,
						name:    "body",
						pointer: append(cloneStrings(pointer), "content", mediaType, "schema"),
					})
				}
			}

			if operation.Responses == nil {
				continue
			}

			responses := operation.Responses.Map()
			for _, status := range sortedKeys(responses) {
				response := responses[status]
				if response == nil {
					continue
				}

				pointer := append(cloneStrings(operationPointer), "responses", status)
				value := response.Value
				if response.Ref != "" {
					pointer = referencePointer(response.Ref)
					value = &openapi3.Response{}
					if err := decodeAtPointer(root, pointer, value); err != nil {
						value = nil
					}
				}

				if value == nil {
					continue
				}

				for _, mediaType := range xmlMediaTypes(value.Content) {
					example := base
					example.Role = ExampleRoleResponse
					example.Status = status
					example.MediaType = mediaType
					bodies = append(bodies, operationBody{
						example: example,
						name:    "response",
						pointer: append(cloneStrings(pointer), "content", mediaType, "schema"),
					})
				}
			}
		}
	}

	return bodies, nil
}

// decodeAtPointer decodes shared component at pointer into target.
func decodeAtPointer(root *yaml.Node, pointer []string, target any) error {
	node := nodeAtPointer(root, pointer)
	if node == nil {
		return fmt.Errorf("%w: component not found at /%s", ErrMalformedSchema, strings.Join(pointer, "/"))
	}

	return decodeNodeJSON(node, target)
}

// xmlMediaTypes returns sorted XML media types that carry a schema.
func xmlMediaTypes(content openapi3.Content) []string {
	out := make([]string, 0, len(content))
	for mediaType, value := range content {
		if value == nil || value.Schema == nil || !isXMLMediaType(mediaType) {
			continue
		}

		out = append(out, mediaType)
	}

	sort.Strings(out)
	return out
}

// firstXMLMediaType returns first XML media type from consumes/produces list.
func firstXMLMediaType(mediaTypes []string) string {
	for _, mediaType := range mediaTypes {
		if isXMLMediaType(mediaType) {
			return strings.TrimSpace(mediaType)
		}
	}

	return ""
}

// isXMLMediaType reports whether media type is application/xml, text/xml or +xml suffix.
func isXMLMediaType(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if index := strings.IndexByte(mediaType, ';'); index >= 0 {
		mediaType = strings.TrimSpace(mediaType[:index])
	}

	return strings.HasSuffix(mediaType, "/xml") || strings.HasSuffix(mediaType, "+xml")
}

// operationID returns declared operationId or method:path fallback.
func operationID(declared, method, path string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}

	return strings.ToLower(method) + ":" + path
}

// orDefault returns values or fallback when values are empty.
func orDefault(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}

	return fallback
}

// referencePointer converts local "#/a/b" reference into decoded pointer tokens.
func referencePointer(ref string) []string {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	ref = strings.TrimPrefix(ref, "/")
	if ref == "" {
		return nil
	}

	tokens := strings.Split(ref, "/")
	for index, token := range tokens {
		tokens[index] = decodeJSONPointerToken(token)
	}

	return tokens
}

// nodeAtPointer resolves decoded pointer tokens against YAML node tree.
func nodeAtPointer(root *yaml.Node, tokens []string) *yaml.Node {
	current := root
	for _, token := range tokens {
		if current == nil {
			return nil
		}

		switch current.Kind {
		case yaml.MappingNode:
			current = mappingValue(current, token)
		case yaml.SequenceNode:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(current.Content) {
				return nil
			}

			current = current.Content[index]
		default:
			return nil
		}
	}

	return current
}

// cloneStrings returns copy of values safe for append.
func cloneStrings(values []string) []string {
	return append([]string(nil), values...)
}
