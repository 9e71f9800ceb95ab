// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

/*
Package schemaxml renders XML example payloads from Swagger/OpenAPI schemas.

A schema node is classified as a reference, an array, an object or a primitive
and rendered into a compact XML fragment: no declaration, no indentation and
no whitespace between tags. The xml object of a schema (name, prefix,
namespace, wrapped, attribute) controls element naming, namespace
declarations, array wrapping and attribute placement. Arrays always render
ExampleItemCount copies of their item. Output is deterministic and follows
property declaration order.

Render one schema against a registry of named models:

	registry, err := schemaxml.ParseRegistry(documentBytes)
	if err != nil {
		return err
	}

	fragment, err := schemaxml.RenderXML("", &schemaxml.Schema{Ref: "#/definitions/Pet"}, registry, false)
	if err != nil {
		return err
	}

	fmt.Println(fragment)

Render request and response bodies of every operation that consumes or
produces XML:

	examples, err := schemaxml.RenderOperations(documentBytes)
	if err != nil {
		return err
	}

	for _, example := range examples {
		fmt.Println(example.Method, example.Path, example.Role, example.XML)
	}

Generate the same example as JSON or YAML:

	yamlExample, err := schemaxml.GenerateExample("Pet", schema, registry, true, schemaxml.ExampleFormatYAML)
	if err != nil {
		return err
	}

	fmt.Println(string(yamlExample))

Render markdown reference with XML examples for all models and operations:

	md, err := schemaxml.RenderFile("petstore.yaml", schemaxml.Options{
		TemplateName: "table",
	})
	if err != nil {
		return err
	}

	fmt.Println(md)
*/
package schemaxml
