// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import "errors"

var (
	// ErrUnknownReference is returned when $ref names a model absent from the registry.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnsupportedType is returned when a primitive node has a type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported schema type")
	// ErrMalformedSchema is returned when a node cannot be classified as reference, array, object or primitive.
	ErrMalformedSchema = errors.New("malformed schema")
	// ErrCyclicReference is returned when a model is re-entered while it is still being expanded.
	ErrCyclicReference = errors.New("cyclic reference")
	// ErrDecodeSchema is returned when schema JSON or YAML decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrDecodeDocument is returned when API document decoding fails.
	ErrDecodeDocument = errors.New("decode document")
	// ErrUnsupportedDocument is returned when document is neither Swagger 2.0 nor OpenAPI 3.
	ErrUnsupportedDocument = errors.New("unsupported document version")
	// ErrReadDocumentFile is returned when document file loading fails.
	ErrReadDocumentFile = errors.New("read document file")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
	// ErrWriteXML is returned when rendered element tree cannot be serialized.
	ErrWriteXML = errors.New("write xml")
	// ErrEmptyDocument is returned when document has neither models nor operations to render.
	ErrEmptyDocument = errors.New("document has no models or operations to render")
)
