// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"fmt"
	"strconv"
	"strings"
)

// schemaAttributes renders flat attribute list for one schema node.
func schemaAttributes(schema *Schema) []attributeView {
	if schema == nil {
		return nil
	}

	out := make([]attributeView, 0, 12)

	if kind, err := schema.Kind(); err == nil {
		out = append(out, attributeView{Name: "Kind", Value: kind.String()})
	}

	if schema.Type != "" {
		out = append(out, attributeView{Name: "Type", Value: inlineCode(schema.Type)})
	}

	if schema.Format != "" {
		out = append(out, attributeView{Name: "Format", Value: inlineCode(schema.Format)})
	}

	if schema.Ref != "" {
		out = append(out, attributeView{Name: "Reference", Value: inlineCode(schema.Ref)})
	}

	if schema.Items != nil {
		out = append(out, attributeView{Name: "Items", Value: summarizeSchema(schema.Items)})
	}

	if len(schema.Properties) > 0 {
		out = append(out, attributeView{Name: "Properties", Value: strconv.Itoa(len(schema.Properties))})
	}

	if len(schema.Enum) > 0 {
		out = append(out, attributeView{Name: "Enum", Value: jsonList(schema.Enum)})
	}

	if schema.Example != nil {
		out = append(out, attributeView{Name: "Example", Value: inlineCode(formatScalar(schema.Example))})
	}

	if schema.ReadOnly {
		out = append(out, attributeView{Name: "Read only", Value: yesNo(schema.ReadOnly)})
	}

	if xmlText := xmlSummary(schema.XML); xmlText != "" {
		out = append(out, attributeView{Name: "XML", Value: xmlText})
	}

	return out
}

// summarizeSchema provides compact markdown text for nested schema.
func summarizeSchema(schema *Schema) string {
	switch {
	case schema.Ref != "":
		return "reference " + inlineCode(schema.Ref)
	case schema.Type != "":
		return "schema type " + inlineCode(schema.Type)
	default:
		return "inline schema"
	}
}

// xmlSummary renders xml object fields as deterministic key/value pairs.
func xmlSummary(meta *XML) string {
	if meta == nil {
		return ""
	}

	items := make([]string, 0, 5)
	if meta.Name != "" {
		items = append(items, "name="+mustJSONInline(meta.Name))
	}

	if meta.Prefix != "" {
		items = append(items, "prefix="+mustJSONInline(meta.Prefix))
	}

	if meta.Namespace != "" {
		items = append(items, "namespace="+mustJSONInline(meta.Namespace))
	}

	if meta.Wrapped {
		items = append(items, "wrapped=true")
	}

	if meta.Attribute {
		items = append(items, "attribute=true")
	}

	return escapeInline(strings.Join(items, "; "))
}

// inlineCode wraps value into escaped inline code span.
func inlineCode(value string) string {
	return fmt.Sprintf("`%s`", escapeInline(value))
}

// yesNo renders bool as "yes" or "no".
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

// jsonList renders JSON values list into comma-separated inline code tokens.
func jsonList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, inlineCode(mustJSONInline(item)))
	}

	return strings.Join(parts, ", ")
}
