// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"bytes"
	"fmt"

	"github.com/shabbyrobe/xmlwriter"
)

// namespaceAttribute is the attribute token written for xml.namespace.
// It is "xlmns", not "xmlns"; existing example consumers match on it.
const namespaceAttribute = "xlmns"

// xmlAttr is one rendered name/value attribute pair.
type xmlAttr struct {
	Name  string
	Value string
}

// qualifiedName joins optional prefix and local name.
func qualifiedName(name, prefix string) string {
	if prefix == "" {
		return name
	}

	return prefix + ":" + name
}

// namespaceAttr builds namespace declaration, prefixed when the element has a prefix.
func namespaceAttr(prefix, namespace string) xmlwriter.Attr {
	name := namespaceAttribute
	if prefix != "" {
		name += ":" + prefix
	}

	return xmlwriter.Attr{Name: name, Value: namespace}
}

// elementFor converts rendered node into writer element.
// Namespace declaration goes first, then attributes in declaration order.
func elementFor(node xmlNode) xmlwriter.Elem {
	elem := xmlwriter.Elem{
		Name: qualifiedName(node.Name, node.Prefix),
		Full: true,
	}

	if node.Namespace != "" {
		elem.Attrs = append(elem.Attrs, namespaceAttr(node.Prefix, node.Namespace))
	}

	for _, attr := range node.Attrs {
		elem.Attrs = append(elem.Attrs, xmlwriter.Attr{Name: attr.Name, Value: attr.Value})
	}

	if node.Text != "" {
		elem.Content = append(elem.Content, xmlwriter.Text(node.Text))
	}

	for _, child := range node.Children {
		elem.Content = append(elem.Content, elementFor(child))
	}

	return elem
}

// writeXMLNodes serializes element tree without declaration or indentation.
func writeXMLNodes(nodes []xmlNode) (string, error) {
	var out bytes.Buffer
	writer := xmlwriter.Open(&out)

	for _, node := range nodes {
		if err := writer.Write(elementFor(node)); err != nil {
			return "", fmt.Errorf("%w: %w", ErrWriteXML, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteXML, err)
	}

	return out.String(), nil
}
