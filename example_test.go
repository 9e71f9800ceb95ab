// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestGenerateExampleJSONKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	registry := loadPetstoreRegistry(t)
	got, err := GenerateExampleJSON(&Schema{Ref: "#/definitions/Pet"}, registry, false)
	if err != nil {
		t.Fatalf("GenerateExampleJSON: %v", err)
	}

	want := `{
  "id": 1,
  "category": {
    "id": 1,
    "name": "string"
  },
  "name": "doggie",
  "photoUrls": [
    "string"
  ],
  "tags": [
    {
      "id": 1,
      "name": "string"
    }
  ],
  "status": "available"
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExampleJSONParameterOmitsReadOnly(t *testing.T) {
	t.Parallel()

	registry := loadPetstoreRegistry(t)
	got, err := GenerateExampleJSON(&Schema{Ref: "#/definitions/Pet"}, registry, true)
	if err != nil {
		t.Fatalf("GenerateExampleJSON: %v", err)
	}

	if !strings.HasPrefix(string(got), "{\n  \"category\": {") {
		t.Fatalf("readOnly id should be omitted for parameter:\n%s", got)
	}
}

func TestGenerateExampleJSONDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	schema := mustParseSchema(t, `{"type": "object", "properties": {"q": {"type": "string", "example": "a<b>&c"}}}`)
	got, err := GenerateExampleJSON(schema, nil, false)
	if err != nil {
		t.Fatalf("GenerateExampleJSON: %v", err)
	}

	if diff := cmp.Diff("{\n  \"q\": \"a<b>&c\"\n}\n", string(got)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExampleYAMLIncludesDescriptionComments(t *testing.T) {
	t.Parallel()

	registry := loadPetstoreRegistry(t)
	got, err := GenerateExampleYAML(&Schema{Ref: "#/definitions/Pet"}, registry, true)
	if err != nil {
		t.Fatalf("GenerateExampleYAML: %v", err)
	}

	text := string(got)
	assertContains(t, text, "# pet status in the store\nstatus: available")
	assertNotContains(t, text, "\nid: 1")

	var decoded map[string]any
	if err := yaml.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("unmarshal generated yaml: %v", err)
	}

	want := map[string]any{
		"category":  map[string]any{"id": 1, "name": "string"},
		"name":      "doggie",
		"photoUrls": []any{"string"},
		"tags":      []any{map[string]any{"id": 1, "name": "string"}},
		"status":    "available",
	}

	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}

	if strings.Index(text, "category:") > strings.Index(text, "photoUrls:") {
		t.Fatalf("yaml keys are not in declaration order:\n%s", text)
	}
}

func TestGenerateExampleFormats(t *testing.T) {
	t.Parallel()

	schema := mustParseSchema(t, `{"type": "array", "items": {"type": "string", "format": "date"}, "xml": {"name": "days", "wrapped": true}}`)

	cases := []struct {
		format ExampleFormat
		want   string
	}{
		{format: "XML", want: "<days><days>1970-01-01</days><days>1970-01-01</days></days>"},
		{format: ExampleFormatJSON, want: "[\n  \"1970-01-01\"\n]\n"},
		{format: " yaml ", want: "- \"1970-01-01\"\n"},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			t.Parallel()

			got, err := GenerateExample("dates", schema, nil, false, tc.format)
			if err != nil {
				t.Fatalf("GenerateExample: %v", err)
			}

			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Fatalf("example mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateExampleErrors(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(Model{
		Name:       "Node",
		Definition: mustParseSchema(t, `{"type": "object", "properties": {"child": {"$ref": "#/definitions/Node"}}}`),
	})

	if _, err := GenerateExample("x", &Schema{Type: "string"}, nil, false, "toml"); !errors.Is(err, ErrUnknownExampleFormat) {
		t.Fatalf("unknown format error = %v, want %v", err, ErrUnknownExampleFormat)
	}

	if _, err := GenerateExampleJSON(&Schema{Ref: "#/definitions/Node"}, registry, false); !errors.Is(err, ErrCyclicReference) {
		t.Fatalf("cyclic json error = %v, want %v", err, ErrCyclicReference)
	}

	if _, err := GenerateExampleYAML(&Schema{Ref: "#/definitions/Other"}, registry, false); !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("unknown reference yaml error = %v, want %v", err, ErrUnknownReference)
	}
}

func TestNormalizeExampleFormat(t *testing.T) {
	t.Parallel()

	got, err := NormalizeExampleFormat(" JSON ")
	if err != nil || got != ExampleFormatJSON {
		t.Fatalf("NormalizeExampleFormat = %q, %v", got, err)
	}

	if _, err := NormalizeExampleFormat(""); !errors.Is(err, ErrUnknownExampleFormat) {
		t.Fatalf("empty format error = %v, want %v", err, ErrUnknownExampleFormat)
	}
}
