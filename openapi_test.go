// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const petXMLTail = "<Category><id>1</id><name>string</name></Category><name>doggie</name>" +
	"<photoUrl><photoUrl>string</photoUrl><photoUrl>string</photoUrl></photoUrl>" +
	"<tag><Tag><id>1</id><name>string</name></Tag><Tag><id>1</id><name>string</name></Tag></tag>" +
	"<status>available</status></Pet>"

func TestRenderOperationsSwagger(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("read petstore fixture: %v", err)
	}

	got, err := RenderOperations(data)
	if err != nil {
		t.Fatalf("RenderOperations: %v", err)
	}

	want := []OperationExample{
		{
			OperationID: "addPet",
			Method:      "POST",
			Path:        "/pet",
			Role:        ExampleRoleRequest,
			MediaType:   "application/xml",
			XML:         "<Pet>" + petXMLTail,
		},
		{
			OperationID: "addPet",
			Method:      "POST",
			Path:        "/pet",
			Role:        ExampleRoleResponse,
			Status:      "200",
			MediaType:   "application/xml",
			XML:         "<Pet><id>1</id>" + petXMLTail,
		},
		{
			OperationID: "findPetsByTags",
			Method:      "GET",
			Path:        "/pet/findByTags",
			Role:        ExampleRoleResponse,
			Status:      "200",
			MediaType:   "application/xml",
			XML:         "<Pets><Pet><id>1</id>" + petXMLTail + "<Pet><id>1</id>" + petXMLTail + "</Pets>",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOperationsOpenAPI3(t *testing.T) {
	t.Parallel()

	document := `openapi: 3.0.3
info:
  title: orders
  version: 1.0.0
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Order"
          application/xml:
            schema:
              $ref: "#/components/schemas/Order"
      responses:
        "201":
          description: created
          content:
            application/vnd.shop+xml; charset=utf-8:
              schema:
                $ref: "#/components/schemas/Order"
        default:
          description: error
          content:
            text/plain:
              schema:
                type: string
  /orders/{id}:
    get:
      responses:
        "200":
          $ref: "#/components/responses/OrderItems"
components:
  responses:
    OrderItems:
      description: order items
      content:
        text/xml:
          schema:
            type: array
            xml:
              name: items
              wrapped: true
            items:
              type: string
              xml:
                name: item
  schemas:
    Order:
      type: object
      xml:
        name: order
      properties:
        id:
          type: integer
          readOnly: true
          xml:
            attribute: true
        placed:
          type: string
          format: date-time
`

	got, err := RenderOperations([]byte(document))
	if err != nil {
		t.Fatalf("RenderOperations: %v", err)
	}

	want := []OperationExample{
		{
			OperationID: "createOrder",
			Method:      "POST",
			Path:        "/orders",
			Role:        ExampleRoleRequest,
			MediaType:   "application/xml",
			XML:         "<order><placed>1970-01-01T00:00:00.001Z</placed></order>",
		},
		{
			OperationID: "createOrder",
			Method:      "POST",
			Path:        "/orders",
			Role:        ExampleRoleResponse,
			Status:      "201",
			MediaType:   "application/vnd.shop+xml; charset=utf-8",
			XML:         `<order id="1"><placed>1970-01-01T00:00:00.001Z</placed></order>`,
		},
		{
			OperationID: "get:/orders/{id}",
			Method:      "GET",
			Path:        "/orders/{id}",
			Role:        ExampleRoleResponse,
			Status:      "200",
			MediaType:   "text/xml",
			XML:         "<items><item>string</item><item>string</item></items>",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOperationsKeepsPerOperationErrors(t *testing.T) {
	t.Parallel()

	document := `{
  "swagger": "2.0",
  "produces": ["application/xml"],
  "paths": {
    "/broken": {"get": {"operationId": "broken", "responses": {"200": {"description": "x", "schema": {"$ref": "#/definitions/Missing"}}}}},
    "/ok": {"get": {"operationId": "ok", "responses": {"200": {"description": "x", "schema": {"type": "string"}}}}}
  }
}`

	got, err := RenderOperations([]byte(document))
	if err != nil {
		t.Fatalf("RenderOperations: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("RenderOperations returned %d examples, want 2", len(got))
	}

	if !errors.Is(got[0].Err, ErrUnknownReference) || got[0].XML != "" {
		t.Fatalf("broken example = %+v, want unknown reference error", got[0])
	}

	want := OperationExample{
		OperationID: "ok",
		Method:      "GET",
		Path:        "/ok",
		Role:        ExampleRoleResponse,
		Status:      "200",
		MediaType:   "application/xml",
		XML:         "<response>string</response>",
	}

	if diff := cmp.Diff(want, got[1], cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("ok example mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOperationsOpenAPI3KeepsPerOperationErrors(t *testing.T) {
	t.Parallel()

	document := `openapi: 3.0.3
info:
  title: broken
  version: 1.0.0
paths:
  /broken:
    get:
      operationId: broken
      responses:
        "200":
          description: x
          content:
            application/xml:
              schema:
                $ref: "#/components/schemas/Missing"
  /ok:
    post:
      operationId: ok
      requestBody:
        $ref: "#/components/requestBodies/Plain"
      responses:
        "200":
          description: x
          content:
            application/xml:
              schema:
                type: string
components:
  requestBodies:
    Plain:
      content:
        application/xml:
          schema:
            $ref: "#/components/schemas/Plain"
  schemas:
    Plain:
      type: object
      properties:
        note:
          type: string
`

	got, err := RenderOperations([]byte(document))
	if err != nil {
		t.Fatalf("RenderOperations: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("RenderOperations returned %d examples, want 3", len(got))
	}

	if !errors.Is(got[0].Err, ErrUnknownReference) || got[0].XML != "" {
		t.Fatalf("broken example = %+v, want unknown reference error", got[0])
	}

	want := []OperationExample{
		{
			OperationID: "ok",
			Method:      "POST",
			Path:        "/ok",
			Role:        ExampleRoleRequest,
			MediaType:   "application/xml",
			XML:         "<Plain><note>string</note></Plain>",
		},
		{
			OperationID: "ok",
			Method:      "POST",
			Path:        "/ok",
			Role:        ExampleRoleResponse,
			Status:      "200",
			MediaType:   "application/xml",
			XML:         "<response>string</response>",
		},
	}

	if diff := cmp.Diff(want, got[1:], cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("ok examples mismatch (-want +got):\n%s", diff)
	}
}

func TestBodyElementName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		schema *Schema
		want   string
	}{
		{name: "model reference", schema: &Schema{Ref: "#/definitions/Pet"}, want: ""},
		{name: "unwrapped model items", schema: &Schema{Type: "array", Items: &Schema{Ref: "#/definitions/Pet"}}, want: ""},
		{name: "wrapped model items", schema: &Schema{Type: "array", Items: &Schema{Ref: "#/definitions/Pet"}, XML: &XML{Wrapped: true}}, want: "body"},
		{name: "inline schema", schema: &Schema{Type: "string"}, want: "body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := bodyElementName("body", tc.schema); got != tc.want {
				t.Fatalf("bodyElementName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderOperationsUnsupportedDocument(t *testing.T) {
	t.Parallel()

	_, err := RenderOperations([]byte(`{"$defs": {"A": {"type": "string"}}}`))
	if !errors.Is(err, ErrUnsupportedDocument) {
		t.Fatalf("RenderOperations error = %v, want %v", err, ErrUnsupportedDocument)
	}
}

func TestIsXMLMediaType(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"application/xml":                true,
		"text/xml":                       true,
		"application/atom+xml":           true,
		"Application/XML; charset=utf-8": true,
		"application/json":               false,
		"application/xml-dtd":            false,
		"":                               false,
	}

	for mediaType, want := range cases {
		if got := isXMLMediaType(mediaType); got != want {
			t.Fatalf("isXMLMediaType(%q) = %v, want %v", mediaType, got, want)
		}
	}
}
