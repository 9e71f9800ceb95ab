// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"fmt"
	"strings"
)

// resolveReference looks up the model named by the last $ref path segment.
func resolveReference(ref string, registry Registry) (Model, error) {
	name := referenceName(ref)
	if name == "" {
		return Model{}, fmt.Errorf("%w %q", ErrUnknownReference, ref)
	}

	model, ok := registry.Lookup(name)
	if !ok || model.Definition == nil {
		return Model{}, fmt.Errorf("%w %q", ErrUnknownReference, ref)
	}

	if model.Name == "" {
		model.Name = name
	}

	return model, nil
}

// referenceName extracts model name after the last slash of $ref value.
func referenceName(ref string) string {
	ref = strings.TrimSpace(ref)
	if index := strings.LastIndex(ref, "/"); index >= 0 {
		ref = ref[index+1:]
	}

	return decodeJSONPointerToken(strings.TrimPrefix(ref, "#"))
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// referenceGuard tracks models currently being expanded on the recursion stack.
type referenceGuard struct {
	active map[string]int
}

// enter registers model as active and returns release callback.
func (guard *referenceGuard) enter(name string) (func(), error) {
	if guard.active == nil {
		guard.active = make(map[string]int)
	}

	if guard.active[name] > 0 {
		return nil, fmt.Errorf("%w: model %q", ErrCyclicReference, name)
	}

	guard.active[name]++
	return func() {
		guard.active[name]--
		if guard.active[name] <= 0 {
			delete(guard.active, name)
		}
	}, nil
}
