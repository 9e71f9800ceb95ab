// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

package schemaxml

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	// ExampleItemCount is the number of item elements rendered for every array.
	ExampleItemCount = 2
	// EnumExampleIndex selects which enum entry is used as example value.
	EnumExampleIndex = 0
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// exampleInstant is the fixed timestamp used for date and date-time placeholders.
var exampleInstant = time.UnixMilli(1).UTC()

// renderValue returns placeholder text for scalar type and format.
func renderValue(schemaType, format string) (string, error) {
	switch schemaType {
	case "string":
		switch format {
		case "date":
			return exampleInstant.Format(dateLayout), nil
		case "date-time":
			return exampleInstant.Format(dateTimeLayout), nil
		default:
			return "string", nil
		}
	case "integer":
		return "1", nil
	case "number":
		return "1.1", nil
	case "boolean":
		return "true", nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedType, schemaType)
	}
}

// primitiveText selects example text for primitive node: enum, then example, then placeholder.
func primitiveText(schema *Schema) (string, error) {
	if len(schema.Enum) > EnumExampleIndex {
		return formatScalar(schema.Enum[EnumExampleIndex]), nil
	}

	if schema.Example != nil {
		return formatScalar(schema.Example), nil
	}

	return renderValue(schema.Type, schema.Format)
}

// formatScalar converts decoded JSON/YAML value into element text.
func formatScalar(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		typed = typed.UTC()
		if typed.Equal(typed.Truncate(24 * time.Hour)) {
			return typed.Format(dateLayout)
		}

		return typed.Format(time.RFC3339Nano)
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}

		return string(data)
	}
}
