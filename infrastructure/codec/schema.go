package codec

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the JSON Schema every criteria document must satisfy.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["target"],
  "additionalProperties": false,
  "properties": {
    "target": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "id": {"enum": ["", "object_id", "objectid", "uuid", "integer", "int", "string", "text"]},
        "collection": {"type": "string"},
        "id_field": {"type": "string"},
        "type_field": {"type": "string"}
      }
    },
    "ids": {"type": "array"},
    "types": {"type": "array", "items": {"type": "string"}},
    "where": {"type": "object"},
    "any_in": {"$ref": "#/definitions/fieldSets"},
    "all_in": {"$ref": "#/definitions/fieldSets"},
    "not_in": {"$ref": "#/definitions/fieldSets"},
    "excludes": {"type": "object"},
    "ascending": {"$ref": "#/definitions/fields"},
    "descending": {"$ref": "#/definitions/fields"},
    "order_by": {
      "oneOf": [
        {"$ref": "#/definitions/directions"},
        {"type": "array", "items": {"oneOf": [{"type": "string"}, {"$ref": "#/definitions/directions"}]}}
      ]
    },
    "limit": {"oneOf": [{"type": "integer", "minimum": 0}, {"const": "default"}]},
    "skip": {"type": "integer", "minimum": 0},
    "cache": {"type": "boolean"},
    "enslave": {"type": "boolean"},
    "extras": {"type": "object"}
  },
  "definitions": {
    "fields": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "fieldSets": {"type": "object", "additionalProperties": {"type": "array"}},
    "directions": {
      "type": "object",
      "additionalProperties": {"enum": ["asc", "ascending", "desc", "descending", 1, -1]}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validate checks a generic decoded document against documentSchema.
func validate(doc any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, e := range result.Errors() {
		msgs[i] = e.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
