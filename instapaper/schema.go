package instapaper

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// listSchema describes the two shapes of a bookmark list response: a bare
// array of typed items (bookmark, user, meta...) or an object carrying a
// bookmarks array. Items typed "bookmark" must be well formed.
const listSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "bookmark": {
      "type": "object",
      "required": ["bookmark_id", "url"],
      "properties": {
        "bookmark_id": {"type": "integer"},
        "url": {"type": "string"},
        "title": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "time": {"type": ["number", "null"]}
      }
    },
    "item": {
      "type": "object",
      "properties": {
        "type": {"type": "string"}
      },
      "if": {
        "required": ["type"],
        "properties": {"type": {"const": "bookmark"}}
      },
      "then": {"$ref": "#/$defs/bookmark"}
    }
  },
  "oneOf": [
    {
      "type": "array",
      "items": {"$ref": "#/$defs/item"}
    },
    {
      "type": "object",
      "required": ["bookmarks"],
      "properties": {
        "bookmarks": {
          "type": "array",
          "items": {"$ref": "#/$defs/bookmark"}
        }
      }
    }
  ]
}`

const listSchemaURL = "bookmark-list.json"

var compiledListSchema = mustCompileSchema(listSchemaURL, listSchema)

func mustCompileSchema(loc, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(loc, doc); err != nil {
		panic(err)
	}
	sch, err := c.Compile(loc)
	if err != nil {
		panic(err)
	}
	return sch
}
