// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package mapdata

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the map file schema.
const SchemaID = "https://holomush.dev/schemas/map.schema.json"

var (
	schemaOnce  sync.Once
	schemaCache *jschema.Schema
	schemaErr   error
)

// GenerateSchema generates the JSON Schema of map files from File.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
		FieldNameTag:   "yaml",
	}
	schema := r.Reflect(&File{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Tileworld Map"
	schema.Description = "Schema for tileworld map files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code(CodeSchema).Wrapf(err, "marshal schema")
	}
	return data, nil
}

// ValidateSchema validates YAML data against the map file schema.
func ValidateSchema(data []byte) error {
	if len(data) == 0 {
		return oops.Code(CodeParse).Errorf("map data is empty")
	}

	var yamlData any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return oops.Code(CodeParse).Wrapf(err, "invalid YAML")
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(convertToJSONTypes(yamlData)); err != nil {
		return oops.Code(CodeSchema).Wrapf(err, "schema validation failed")
	}
	return nil
}

func compiledSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaBytes, err := GenerateSchema()
		if err != nil {
			schemaErr = err
			return
		}
		var schemaData any
		if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
			schemaErr = oops.Code(CodeSchema).Wrapf(err, "parse schema JSON")
			return
		}

		c := jschema.NewCompiler()
		if err := c.AddResource("map.schema.json", schemaData); err != nil {
			schemaErr = oops.Code(CodeSchema).Wrapf(err, "add schema resource")
			return
		}
		schemaCache, schemaErr = c.Compile("map.schema.json")
		if schemaErr != nil {
			schemaErr = oops.Code(CodeSchema).Wrapf(schemaErr, "compile schema")
		}
	})
	return schemaCache, schemaErr
}

// convertToJSONTypes turns YAML-decoded values into the types the validator
// expects.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = convertToJSONTypes(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = convertToJSONTypes(v)
		}
		return out
	case string, int, int64, float64, bool, nil:
		return val
	default:
		if b, err := json.Marshal(val); err == nil {
			var out any
			if err := json.Unmarshal(b, &out); err == nil {
				return out
			}
		}
		return val
	}
}

// FormatSchemaError strips the wrapping prefix from a schema validation
// error for display.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimPrefix(err.Error(), "schema validation failed: ")
}
