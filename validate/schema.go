// Package validate checks scriptgrant configuration before a build runs.
package validate

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/initializ/scriptgrant/schemas"
)

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schemas.ConfigV1Schema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// ValidateConfigSchema validates raw scriptgrant.yaml bytes against the
// config schema. It returns a slice of validation error descriptions and an
// error if the YAML cannot be read or the schema fails to compile.
func ValidateConfigSchema(yamlData []byte) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(yamlData, &doc); err != nil {
		return nil, fmt.Errorf("parsing config yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting config to json: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
