// Package schemas embeds the JSON schemas used for validation.
package schemas

import _ "embed"

// ConfigV1Schema is the JSON schema for scriptgrant.yaml.
//
//go:embed config.schema.json
var ConfigV1Schema []byte
