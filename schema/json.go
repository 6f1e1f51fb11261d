package schema

import (
	"encoding/json"
	"fmt"
)

// LoadJSON decodes a Schema from the same document shape LoadYAML accepts,
// for callers (like rbdump) who keep their schema definitions in JSON rather
// than YAML.
func LoadJSON(data []byte) (*Schema, error) {
	var raw rawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: parse json: %w", err)
	}
	return resolve(&raw)
}
