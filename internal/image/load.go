package image

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Decodes a YAML list of definitions.
//
// Decoding is strict: keys that are not fields of [Definition] are an error.
// The definitions are not normalized.
func LoadDefinitions(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := yaml.UnmarshalStrict(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return defs, nil
}

// Reads and decodes a YAML definition file.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	defs, err := LoadDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}
