package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema checks the config against the embedded JSON schema:
// every property must be known and satisfy its minimum and enum constraints.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	root, err := resolve(schema, defs)
	if err != nil {
		return err
	}

	var problems []string
	checkObject("", configMap, root, defs, &problems)
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// resolve follows a local "#/$defs/Name" reference
func resolve(node map[string]any, defs map[string]any) (map[string]any, error) {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node, nil
	}
	name := strings.TrimPrefix(ref, "#/$defs/")
	def, ok := defs[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema reference %s not found", ref)
	}
	return def, nil
}

func checkObject(path string, obj, schema, defs map[string]any, problems *[]string) {
	props, _ := schema["properties"].(map[string]any)
	for key, val := range obj {
		full := strings.TrimPrefix(path+"."+key, ".")
		propRaw, ok := props[key].(map[string]any)
		if !ok {
			*problems = append(*problems, fmt.Sprintf("%s is not a known property", full))
			continue
		}
		prop, err := resolve(propRaw, defs)
		if err != nil {
			*problems = append(*problems, err.Error())
			continue
		}

		switch v := val.(type) {
		case map[string]any:
			checkObject(full, v, prop, defs, problems)
		case float64:
			if minimum, ok := prop["minimum"].(float64); ok && v < minimum {
				*problems = append(*problems, fmt.Sprintf("%s must be >= %v, got %v", full, minimum, v))
			}
		case string:
			if enum, ok := prop["enum"].([]any); ok && len(enum) > 0 {
				found := false
				for _, e := range enum {
					if e == v {
						found = true
						break
					}
				}
				if !found {
					*problems = append(*problems, fmt.Sprintf("%s must be one of %v, got %q", full, enum, v))
				}
			}
		}
	}
}
