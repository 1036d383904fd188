// Package preset persists column mappings so a recurring source layout
// only has to be mapped once. Presets are JSON or YAML by file extension
// and validated against a schema plus the template field list on load.
package preset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/schema"
)

const presetSchemaJSON = `{
	"type": "object",
	"additionalProperties": {"type": "string"}
}`

var presetSchema = jsonschema.MustCompileString("preset.json", presetSchemaJSON)

// Load reads a mapping preset. Keys are template field names, values the
// source column headers. Unknown template fields are rejected so a stale
// preset fails loudly instead of silently dropping columns.
func Load(path string) (mapper.Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "preset: read file")
	}

	var doc any
	if isYAML(path) {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, eris.Wrap(err, "preset: parse yaml")
		}
		// Revalidate through JSON so the schema sees canonical types.
		jsonRaw, err := json.Marshal(doc)
		if err != nil {
			return nil, eris.Wrap(err, "preset: convert yaml")
		}
		raw = jsonRaw
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "preset: parse json")
	}
	if err := presetSchema.Validate(doc); err != nil {
		return nil, eris.Wrap(err, "preset: invalid preset")
	}

	m := make(mapper.Mapping)
	for k, v := range doc.(map[string]any) {
		m[k] = v.(string)
	}

	known := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		known[f.Name] = true
	}
	for field := range m {
		if !known[field] {
			return nil, eris.Errorf("preset: unknown template field %q", field)
		}
	}
	return m, nil
}

// Save writes a mapping preset, JSON or YAML by extension.
func Save(path string, m mapper.Mapping) error {
	var (
		raw []byte
		err error
	)
	if isYAML(path) {
		raw, err = yaml.Marshal(m)
	} else {
		raw, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "preset: marshal")
	}
	return eris.Wrap(os.WriteFile(path, raw, 0o644), "preset: write file")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
