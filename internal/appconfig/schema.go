// internal/appconfig/schema.go
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidConfig is returned when a config file does not match the schema.
var ErrInvalidConfig = errors.New("invalid configuration")

var marginSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"top":    map[string]any{"type": "integer", "minimum": 0},
		"right":  map[string]any{"type": "integer", "minimum": 0},
		"bottom": map[string]any{"type": "integer", "minimum": 0},
		"left":   map[string]any{"type": "integer", "minimum": 0},
	},
	"additionalProperties": false,
}

var configSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]any{
		"source":       map[string]any{"type": "string"},
		"delimiter":    map[string]any{"type": "string", "minLength": 1},
		"headerMode":   map[string]any{"type": "string", "enum": []any{HeaderModeNormalize, HeaderModeExact}},
		"keyColumn":    map[string]any{"type": "string"},
		"valueColumn":  map[string]any{"type": "string"},
		"fetchTimeout": map[string]any{"type": "integer", "minimum": 0},
		"htmlOutput":   map[string]any{"type": "string"},
		"svgOutput":    map[string]any{"type": "string"},
		"pngOutput":    map[string]any{"type": "string"},
		"logFile":      map[string]any{"type": "string"},
		"debug":        map[string]any{"type": "boolean"},
		"chart": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"width":        map[string]any{"type": "integer", "minimum": 1},
				"height":       map[string]any{"type": "integer", "minimum": 1},
				"margin":       marginSchema,
				"padding":      map[string]any{"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1},
				"barColor":     map[string]any{"type": "string"},
				"hoverColor":   map[string]any{"type": "string"},
				"tooltipColor": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		"metrics": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"missingKeyPolicy": map[string]any{"type": "string", "enum": []any{PolicyUnavailable, PolicyZero}},
				"placeholder":      map[string]any{"type": "string"},
				"definitions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"name", "op", "keys"},
						"properties": map[string]any{
							"name": map[string]any{"type": "string", "minLength": 1},
							"op":   map[string]any{"type": "string", "enum": []any{"sum", "ratio_round", "product"}},
							"keys": map[string]any{
								"type":     "array",
								"minItems": 1,
								"items":    map[string]any{"type": "string"},
							},
						},
						"additionalProperties": false,
					},
				},
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
}

// Validate checks a JSON config document against the config schema.
func Validate(raw []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(configSchema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// ValidateFile validates path when it is a JSON file. Other formats viper
// understands (yaml, toml) are left to viper's own decoding.
func ValidateFile(path string) error {
	if path == "" || !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := Validate(raw); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}
