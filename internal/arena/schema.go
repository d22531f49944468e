// internal/arena/schema.go
package arena

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema is returned when a payload does not have the expected shape.
var ErrSchema = errors.New("payload does not match schema")

var questionRowSchema = map[string]any{
	"type":     "object",
	"required": []string{"question"},
	"properties": map[string]any{
		"question": map[string]any{"type": []string{"string", "integer"}},
	},
	"additionalProperties": map[string]any{"type": []string{"number", "string", "boolean", "null"}},
}

var resultsSchema = map[string]any{
	"type":     "object",
	"required": []string{"results", "competition_info"},
	"properties": map[string]any{
		"results": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "array", "items": questionRowSchema},
		},
		"competition_info": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"num_problems":     map[string]any{"type": "integer", "minimum": 0},
					"medal_thresholds": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
					"judge":            map[string]any{"type": "boolean"},
				},
			},
		},
	},
}

var secondarySchema = map[string]any{
	"type":                 "object",
	"additionalProperties": map[string]any{"type": "array", "items": questionRowSchema},
}

var datesSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "boolean"},
	},
}

var traceSchema = map[string]any{
	"type":     "object",
	"required": []string{"statement", "model_outputs"},
	"properties": map[string]any{
		"statement": map[string]any{"type": []string{"string", "null"}},
		"model_outputs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct":  map[string]any{"type": []string{"boolean", "null"}},
					"solution": map[string]any{"type": []string{"string", "null"}},
					"judgment": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"details"},
						},
					},
				},
			},
		},
	},
}

var schemaLoaders = map[string]gojsonschema.JSONLoader{
	endpointResults:   gojsonschema.NewGoLoader(resultsSchema),
	endpointSecondary: gojsonschema.NewGoLoader(secondarySchema),
	endpointDates:     gojsonschema.NewGoLoader(datesSchema),
	endpointTraces:    gojsonschema.NewGoLoader(traceSchema),
}

// validatePayload checks a response body against the schema of its endpoint.
func validatePayload(endpoint string, body []byte) error {
	loader, ok := schemaLoaders[endpoint]
	if !ok {
		return nil
	}
	result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%s: %w: %v", endpoint, ErrSchema, err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%s: %w: %s", endpoint, ErrSchema, strings.Join(details, "; "))
}
