package explain

import "github.com/abhisek/circuitz/internal/llm"

// ExplanationSchema is the structured output requested from the model.
var ExplanationSchema = &llm.Schema{
	Name:        "circuit-explanation",
	Description: "A numbered, step-by-step worked solution for a DC resistor circuit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "What to do in this step, in plain sentences",
						},
						"formula": map[string]any{
							"type":        "string",
							"description": "A plain-text formula with numbers substituted, e.g. \"R_total = 10Ω + 20Ω = 30Ω\". Empty when the step has no formula.",
						},
					},
					"required":             []any{"text", "formula"},
					"additionalProperties": false,
				},
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The final value with its unit, e.g. \"30Ω\"",
			},
		},
		"required":             []any{"steps", "answer"},
		"additionalProperties": false,
	},
}

// Step is one numbered step of a worked solution.
type Step struct {
	Text    string `json:"text"`
	Formula string `json:"formula"`
}

type explanationOutput struct {
	Steps  []Step `json:"steps"`
	Answer string `json:"answer"`
}
