package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func stepSchema() *Schema {
	return &Schema{
		Name: "test-steps",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"steps": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text":    map[string]any{"type": "string"},
							"formula": map[string]any{"type": "string"},
						},
						"required": []any{"text"},
					},
				},
				"unit": map[string]any{"type": "string", "enum": []any{"Ω", "A", "V"}},
			},
			"required": []any{"steps"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"steps":[{"text":"Add","formula":"R1 + R2"}],"unit":"Ω"}`, false},
		{"optional omitted", `{"steps":[{"text":"Add"}]}`, false},
		{"missing required", `{"unit":"A"}`, true},
		{"nested missing required", `{"steps":[{"formula":"V/R"}]}`, true},
		{"wrong type", `{"steps":"add them"}`, true},
		{"bad enum", `{"steps":[],"unit":"mA"}`, true},
		{"malformed", `{"steps":[`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(stepSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("error content = %q, want %q", inv.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := stepSchema()
	s.Name = "test-cache"
	if err := validateResponse(s, json.RawMessage(`{"steps":[]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := schemaCache.Load("test-cache"); !ok {
		t.Fatal("compiled schema was not cached")
	}
}
