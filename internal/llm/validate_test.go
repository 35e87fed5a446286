package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func vocabSchema() *Schema {
	return &Schema{
		Name:        "test-vocab-entry",
		Description: "A vocabulary entry",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":    map[string]any{"type": "string", "minLength": 1},
				"meaning": map[string]any{"type": "string"},
				"level":   map[string]any{"type": "integer", "minimum": 1},
				"part":    map[string]any{"type": "string", "enum": []any{"noun", "verb", "adjective"}},
				"examples": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"word", "meaning"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"word":"sustain","meaning":"유지하다","level":3,"part":"verb"}`, false},
		{"optional fields omitted", `{"word":"sustain","meaning":"유지하다"}`, false},
		{"missing required", `{"word":"sustain"}`, true},
		{"wrong type", `{"word":"sustain","meaning":"유지하다","level":"three"}`, true},
		{"enum violation", `{"word":"sustain","meaning":"유지하다","part":"adverb"}`, true},
		{"array item type", `{"word":"sustain","meaning":"유지하다","examples":[1,2]}`, true},
		{"malformed json", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(vocabSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	a, err := CompileSchema(vocabSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := CompileSchema(vocabSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Fatal("expected cached schema to be reused")
	}
}
