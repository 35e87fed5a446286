package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":  map[string]any{"type": "string"},
			"answer": map[string]any{"type": []any{"string", "integer"}},
			"kind":   map[string]any{"type": "string", "enum": []any{"grammar", "vocabulary", "blank"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "answer"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["answer"].Type != "STRING" {
		t.Fatalf("expected first listed type for answer, got %s", schema.Properties["answer"].Type)
	}
	if len(schema.Properties["kind"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["kind"].Enum))
	}
	if schema.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("expected STRING items, got %s", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func writeGeminiError(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": "models/x is not found", "status": status},
	})
}

func TestGeminiProvider_JSONMode(t *testing.T) {
	var body map[string]any
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": "```json\n{\"title\":\"T\"}\n```"}}},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 11, "candidatesTokenCount": 22, "totalTokenCount": 33},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "quiz please"}},
		JSON:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(resp.Content), `{"title":"T"}`) {
		t.Fatalf("unexpected content %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 33 || resp.StopReason != "end" {
		t.Fatalf("unexpected usage/stop: %+v %s", resp.Usage, resp.StopReason)
	}

	gc, _ := body["generationConfig"].(map[string]any)
	if gc["responseMimeType"] != "application/json" {
		t.Fatalf("expected JSON MIME type in request, got %v", body["generationConfig"])
	}
}

func TestGeminiProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		code   int
		status string
		check  func(error) bool
	}{
		{404, "NOT_FOUND", func(err error) bool { var e *ErrModelNotFound; return errors.As(err, &e) && e.Model == "gemini-2.5-flash" }},
		{403, "PERMISSION_DENIED", func(err error) bool { var e *ErrAuth; return errors.As(err, &e) }},
		{429, "RESOURCE_EXHAUSTED", func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{503, "UNAVAILABLE", func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeGeminiError(w, tt.code, tt.status)
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			if !tt.check(err) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestGeminiProvider_ListModels(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "models/gemini-2.5-flash", "displayName": "Gemini 2.5 Flash", "supportedGenerationMethods": []string{"generateContent", "countTokens"}},
				{"name": "models/text-embedding-004", "supportedGenerationMethods": []string{"embedContent"}},
			},
		})
	})

	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 1 || models[0].ID != "gemini-2.5-flash" {
		t.Fatalf("unexpected models: %+v", models)
	}
}
