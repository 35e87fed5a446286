package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		id    string
		input float64 // want InputPerMTok; 0 means unknown
	}{
		{"gemini-2.5-flash", 0.3},
		{"models/gemini-2.5-flash", 0.3},
		{"google/gemini-2.5-flash", 0.3},
		{"  Gemini-2.5-Pro ", 1.25},
		{"claude-haiku", 1},
		{"claude-haiku-4-5-20251001", 1},
		{"gpt-4o-2024-08-06", 2.5},
		{"openai/gpt-4o-mini", 0.15},
		{"gemini-2.5-flash-preview-09-2025", 0},
		{"mock", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c := LookupCost(tt.id)
			if tt.input == 0 {
				if c != nil {
					t.Fatalf("LookupCost(%q) = %+v, want nil", tt.id, *c)
				}
				return
			}
			if c == nil {
				t.Fatalf("LookupCost(%q) = nil", tt.id)
			}
			if c.InputPerMTok != tt.input {
				t.Errorf("input price = %v, want %v", c.InputPerMTok, tt.input)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.3, OutputPerMTok: 2.5}
	// A typical quiz call: long prompt, mid-sized JSON answer.
	got := c.Cost(4_000, 2_000)
	if want := 0.0012 + 0.005; math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost = %v, want %v", got, want)
	}
	if c.Cost(0, 0) != 0 {
		t.Error("expected zero cost for zero tokens")
	}
}
