package llm

import "strings"

// ModelCost is the USD price per million tokens for one model.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a recorded model ID, or nil if the
// model is not in the table. IDs are matched the way each provider reports
// them: Gemini's "models/" resource prefix and OpenRouter's "vendor/" prefix
// are dropped, and a dated snapshot falls back to its undated family.
func LookupCost(modelID string) *ModelCost {
	id := normalizeModelID(modelID)
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	if base, ok := trimSnapshotDate(id); ok {
		if c, ok := modelCosts[base]; ok {
			return &c
		}
	}
	return nil
}

func normalizeModelID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "models/")
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	return id
}

// trimSnapshotDate strips a trailing "-YYYYMMDD" or "-YYYY-MM-DD".
func trimSnapshotDate(id string) (string, bool) {
	for _, n := range []int{len("20060102"), len("2006-01-02")} {
		if len(id) <= n+1 || id[len(id)-n-1] != '-' {
			continue
		}
		date := id[len(id)-n:]
		if strings.Trim(date, "0123456789-") == "" && date[0] == '2' {
			return id[:len(id)-n-1], true
		}
	}
	return "", false
}

// modelCosts covers the models the quiz generator is usually pointed at.
// Prices from the providers' public price lists, 2026-02.
var modelCosts = map[string]ModelCost{
	// Gemini (default provider; OpenRouter's default routes here too)
	"gemini-2.0-flash":         {0.1, 0.4},
	"gemini-2.0-flash-lite":    {0.075, 0.3},
	"gemini-2.5-flash":         {0.3, 2.5},
	"gemini-2.5-flash-lite":    {0.1, 0.4},
	"gemini-2.5-pro":           {1.25, 10},
	"gemini-3-flash-preview":   {0.5, 3},
	"gemini-3-pro-preview":     {2, 12},
	"gemini-flash-latest":      {0.3, 2.5},
	"gemini-flash-lite-latest": {0.1, 0.4},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"gpt-5.1":      {1.25, 10},
	"gpt-5.2":      {1.75, 14},
	"o3":           {2, 8},
	"o3-mini":      {1.1, 4.4},
	"o4-mini":      {1.1, 4.4},

	// Anthropic; "claude-haiku" is the config default alias.
	"claude-haiku":      {1, 5},
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},
}
