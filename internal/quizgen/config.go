package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run after schema validation. Every problem they report
	// is collected into one NormalizationError.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response. Zero leaves
	// the provider default, which long passages need.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Lenient accepts output with missing fields or a question count that
	// does not match the question type. Problems are logged as warnings.
	Lenient bool
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		Temperature: 0.7,
	}
}
