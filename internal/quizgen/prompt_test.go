package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/csatquiz/internal/csat"
)

func testRequest(label string) GenerationRequest {
	return GenerationRequest{
		SchoolLevel:  csat.SchoolHigh,
		Grade:        2,
		Difficulty:   csat.DifficultyMedium,
		QuestionType: label,
		Topic:        "Environmental Science (환경 과학)",
	}
}

func TestBuildPrompt_ContainsSelections(t *testing.T) {
	req := testRequest(grammarLabel)
	guide := csat.DifficultyGuide(req.SchoolLevel, req.Grade)
	instr := csat.TypeInstruction(req.QuestionType)

	p := BuildPrompt(req, guide, instr)

	assert.Contains(t, p, "Korean CSAT")
	assert.Contains(t, p, "- **Topic**: Environmental Science (환경 과학)")
	assert.Contains(t, p, "Korean 고등학교 student, 2학년")
	assert.Contains(t, p, guide)
	assert.Contains(t, p, grammarLabel)
	assert.Contains(t, p, "중 (Medium) (within the grade level)")
	assert.Contains(t, p, "_______")
	assert.Contains(t, p, "explanation in Korean")
	assert.Contains(t, p, "5-10 difficult vocabulary")
	assert.Contains(t, p, `"vocabulary": [`)
	assert.Contains(t, p, `"options": ["1. A", "2. B", "3. C", "4. D", "5. E"]`)

	firstInstrLine, _, _ := strings.Cut(instr.Text, "\n")
	assert.Contains(t, p, firstInstrLine)
}

func TestBuildPrompt_DifficultyOverride(t *testing.T) {
	req := testRequest("31-34번: 빈칸추론 (Killer) (1문제)")
	instr := csat.TypeInstruction(req.QuestionType)

	p := BuildPrompt(req, csat.DifficultyGuide(req.SchoolLevel, req.Grade), instr)

	assert.Contains(t, p, "중 (Medium)"+csat.HardUpgrade)
}

func TestBuildPrompt_Pure(t *testing.T) {
	req := testRequest(grammarLabel)
	guide := csat.DifficultyGuide(req.SchoolLevel, req.Grade)
	instr := csat.TypeInstruction(req.QuestionType)

	assert.Equal(t, BuildPrompt(req, guide, instr), BuildPrompt(req, guide, instr))
}

func TestGenerationRequest_Validate(t *testing.T) {
	req := testRequest(grammarLabel)
	assert.NoError(t, req.Validate())

	req.Topic = "  "
	assert.Error(t, req.Validate())

	req = testRequest("")
	assert.Error(t, req.Validate())
}
