package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/csatquiz/internal/csat"
)

const personaPreamble = `You are an expert English teacher for Korean students, specialized in creating content for the Korean CSAT (Sooneung) and Mock Exams.
Create a reading passage and QUESTIONS based on the following STRICT criteria:`

const outputContract = `**Output Format**:
Return ONLY a valid JSON object with the following structure:
{
    "title": "Passage Title",
    "passage": "Full text...",
    "questions": [
        {
            "type": "Type Name",
            "question": "Question Text...",
            "options": ["1. A", "2. B", "3. C", "4. D", "5. E"],
            "answer": "3",
            "explanation": "..."
        }
    ],
    "vocabulary": [
        { "word": "example word", "meaning": "예시 단어 뜻" },
        { "word": "idiom", "meaning": "숙어 뜻" }
    ]
}`

// BuildPrompt assembles the full generation prompt. guide comes from
// csat.DifficultyGuide and instr from csat.TypeInstruction.
func BuildPrompt(req GenerationRequest, guide string, instr csat.Instruction) string {
	var b strings.Builder

	b.WriteString(personaPreamble)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "- **Topic**: %s\n", req.Topic)
	fmt.Fprintf(&b, "- **Target Audience**: Korean %s student, %s\n", req.SchoolLevel.Label(), req.Grade.Label())
	fmt.Fprintf(&b, "- **Base Difficulty Standard**: %s\n", guide)
	fmt.Fprintf(&b, "- **Selected Question Type**: %s\n", req.QuestionType)
	fmt.Fprintf(&b, "- **Specific Difficulty Adjustment**: %s%s (within the grade level)\n", req.Difficulty.Label(), instr.DifficultyOverride)

	b.WriteString("\n**Requirements**:\n")
	b.WriteString("1. Write an English reading passage that perfectly matches the requested difficulty and style.\n")
	b.WriteString("2. **Question Structure**:\n")
	b.WriteString(indent(instr.Text, "   "))
	b.WriteString("\n")
	b.WriteString("3. **CRITICAL - Handling Blanks/Context**:\n")
	b.WriteString("   - If a question asks to fill in a blank (Usage/Expression/Blank Inference), and the blank is NOT in the main passage, **you MUST include the specific sentence with the '_______' marker inside the 'question' field.**\n")
	b.WriteString("4. Provide the correct answer and a detailed explanation in Korean for each question.\n")
	b.WriteString("5. Extract 5-10 difficult vocabulary words or idioms from the passage and provide their Korean meanings.\n\n")

	b.WriteString(outputContract)
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
