package csat

import (
	"fmt"
	"strings"
)

// Shape is the structural template a question type produces.
type Shape string

const (
	ShapeGeneral Shape = "general"
	ShapeLongA   Shape = "long-a"
	ShapeLongB   Shape = "long-b"
	ShapeSingle  Shape = "single"
)

// HardUpgrade is appended to the difficulty label for question types that
// are inherently harder than their grade level.
const HardUpgrade = " (Upgrade to HARD/KILLER due to Question Type)"

// QuestionType is one entry of the exam question-type catalogue.
type QuestionType struct {
	ID    string
	Label string
}

var questionTypes = []QuestionType{
	{ID: "general", Label: "종합 (General Practice) - 5문제"},
	{ID: "purpose-mood", Label: "18-19번: 목적/심경 (1문제)"},
	{ID: "main-idea", Label: "20-24번: 대의파악 (주제/제목/요지) (1문제)"},
	{ID: "implied-meaning", Label: "21번: 함축의미 추론 (1문제)"},
	{ID: "grammar", Label: "29번: 어법 (Grammar) (1문제)"},
	{ID: "vocabulary", Label: "30번: 어휘 (Vocabulary) (1문제)"},
	{ID: "blank", Label: "31-34번: 빈칸추론 (Killer) (1문제)"},
	{ID: "irrelevant-sentence", Label: "35번: 흐름과 관계없는 문장 (1문제)"},
	{ID: "order-insertion", Label: "36-39번: 글의 순서/문장 삽입 (1문제)"},
	{ID: "summary", Label: "40번: 요약문 완성 (1문제)"},
	{ID: "long-passage", Label: "41-42번: 장문 독해 (2문제)"},
	{ID: "compound-passage", Label: "43-45번: 복합 장문 (3문제)"},
}

// QuestionTypes returns the catalogue in display order.
func QuestionTypes() []QuestionType {
	out := make([]QuestionType, len(questionTypes))
	copy(out, questionTypes)
	return out
}

// LookupQuestionType finds a catalogue entry by ID or display label.
func LookupQuestionType(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	for _, qt := range questionTypes {
		if s == qt.ID || s == qt.Label {
			return qt, true
		}
	}
	return QuestionType{}, false
}

// Instruction describes how many questions to ask and how to format them.
type Instruction struct {
	Count              int
	Shape              Shape
	Text               string
	DifficultyOverride string
}

const generalText = `- Create exactly 5 multiple-choice questions (5 options each) with VARIED formats (Avoid too many blanks):
  - Q1: Main Idea/Title (Subject/Title).
  - Q2: Detail/Content Match (Correct/Incorrect statement).
  - Q3: Grammar (Error Finding). **Highlight 5 parts in the passage as (1)~(5)**. The options MUST include the highlighted word (e.g., "(1) live").
  - Q4: Vocabulary Appropriateness. **Highlight 5 words in the passage as (a)~(e)**. The options MUST include the highlighted word (e.g., "(a) happy").
  - Q5: Blank Inference. **Insert exactly ONE blank (_______)** in the passage. The question text should be simple (e.g., "다음 빈칸에 들어갈 말로 가장 적절한 것은?") WITHOUT quoting the sentence again.`

const longAText = `- Create exactly 2 multiple-choice questions (Standard CSAT Q41-42 Format):
  - Q1: Title Inference (제목 추론)
  - Q2: Vocabulary appropriateness in context (문맥상 낱말의 쓰임) - **Mark target words as (a), (b), (c), (d), (e) in the passage.**
- Passage Length: 500-600 words (Long Passage).`

const longBText = `- Create exactly 3 multiple-choice questions (Standard CSAT Q43-45 Format):
  - Passage Structure: Divide the story into (A), (B), (C), (D) paragraphs.
  - Q1: Order of paragraphs (B-D) following (A).
  - Q2: Pointing Inference (Targeting pronouns a,b,c,d,e) - **Mark pronouns clearly in the text.**
  - Q3: Content Match/Mismatch (내용 일치/불일치).
- Passage Style: Narrative/Storytelling.`

const singleTextFormat = `- **PRIMARY GOAL**: Create exactly 1 multiple-choice question modeled after **%[1]s**.
- **Passage Style**: Must perfectly suit the chosen type (e.g., for '빈칸추론', use high abstraction and logical gaps; for '심경', use descriptive/narrative tone).
- **Question**:
  - Create ONE perfect replica of the %[1]s.
  - **CRITICAL**: If the question type involves a blank ( 빈칸 ), you MUST insert the '_______' marker directly into the passage text.
  - **CRITICAL - Standard Formatting**:
    - **Grammar (어법)**: Mark targets in the passage as **(1) word**, **(2) word**, etc. (Number before word).
    - **Vocabulary (어휘)**: Mark targets in the passage as **(a) word**, **(b) word**, etc. (Letter before word).`

// upgradeMarkers are label fragments for blank, order, insertion and
// implication questions.
var upgradeMarkers = []string{"빈칸", "순서", "삽입", "함축"}

// TypeInstruction maps a question-type label to its instruction. Labels are
// matched by substring so that custom labels still pick a shape; anything
// that is neither the general nor a long-passage type is a single question.
func TypeInstruction(label string) Instruction {
	switch {
	case strings.Contains(label, "종합"):
		return Instruction{Count: 5, Shape: ShapeGeneral, Text: generalText}
	case strings.Contains(label, "41-42"):
		return Instruction{Count: 2, Shape: ShapeLongA, Text: longAText}
	case strings.Contains(label, "43-45"):
		return Instruction{Count: 3, Shape: ShapeLongB, Text: longBText}
	}

	instr := Instruction{
		Count: 1,
		Shape: ShapeSingle,
		Text:  fmt.Sprintf(singleTextFormat, label),
	}
	for _, m := range upgradeMarkers {
		if strings.Contains(label, m) {
			instr.DifficultyOverride = HardUpgrade
			break
		}
	}
	return instr
}
