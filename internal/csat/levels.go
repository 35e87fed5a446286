package csat

import (
	"fmt"
	"strconv"
	"strings"
)

// SchoolLevel is the learner's school level.
type SchoolLevel string

const (
	SchoolMiddle SchoolLevel = "middle"
	SchoolHigh   SchoolLevel = "high"
)

// SchoolLevels returns the selectable school levels in display order.
func SchoolLevels() []SchoolLevel {
	return []SchoolLevel{SchoolMiddle, SchoolHigh}
}

// Label returns the Korean display label.
func (l SchoolLevel) Label() string {
	switch l {
	case SchoolMiddle:
		return "중학교"
	case SchoolHigh:
		return "고등학교"
	default:
		return string(l)
	}
}

// ParseSchoolLevel accepts an identifier ("middle", "high") or a display label.
func ParseSchoolLevel(s string) (SchoolLevel, error) {
	s = strings.TrimSpace(s)
	for _, l := range SchoolLevels() {
		if strings.EqualFold(s, string(l)) || s == l.Label() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown school level %q", s)
}

// Grade is the school year within a level, 1 through 3.
type Grade int

const (
	MinGrade Grade = 1
	MaxGrade Grade = 3
)

// Grades returns the selectable grades in display order.
func Grades() []Grade {
	return []Grade{1, 2, 3}
}

// Label returns the Korean display label, e.g. "2학년".
func (g Grade) Label() string {
	return fmt.Sprintf("%d학년", int(g))
}

// ParseGrade accepts "2" or "2학년".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "학년")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q: %w", s, err)
	}
	if Grade(n) < MinGrade || Grade(n) > MaxGrade {
		return 0, fmt.Errorf("grade %d out of range %d-%d", n, MinGrade, MaxGrade)
	}
	return Grade(n), nil
}

// Difficulty is the requested difficulty within the grade level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the selectable difficulties from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Label returns the display label used in prompts and UIs.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "하 (Easy)"
	case DifficultyMedium:
		return "중 (Medium)"
	case DifficultyHard:
		return "상 (Hard)"
	default:
		return string(d)
	}
}

// ParseDifficulty accepts an identifier or a display label.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties() {
		if strings.EqualFold(s, string(d)) || s == d.Label() {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
