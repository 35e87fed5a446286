package web

import (
	"net/http"
	"strings"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/quiz"
)

const (
	topicCustom    = "custom"
	topicSuggested = "suggested"
)

// settings are the generation form selections, remembered per session.
type settings struct {
	Level          csat.SchoolLevel
	Grade          csat.Grade
	Difficulty     csat.Difficulty
	QuestionType   string // catalogue ID
	TopicMode      string
	Topic          string
	SuggestedTopic string
}

func defaultSettings() settings {
	return settings{
		Level:        csat.SchoolMiddle,
		Grade:        csat.MinGrade,
		Difficulty:   csat.DifficultyMedium,
		QuestionType: csat.QuestionTypes()[0].ID,
		TopicMode:    topicCustom,
	}
}

// topic returns the topic for the selected mode.
func (f settings) topic() string {
	if f.TopicMode == topicSuggested {
		return f.SuggestedTopic
	}
	return strings.TrimSpace(f.Topic)
}

// parseSettings reads the generation form. The returned settings hold
// whatever parsed, so the form can be redisplayed on error.
func parseSettings(r *http.Request) (settings, error) {
	f := defaultSettings()
	f.TopicMode = r.FormValue("topic_mode")
	if f.TopicMode != topicSuggested {
		f.TopicMode = topicCustom
	}
	f.Topic = r.FormValue("topic")
	f.SuggestedTopic = r.FormValue("suggested_topic")
	f.QuestionType = r.FormValue("question_type")

	level, err := csat.ParseSchoolLevel(r.FormValue("school_level"))
	if err != nil {
		return f, &quiz.ValidationError{Field: "school level", Message: err.Error()}
	}
	f.Level = level

	grade, err := csat.ParseGrade(r.FormValue("grade"))
	if err != nil {
		return f, &quiz.ValidationError{Field: "grade", Message: err.Error()}
	}
	f.Grade = grade

	difficulty, err := csat.ParseDifficulty(r.FormValue("difficulty"))
	if err != nil {
		return f, &quiz.ValidationError{Field: "difficulty", Message: err.Error()}
	}
	f.Difficulty = difficulty

	if _, ok := csat.LookupQuestionType(f.QuestionType); !ok {
		return f, &quiz.ValidationError{Field: "question type", Message: "choose a question type"}
	}

	if f.TopicMode == topicSuggested && !isSuggested(f.SuggestedTopic) {
		f.SuggestedTopic = ""
	}
	if f.topic() == "" {
		return f, &quiz.ValidationError{Field: "topic", Message: "주제를 입력하거나 선택해주세요."}
	}
	return f, nil
}

func isSuggested(topic string) bool {
	for _, t := range csat.SuggestedTopics() {
		if t == topic {
			return true
		}
	}
	return false
}
