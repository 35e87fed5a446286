package csat

var suggestedTopics = []string{
	"환경 문제 (Environmental Issues)",
	"과학 기술 (Science & Technology)",
	"인공지능과 윤리 (AI & Ethics)",
	"문화적 다양성 (Cultural Diversity)",
	"역사와 전통 (History & Tradition)",
	"경제와 소비 (Economy & Consumption)",
	"심리학과 인간 행동 (Psychology & Human Behavior)",
	"예술과 문학 (Art & Literature)",
	"진로와 직업 (Career & Jobs)",
	"건강과 운동 (Health & Exercise)",
}

// SuggestedTopics returns the preset passage topics.
func SuggestedTopics() []string {
	out := make([]string, len(suggestedTopics))
	copy(out, suggestedTopics)
	return out
}
