package csat

// DifficultyGuide returns the base difficulty descriptor for a school level
// and grade. A grade outside 1-3 gets the hardest descriptor of its level,
// and any level other than middle school is treated as high school.
func DifficultyGuide(level SchoolLevel, grade Grade) string {
	if level == SchoolMiddle {
		switch grade {
		case 1:
			return "Middle School Grade 1 Level. Length: 120-150 words. Vocab: ~800 words. Basic sentence structures."
		case 2:
			return "Middle School Grade 2 Level. Length: 150-200 words. Vocab: ~1000 words. Comparison, Infinitives."
		default:
			return "Middle School Grade 3 Level. Length: 200-250 words. Vocab: ~1250 words. Pre-High School difficulty. Relative clauses, passive voice."
		}
	}

	switch grade {
	case 1:
		return "High School Grade 1 Level. Length: 250-350 words. Vocab: ~1800 words. Mock Exam standard. Complex sentence structures."
	case 2:
		return "High School Grade 2 Level. Length: 300-400 words. Vocab: ~2500 words. Abstract topics, Participial constructions."
	default:
		return "CSAT (SuNeung) Level. Length: 350-500 words. Vocab: 5000-8000 words level. Highly abstract, academic topics. Complex syntax. Vocabulary based on EBS SuNeung Teukgang."
	}
}
