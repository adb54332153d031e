package catalog

// Question is a multiple-choice grammar question. CorrectAnswer indexes
// into Options.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// SentenceChallenge is a word-ordering exercise. CorrectOrder holds
// indices into Words giving the correct sentence left to right.
type SentenceChallenge struct {
	ID           int      `json:"id"`
	Words        []string `json:"words"`
	CorrectOrder []int    `json:"correctOrder"`
	English      string   `json:"english"`
	Explanation  string   `json:"explanation"`
}

// MatchingPair links a grammar pattern with an example sentence.
type MatchingPair struct {
	ID          int    `json:"id"`
	Grammar     string `json:"grammar"`
	Example     string `json:"example"`
	Translation string `json:"translation"`
}

// Level returns the JLPT level of the pair. The first ten pairs in the
// bank are N5 patterns, the rest N4.
func (p MatchingPair) Level() string {
	if p.ID <= 10 {
		return "N5"
	}
	return "N4"
}

// VocabularyCard is a flashcard with readings and an example sentence.
type VocabularyCard struct {
	ID                 int    `json:"id"`
	Kanji              string `json:"kanji"`
	Hiragana           string `json:"hiragana"`
	Romaji             string `json:"romaji"`
	English            string `json:"english"`
	Level              string `json:"level"`
	Category           string `json:"category"`
	Example            string `json:"example"`
	ExampleTranslation string `json:"exampleTranslation"`
}
