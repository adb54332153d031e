package catalog

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Questions) < 10 {
		t.Errorf("want at least 10 questions, got %d", len(c.Questions))
	}
	if len(c.Sentences) < 10 {
		t.Errorf("want at least 10 sentence challenges, got %d", len(c.Sentences))
	}
	if len(c.Pairs) < 10 {
		t.Errorf("want at least 10 matching pairs, got %d", len(c.Pairs))
	}
	if len(c.Vocabulary) == 0 {
		t.Error("want vocabulary cards, got none")
	}
}

func TestLoadIsCached(t *testing.T) {
	a, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a != b {
		t.Error("Load returned different instances")
	}
}

func TestQuestionAnswersInRange(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, q := range c.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			t.Errorf("question %d: correctAnswer %d out of range [0,%d)", q.ID, q.CorrectAnswer, len(q.Options))
		}
	}
}

func TestSentenceOrdersArePermutations(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, s := range c.Sentences {
		if len(s.CorrectOrder) != len(s.Words) {
			t.Errorf("challenge %d: order length %d != words length %d", s.ID, len(s.CorrectOrder), len(s.Words))
			continue
		}
		seen := make(map[int]bool)
		for _, idx := range s.CorrectOrder {
			if idx < 0 || idx >= len(s.Words) {
				t.Errorf("challenge %d: index %d out of range", s.ID, idx)
			}
			if seen[idx] {
				t.Errorf("challenge %d: index %d repeated", s.ID, idx)
			}
			seen[idx] = true
		}
	}
}

func TestMatchingPairLevel(t *testing.T) {
	if got := (MatchingPair{ID: 3}).Level(); got != "N5" {
		t.Errorf("pair 3: want N5, got %s", got)
	}
	if got := (MatchingPair{ID: 10}).Level(); got != "N5" {
		t.Errorf("pair 10: want N5, got %s", got)
	}
	if got := (MatchingPair{ID: 11}).Level(); got != "N4" {
		t.Errorf("pair 11: want N4, got %s", got)
	}
}

func TestValidateRejectsBadContent(t *testing.T) {
	cases := []struct {
		name   string
		file   string
		schema map[string]any
		raw    string
	}{
		{"not an array", "questions.json", questionSchema, `{"id": 1}`},
		{"missing field", "questions.json", questionSchema, `[{"id": 1, "question": "q"}]`},
		{"bad level", "vocabulary.json", vocabularySchema, `[{"id": 1, "kanji": "水", "hiragana": "みず", "romaji": "mizu", "english": "water", "level": "N9"}]`},
		{"too few options", "questions.json", questionSchema, `[{"id": 1, "question": "q", "options": ["a"], "correctAnswer": 0, "explanation": ""}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validate(tc.file, tc.schema, []byte(tc.raw)); err == nil {
				t.Error("want validation error, got nil")
			}
		})
	}
}
