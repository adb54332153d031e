// Package catalog loads the embedded study content: multiple-choice
// questions, sentence challenges, matching pairs, and vocabulary cards.
// Every file is validated against a JSON schema at load time so a bad
// content edit fails fast instead of surfacing mid-game.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog holds all study content banks.
type Catalog struct {
	Questions  []Question
	Sentences  []SentenceChallenge
	Pairs      []MatchingPair
	Vocabulary []VocabularyCard
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses and validates the embedded content. The result is cached;
// subsequent calls return the same Catalog.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load()
	})
	return loaded, loadErr
}

func load() (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name   string
		schema map[string]any
		dst    any
	}{
		{"questions.json", questionSchema, &c.Questions},
		{"sentences.json", sentenceSchema, &c.Sentences},
		{"matching.json", matchingSchema, &c.Pairs},
		{"vocabulary.json", vocabularySchema, &c.Vocabulary},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile("data/" + f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := validate(f.name, f.schema, raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	if err := crossCheck(c); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks raw against schema. Schemas catch structural problems;
// crossCheck handles relations a schema cannot express.
func validate(name string, schema map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", name, err)
	}

	compiled, err := compileSchema(name, schema)
	if err != nil {
		return fmt.Errorf("%s: compile schema: %w", name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	return nil
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, so round-trip the Go map.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// crossCheck validates relations between fields: answer indices in
// range, correct orders that are permutations.
func crossCheck(c *Catalog) error {
	for _, q := range c.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("questions.json: question %d: correctAnswer %d out of range", q.ID, q.CorrectAnswer)
		}
	}
	for _, s := range c.Sentences {
		if len(s.CorrectOrder) != len(s.Words) {
			return fmt.Errorf("sentences.json: challenge %d: correctOrder length %d != words length %d", s.ID, len(s.CorrectOrder), len(s.Words))
		}
		seen := make(map[int]bool, len(s.CorrectOrder))
		for _, idx := range s.CorrectOrder {
			if idx < 0 || idx >= len(s.Words) || seen[idx] {
				return fmt.Errorf("sentences.json: challenge %d: correctOrder is not a permutation", s.ID)
			}
			seen[idx] = true
		}
	}
	return nil
}

var questionSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "question", "options", "correctAnswer", "explanation"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "integer"},
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
			},
			"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
			"explanation":   map[string]any{"type": "string"},
		},
	},
}

var sentenceSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "words", "correctOrder", "english"},
		"properties": map[string]any{
			"id": map[string]any{"type": "integer"},
			"words": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
			},
			"correctOrder": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer", "minimum": 0},
			},
			"english":     map[string]any{"type": "string", "minLength": 1},
			"explanation": map[string]any{"type": "string"},
		},
	},
}

var matchingSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "grammar", "example", "translation"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "integer"},
			"grammar":     map[string]any{"type": "string", "minLength": 1},
			"example":     map[string]any{"type": "string", "minLength": 1},
			"translation": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

var vocabularySchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "kanji", "hiragana", "romaji", "english", "level"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "integer"},
			"kanji":    map[string]any{"type": "string", "minLength": 1},
			"hiragana": map[string]any{"type": "string", "minLength": 1},
			"romaji":   map[string]any{"type": "string"},
			"english":  map[string]any{"type": "string", "minLength": 1},
			"level": map[string]any{
				"type": "string",
				"enum": []any{"N5", "N4", "N3", "N2", "N1"},
			},
			"category":           map[string]any{"type": "string"},
			"example":            map[string]any{"type": "string"},
			"exampleTranslation": map[string]any{"type": "string"},
		},
	},
}
