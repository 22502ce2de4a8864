package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kurso-app/kurso/internal/quiz"
)

// quizSchemaDef is the JSON Schema a quiz payload must satisfy before
// it is allowed to seed a session.
var quizSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":        map[string]any{"type": "string", "minLength": 1},
		"course_id": map[string]any{"type": "string", "minLength": 1},
		"title":     map[string]any{"type": "string"},
		"passing_score": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 100,
		},
		"time_limit": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correct_answer": map[string]any{"type": "string"},
				},
				"required": []any{"prompt", "options"},
			},
		},
	},
	"required": []any{"id", "course_id", "questions", "passing_score"},
}

var (
	quizSchemaOnce sync.Once
	quizSchema     *jsonschema.Schema
	quizSchemaErr  error
)

// compiledQuizSchema compiles the schema once and caches it.
func compiledQuizSchema() (*jsonschema.Schema, error) {
	quizSchemaOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with
		// typed numbers. Round-trip through encoding/json.
		defBytes, err := json.Marshal(quizSchemaDef)
		if err != nil {
			quizSchemaErr = fmt.Errorf("marshal quiz schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			quizSchemaErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://quiz.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			quizSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		quizSchema, quizSchemaErr = c.Compile(schemaURL)
	})
	return quizSchema, quizSchemaErr
}

// decodeQuiz validates raw against the quiz schema and decodes it.
func decodeQuiz(raw []byte) (*quiz.Quiz, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledQuizSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("quiz payload rejected: %w", err)
	}

	var q quiz.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &q, nil
}
