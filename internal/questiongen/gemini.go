package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// contentGenerator is the part of the genai client the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures the Gemini generator.
type GeminiOptions struct {
	APIKey       string
	Model        string        // defaults to DefaultModel
	MaxNoteChars int           // defaults to DefaultMaxNoteChars
	Timeout      time.Duration // per request; zero means no extra deadline
}

// Gemini generates questions with the Gemini API using a JSON response schema.
type Gemini struct {
	models   contentGenerator
	model    string
	maxChars int
	timeout  time.Duration
	now      func() time.Time
}

// NewGemini creates a generator backed by the Gemini API.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("questiongen: create gemini client: %w", err)
	}
	return newGemini(client.Models, opts), nil
}

func newGemini(models contentGenerator, opts GeminiOptions) *Gemini {
	g := &Gemini{
		models:   models,
		model:    opts.Model,
		maxChars: opts.MaxNoteChars,
		timeout:  opts.Timeout,
		now:      time.Now,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.maxChars <= 0 {
		g.maxChars = DefaultMaxNoteChars
	}
	return g
}

// Generate implements Generator. Items that fail validation are dropped.
func (g *Gemini) Generate(ctx context.Context, notes string, count int) ([]quiz.Question, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyNotes
	}
	if count <= 0 {
		count = DefaultCount
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   questionSchema(),
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(notes, count, g.maxChars)), cfg)
	if err != nil {
		return nil, fmt.Errorf("questiongen: gemini request: %w", err)
	}

	qs, err := parseQuestions(resp.Text(), g.now())
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// Prompt builds the generation prompt, truncating notes to maxChars runes.
func Prompt(notes string, count, maxChars int) string {
	return fmt.Sprintf(`You are an educational quiz generator.
Generate %d multiple-choice questions based on the following text.
The questions should test understanding and recall.

Text to analyze:
"%s"

Output strictly JSON.`, count, truncateRunes(notes, maxChars))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func questionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString, Description: "The question text"},
				"options": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "4 distinct options",
				},
				"correctIndex": {Type: genai.TypeInteger, Description: "The index (0-3) of the correct answer"},
			},
			Required: []string{"question", "options", "correctIndex"},
		},
	}
}

// generated is the wire shape requested from the model.
type generated struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

func parseQuestions(body string, now time.Time) ([]quiz.Question, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}

	var raw []generated
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("questiongen: decode response: %w", err)
	}

	stamp := now.UnixMilli()
	qs := make([]quiz.Question, 0, len(raw))
	for i, r := range raw {
		q := quiz.Question{
			ID:           fmt.Sprintf("gen-%d-%d", stamp, i),
			Text:         r.Question,
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
		}
		if q.Validate() != nil {
			continue
		}
		qs = append(qs, q)
	}
	return qs, nil
}
