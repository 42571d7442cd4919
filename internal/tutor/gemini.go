package tutor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is a Backend on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("tutor: gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Chat(ctx context.Context, system string, history []Message, message string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	chat, err := g.client.Chats.Create(ctx, g.model, cfg, historyContents(history))
	if err != nil {
		return "", fmt.Errorf("tutor: create chat: %w", err)
	}
	res, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("tutor: send: %w", err)
	}
	return res.Text(), nil
}

func (g *Gemini) Quiz(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema(),
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("tutor: generate quiz: %w", err)
	}
	return res.Text(), nil
}

func quizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString},
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"correctAnswer": {
					Type:        genai.TypeInteger,
					Description: "Index of the correct option (0-3)",
				},
				"explanation": {
					Type:        genai.TypeString,
					Description: "Short explanation of why the answer is correct",
				},
			},
			Required: []string{"question", "options", "correctAnswer", "explanation"},
		},
	}
}

// historyContents maps chat turns to API contents. A conversation sent to
// the API must open with a user turn, so leading model turns (the greeting)
// and blank turns are dropped.
func historyContents(history []Message) []*genai.Content {
	var out []*genai.Content
	for _, m := range history {
		if m.Text == "" {
			continue
		}
		if len(out) == 0 && m.Role != RoleUser {
			continue
		}
		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Text, role))
	}
	return out
}
