package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockchat/internal/api"
	"stockchat/internal/interfaces"
	"stockchat/internal/nlu"
	"stockchat/internal/types"
)

const DefaultBaseURL = "https://api.openai.com"

type Params struct {
	BaseURL     string
	APIKey      string
	Model       string
	System      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Classifier uses a chat-completions model as an intent classifier.
type Classifier struct {
	p   Params
	api *api.Client
}

var _ interfaces.IntentExtractor = (*Classifier)(nil)

func NewClassifier(p Params) *Classifier {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Model == "" {
		p.Model = "gpt-4o-mini"
	}
	if p.System == "" {
		p.System = nlu.DefaultSystemPrompt
	}
	return &Classifier{
		p: p,
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader("Authorization", "Bearer "+p.APIKey),
			api.WithLogging(true),
		),
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Classifier) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	if c.p.APIKey == "" {
		return types.ParsedUtterance{}, errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": c.p.Model,
		"messages": []map[string]string{
			{"role": "system", "content": c.p.System},
			{"role": "user", "content": text},
		},
		"temperature": c.p.Temperature,
		"max_tokens":  c.p.MaxTokens,
	}

	resp, err := c.api.POST(ctx, "/v1/chat/completions", body)
	if err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("openai classify: %w", err)
	}

	var r chatResponse
	if err := resp.ParseJSON(&r); err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("openai classify: %w", err)
	}
	if len(r.Choices) == 0 {
		return types.ParsedUtterance{}, fmt.Errorf("openai classify: %w: no choices", types.ErrUpstreamUnavailable)
	}

	return nlu.ParseClassification(r.Choices[0].Message.Content, text), nil
}
