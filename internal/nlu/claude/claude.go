package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockchat/internal/api"
	"stockchat/internal/interfaces"
	"stockchat/internal/nlu"
	"stockchat/internal/types"
)

// DefaultBaseURL is the public Anthropic endpoint; proxies can be set through config.
const DefaultBaseURL = "https://api.anthropic.com"

type Params struct {
	BaseURL     string
	APIKey      string
	Model       string
	System      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Classifier uses the Anthropic Messages API as an intent classifier
type Classifier struct {
	p   Params
	api *api.Client
}

var _ interfaces.IntentExtractor = (*Classifier)(nil)

func NewClassifier(p Params) *Classifier {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.System == "" {
		p.System = nlu.DefaultSystemPrompt
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = 200
	}
	return &Classifier{
		p: p,
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader("x-api-key", p.APIKey),
			api.WithHeader("anthropic-version", "2023-06-01"),
			api.WithLogging(true),
		),
	}
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Classifier) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	if c.p.APIKey == "" {
		return types.ParsedUtterance{}, errors.New("CLAUDE_API_KEY missing")
	}

	body := map[string]any{
		"model":       c.p.Model,
		"system":      c.p.System,
		"messages":    []map[string]string{{"role": "user", "content": text}},
		"max_tokens":  c.p.MaxTokens,
		"temperature": c.p.Temperature,
	}

	resp, err := c.api.POST(ctx, "/v1/messages", body)
	if err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("claude classify: %w", err)
	}

	var r messagesResponse
	if err := resp.ParseJSON(&r); err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("claude classify: %w", err)
	}

	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return nlu.ParseClassification(sb.String(), text), nil
}
