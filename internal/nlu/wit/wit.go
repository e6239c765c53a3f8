// Package wit classifies messages with the Wit.ai /message endpoint.
package wit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"stockchat/internal/api"
	"stockchat/internal/interfaces"
	"stockchat/internal/nlu"
	"stockchat/internal/types"
)

const DefaultBaseURL = "https://api.wit.ai"

type Params struct {
	BaseURL     string
	AccessToken string
	Version     string
	Timeout     time.Duration
}

type Client struct {
	p   Params
	api *api.Client
}

var _ interfaces.IntentExtractor = (*Client)(nil)

func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	return &Client{
		p: p,
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader("Authorization", "Bearer "+p.AccessToken),
			api.WithLogging(true),
		),
	}
}

type messageResponse struct {
	Text    string `json:"text"`
	Intents []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"intents"`
	Entities map[string][]struct {
		Value any `json:"value"`
	} `json:"entities"`
}

func (c *Client) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	if c.p.AccessToken == "" {
		return types.ParsedUtterance{}, errors.New("WIT_ACCESS_TOKEN missing")
	}

	params := url.Values{}
	params.Set("v", c.p.Version)
	params.Set("q", text)

	resp, err := c.api.GET(ctx, "/message", params)
	if err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("wit message: %w", err)
	}

	var r messageResponse
	if err := resp.ParseJSON(&r); err != nil {
		return types.ParsedUtterance{}, fmt.Errorf("wit message: %w", err)
	}

	return toUtterance(text, r), nil
}

func toUtterance(text string, r messageResponse) types.ParsedUtterance {
	out := types.ParsedUtterance{RawText: text, Intent: types.Unknown, Entities: map[string][]string{}}
	if len(r.Intents) > 0 {
		out.Intent = types.ParseIntent(r.Intents[0].Name)
	}
	for key, vals := range r.Entities {
		if len(vals) == 0 {
			continue
		}
		// Only the first value of each slot is used.
		if v := valueString(vals[0].Value); v != "" {
			out.Entities[nlu.SlotName(key)] = []string{v}
		}
	}
	return out
}

// valueString flattens Wit's value field, which is a string for free-text
// entities and a number for wit/number.
func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
