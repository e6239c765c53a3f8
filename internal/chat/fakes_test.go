package chat

import (
	"context"

	"stockchat/internal/types"
)

type barsCall struct {
	symbol string
	size   types.BarSize
	limit  int
}

type fakeBroker struct {
	calls []barsCall
	bars  map[types.BarSize][]types.Bar
	err   error
}

func (f *fakeBroker) Bars(ctx context.Context, symbol string, size types.BarSize, limit int) ([]types.Bar, error) {
	f.calls = append(f.calls, barsCall{symbol, size, limit})
	if f.err != nil {
		return nil, f.err
	}
	return f.bars[size], nil
}

type fakeNews struct {
	articles []types.NewsArticle
	err      error
	asked    int
}

func (f *fakeNews) Headlines(ctx context.Context, n int) ([]types.NewsArticle, error) {
	f.asked = n
	if f.err != nil {
		return nil, f.err
	}
	if len(f.articles) > n {
		return f.articles[:n], nil
	}
	return f.articles, nil
}

type fakeExtractor struct {
	parsed types.ParsedUtterance
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	if f.err != nil {
		return types.ParsedUtterance{}, f.err
	}
	p := f.parsed
	p.RawText = text
	return p, nil
}

func utterance(intent types.Intent, kv ...string) types.ParsedUtterance {
	p := types.ParsedUtterance{Intent: intent, Entities: map[string][]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Entities[kv[i]] = []string{kv[i+1]}
	}
	return p
}
