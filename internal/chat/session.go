package chat

import (
	"context"
	"sync"
	"time"

	"stockchat/internal/logger"
	"stockchat/internal/resolver"
	"stockchat/internal/trace"
	"stockchat/internal/transcript"
	"stockchat/internal/types"
)

// Session owns one conversation's transcript. Turns are serialized, and the
// transcript only ever grows.
type Session struct {
	id         string
	dispatcher *Dispatcher
	log        *transcript.Log

	mu       sync.Mutex
	messages []types.Message
	now      func() time.Time
}

// NewSession creates a session; log may be nil.
func NewSession(id string, d *Dispatcher, log *transcript.Log) *Session {
	return &Session{
		id:         id,
		dispatcher: d,
		log:        log,
		now:        time.Now,
	}
}

func (s *Session) ID() string { return s.id }

// Handle records text as a user message, dispatches it and records the reply.
func (s *Session) Handle(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := trace.StartSpan(ctx, "chat.Handle")
	defer span.End()

	start := s.now()
	s.append(ctx, types.Message{Role: types.RoleUser, Content: text, Time: start}, transcript.Entry{})

	parsed, reply := s.dispatcher.Respond(ctx, text)
	ticker := tickerOf(parsed)

	s.append(ctx, types.Message{Role: types.RoleAssistant, Content: reply, Time: s.now()}, transcript.Entry{
		Intent: parsed.Intent.String(),
		Ticker: ticker,
	})

	logger.Turn(ctx, parsed.Intent.String(), ticker, s.now().Sub(start), "session", s.id)
	return reply
}

func (s *Session) append(ctx context.Context, m types.Message, e transcript.Entry) {
	s.messages = append(s.messages, m)

	e.ChatID = s.id
	e.Role = m.Role
	e.Content = m.Content
	e.Time = m.Time.Format(time.RFC3339)
	if err := s.log.Append(e); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist transcript entry", err, "session", s.id)
	}
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func tickerOf(p types.ParsedUtterance) string {
	return resolver.ResolveSymbol(p.Entity("company_name", ""), p.Entity("symbol", "")).Ticker
}
