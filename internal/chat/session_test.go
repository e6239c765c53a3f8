package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchat/internal/transcript"
	"stockchat/internal/types"
)

func TestSessionAppendsBothSides(t *testing.T) {
	ex := &fakeExtractor{parsed: utterance(types.Unknown)}
	s := NewSession("cli", NewDispatcher(ex, &fakeBroker{}, &fakeNews{}), nil)

	reply := s.Handle(context.Background(), "tell me a joke")
	assert.Equal(t, FallbackReply, reply)

	msgs := s.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
	assert.Equal(t, "tell me a joke", msgs[0].Content)
	assert.Equal(t, types.RoleAssistant, msgs[1].Role)
	assert.Equal(t, FallbackReply, msgs[1].Content)
}

func TestTranscriptIsAppendOnly(t *testing.T) {
	ex := &fakeExtractor{parsed: utterance(types.GetRecommendation)}
	s := NewSession("cli", NewDispatcher(ex, &fakeBroker{}, &fakeNews{}), nil)

	s.Handle(context.Background(), "first")
	before := s.Transcript()
	before[0].Content = "mutated"

	s.Handle(context.Background(), "second")
	after := s.Transcript()

	require.Len(t, after, 4)
	assert.Equal(t, "first", after[0].Content)
	assert.Equal(t, "second", after[2].Content)
}

func TestSessionPersistsTranscript(t *testing.T) {
	dir := t.TempDir()
	ex := &fakeExtractor{parsed: utterance(types.GetRecommendation)}
	s := NewSession("42", NewDispatcher(ex, &fakeBroker{}, &fakeNews{}), transcript.New(dir))

	s.Handle(context.Background(), "what should I buy")

	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	raw, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"chat_id":"42"`)
	assert.Contains(t, string(raw), `"intent":"get_investment_recommendation"`)
}
