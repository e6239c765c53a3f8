package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockchat/internal/chat"
	"stockchat/internal/nlu/noop"
)

func TestREPLStopsOnQuit(t *testing.T) {
	s := chat.NewSession("cli", chat.NewDispatcher(noop.NewExtractor(), nil, nil), nil)
	var out bytes.Buffer

	repl(context.Background(), s, strings.NewReader("hello\n\nQUIT\nnever read\n"), &out)

	assert.Equal(t, 1, strings.Count(out.String(), "Bot: "+chat.FallbackReply))
	assert.Len(t, s.Transcript(), 2)
}

func TestREPLStopsOnEOF(t *testing.T) {
	s := chat.NewSession("cli", chat.NewDispatcher(noop.NewExtractor(), nil, nil), nil)
	var out bytes.Buffer

	repl(context.Background(), s, strings.NewReader("one\ntwo"), &out)

	assert.Len(t, s.Transcript(), 4)
}
