// Package telegram serves chat sessions over a Telegram bot using long polling.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"stockchat/internal/chat"
	"stockchat/internal/logger"
	"stockchat/internal/transcript"
)

const helpText = "Ask me about stock prices, historical data, market news or investment recommendations.\n" +
	"Examples:\n" +
	"- What is the price of Apple?\n" +
	"- Show me Tesla for the last week\n" +
	"- Recommend a short-term high risk investment"

type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Surface keeps one chat.Session per Telegram chat.
type Surface struct {
	dispatcher *chat.Dispatcher
	log        *transcript.Log

	mu       sync.Mutex
	sessions map[int64]*chat.Session

	bot    *bot.Bot
	sender sender
}

func New(token string, d *chat.Dispatcher, log *transcript.Log) (*Surface, error) {
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN missing")
	}
	s := newSurface(d, log)

	b, err := bot.New(token, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		s.handleUpdate(ctx, update)
	}))
	if err != nil {
		return nil, err
	}
	s.bot = b
	s.sender = b
	return s, nil
}

func newSurface(d *chat.Dispatcher, log *transcript.Log) *Surface {
	return &Surface{
		dispatcher: d,
		log:        log,
		sessions:   make(map[int64]*chat.Session),
	}
}

// Start polls for updates until ctx is cancelled.
func (s *Surface) Start(ctx context.Context) {
	logger.Info(ctx, "Starting Telegram surface")
	s.bot.Start(ctx)
	logger.Info(ctx, "Telegram surface stopped")
}

func (s *Surface) session(chatID int64) *chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = chat.NewSession(strconv.FormatInt(chatID, 10), s.dispatcher, s.log)
		s.sessions[chatID] = sess
	}
	return sess
}

func (s *Surface) handleUpdate(ctx context.Context, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	if chatID == 0 || text == "" {
		return
	}

	var reply string
	switch strings.ToLower(strings.Fields(text)[0]) {
	case "/start", "/help":
		reply = helpText
	default:
		reply = s.session(chatID).Handle(ctx, text)
	}

	if _, err := s.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply,
	}); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send Telegram reply", err, "chat_id", chatID)
	}
}
