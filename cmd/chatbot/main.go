package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stockchat/internal/chat"
	"stockchat/internal/logger"
	"stockchat/internal/surface/telegram"
	"stockchat/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	useTelegram := flag.Bool("telegram", false, "serve chats over Telegram instead of stdin")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer trace.Shutdown(context.Background())

	cfg, secrets, err := loadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dispatcher := chat.NewDispatcher(
		initializeExtractor(ctx, cfg, secrets),
		initializeBroker(ctx, cfg, secrets),
		initializeNews(cfg),
	)
	log := initializeTranscript(ctx, cfg)

	if *useTelegram {
		surface, err := telegram.New(secrets.TelegramBotToken, dispatcher, log)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to start Telegram surface", err)
			os.Exit(1)
		}
		sched, err := initializeMaintenance(ctx, cfg, log)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to schedule maintenance", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()

		surface.Start(ctx)
		return
	}

	repl(ctx, chat.NewSession("cli", dispatcher, log), os.Stdin, os.Stdout)
}

// repl reads one message per line until EOF, "exit" or "quit".
func repl(ctx context.Context, s *chat.Session, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Finance Chatbot: ask me about stock prices, historical data, news or investment recommendations.")

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return
		}
		text := strings.TrimSpace(sc.Text())
		switch strings.ToLower(text) {
		case "exit", "quit":
			return
		case "":
			continue
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "Bot: %s\n", s.Handle(ctx, text))
	}
}
