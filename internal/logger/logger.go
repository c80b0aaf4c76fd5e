package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BotClient is the chat sink behind the optional channel mirror. Kept
// as an interface so the notifier can back it without this package
// depending on the bot API.
type BotClient interface {
	SendMessage(chatID int64, text string) error
}

var (
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	mu        sync.RWMutex
	botClient BotClient
	channelID int64
)

// Init attaches a chat channel that mirrors every log line. Logging to
// stderr works without it.
func Init(client BotClient, logChannelID int64) {
	mu.Lock()
	defer mu.Unlock()
	botClient = client
	channelID = logChannelID
}

func Info(message string) {
	log.Info().Msg(message)
	mirror("ℹ️ INFO", message)
}

func Error(message string) {
	log.Error().Msg(message)
	mirror("❌ ERROR", message)
}

func Debug(message string) {
	log.Debug().Msg(message)
	mirror("🔍 DEBUG", message)
}

func Success(message string) {
	log.Info().Str("status", "success").Msg(message)
	mirror("✅ SUCCESS", message)
}

func mirror(prefix, message string) {
	mu.RLock()
	client, id := botClient, channelID
	mu.RUnlock()
	if client == nil {
		return
	}

	text := fmt.Sprintf("[%s] %s\n%s", time.Now().Format("2006-01-02 15:04:05"), prefix, message)
	go func() {
		if err := client.SendMessage(id, text); err != nil {
			log.Error().Err(err).Msg("failed to mirror log to channel")
		}
	}()
}
