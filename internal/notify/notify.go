package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/minhle/karascribe/internal/jobs"
)

// Notifier posts job lifecycle updates to a telegram channel. It also
// satisfies logger.BotClient so the same bot backs the log mirror.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize notifier bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// SendMessage sends a plain message to an arbitrary chat.
func (n *Notifier) SendMessage(chatID int64, text string) error {
	_, err := n.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// JobDone announces a finished extraction to the channel.
func (n *Notifier) JobDone(job jobs.Job, language string, lineCount int) {
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf(
		"lyrics ready: %s\nlanguage: %s\nlines: %d\njob #%d",
		job.Track, language, lineCount, job.ID))
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		fmt.Printf("failed to send completion notice: %v\n", err)
	}
}

// JobFailed announces a failed extraction to the channel.
func (n *Notifier) JobFailed(job jobs.Job, reason string) {
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf(
		"extraction failed: %s\njob #%d\nreason: %s",
		job.Track, job.ID, reason))
	if _, err := n.bot.Send(msg); err != nil {
		fmt.Printf("failed to send failure notice: %v\n", err)
	}
}
