package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// botSender is the part of tgbotapi.BotAPI the notifier uses.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts notifications to a chat through the Telegram Bot API.
type TelegramNotifier struct {
	bot            botSender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewTelegramNotifier authenticates the bot token against the Bot API.
func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotificationFailed, "failed to create telegram bot", err)
	}

	return newTelegramNotifier(bot, chatID, 3, time.Second), nil
}

func newTelegramNotifier(bot botSender, chatID int64, maxRetries int, retryDelayBase time.Duration) *TelegramNotifier {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &TelegramNotifier{
		bot:            bot,
		chatID:         chatID,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}
}

// Send implements Notifier. Failed sends are retried with linear backoff.
func (t *TelegramNotifier) Send(ctx context.Context, notification types.Notification) error {
	msg := tgbotapi.NewMessage(t.chatID, formatTelegram(notification))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	var lastErr error

	for attempt := range t.maxRetries {
		_, err := t.bot.Send(msg)
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == t.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(errors.ErrCodeNotificationFailed, "telegram send cancelled", ctx.Err())
		case <-time.After(t.retryDelayBase * time.Duration(attempt+1)):
		}
	}

	return errors.Wrapf(errors.ErrCodeNotificationFailed, lastErr, "telegram send failed after %d retries", t.maxRetries)
}

func formatTelegram(notification types.Notification) string {
	emoji := "📈"
	if notification.Direction == types.DirectionBearish {
		emoji = "📉"
	}

	body := "```\n" + strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(notification.Body) + "\n```"

	return fmt.Sprintf("%s *%s*\n%s", emoji, escapeMarkdownV2(notification.Subject), body)
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder

	b.Grow(len(text) + len(text)/4)

	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}

		b.WriteRune(char)
	}

	return b.String()
}
