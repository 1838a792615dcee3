package tdi

import (
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/notify"
)

// NewNotifier builds the notifier described by config: e-mail when an SMTP
// host is set, Telegram when a bot token is set, always the log. Returns nil
// when notifications are disabled.
func NewNotifier(config NotificationConfig, log *logger.Logger) (notify.Notifier, error) {
	if !config.Enabled {
		return nil, nil
	}

	notifiers := []notify.Notifier{notify.NewLogNotifier(log)}

	if config.SMTP.Host != "" {
		email, err := notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     config.SMTP.Host,
			Port:     config.SMTP.Port,
			Username: config.SMTP.Username,
			Password: config.SMTP.Password,
		})
		if err != nil {
			return nil, err
		}

		notifiers = append(notifiers, email)
	}

	if config.Telegram.BotToken != "" {
		telegram, err := notify.NewTelegramNotifier(config.Telegram.BotToken, config.Telegram.ChatID)
		if err != nil {
			return nil, err
		}

		notifiers = append(notifiers, telegram)
	}

	return notify.NewMultiNotifier(notifiers...), nil
}
