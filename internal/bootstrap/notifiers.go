package bootstrap

import (
	"log/slog"

	"github.com/osse101/PigFarmBot_Go/internal/config"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/notify"
)

// BuildNotifiers picks the player channel and the optional administrator
// channel. Without a chat platform, player messages go to the log; in
// development they are mirrored there as well.
func BuildNotifiers(cfg *config.Config, chat notify.Notifier) (players, admins notify.Notifier) {
	channels := []string{}
	if chat != nil {
		players = chat
		channels = append(channels, NotifierNameDiscord)
		if logger.IsDevelopment(cfg.Environment) {
			players = notify.NewMultiNotifier(chat, notify.LogNotifier{})
			channels = append(channels, NotifierNameLog)
		}
	} else {
		players = notify.LogNotifier{}
		channels = append(channels, NotifierNameLog)
	}

	if cfg.NotifyWebhookURL != "" {
		admins = notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
		channels = append(channels, NotifierNameWebhook)
	}

	slog.Info(LogMsgNotifiersConfigured, "channels", channels)
	return players, admins
}
