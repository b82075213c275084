package config

// Bot sends decision alerts to a Telegram chat. Optional: an empty token
// disables notifications.
type Bot struct {
	Token  string `env:"BOT_TOKEN" json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`

	// AdminID additionally enables the command interface for that user.
	AdminID int64 `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func (b Bot) CommandsEnabled() bool {
	return b.Token != "" && b.AdminID != 0
}
