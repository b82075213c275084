package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/pkg/contextx"
	"github.com/justt1n/driffle-tool/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TelegramBot pushes noteworthy decisions to the operator's chat. Holds are
// not sent; a round of holds is the normal quiet state.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run drains the decisions channel until it closes or the context ends.
func (b *TelegramBot) Run(ctx context.Context, decisions <-chan entity.Decision) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case decision, ok := <-decisions:
			if !ok {
				return nil
			}

			if decision.Status == entity.DecisionHold {
				continue
			}

			if err := b.SendDecision(ctx, decision); err != nil {
				logger(ctx).Error("failed to send decision alert", logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendDecision(ctx context.Context, decision entity.Decision) error {
	var text string

	switch decision.Status {
	case entity.DecisionUpdate:
		target := "?"
		price := decision.Rule.CurrentPrice

		if decision.Target != nil {
			target = decision.Target.Name
			price = decision.Target.Price
		}

		text = fmt.Sprintf(
			"✅ <b>Price updated</b>\n\n"+
				"📦 <b>Product:</b> %s (row %d)\n"+
				"💰 <b>Price:</b> %.3f → %.3f\n"+
				"🎯 <b>Following:</b> %s",
			decision.Rule.ProductName,
			decision.Rule.RowIndex,
			decision.Rule.CurrentPrice,
			price,
			target,
		)
	default:
		text = fmt.Sprintf(
			"⚠️ <b>Row failed</b>\n\n"+
				"📦 <b>Product:</b> %s (row %d)\n"+
				"📝 %s",
			decision.Rule.ProductName,
			decision.Rule.RowIndex,
			decision.LogMessage,
		)
	}

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message, used for startup checks.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
