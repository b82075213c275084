package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

const recentDecisionsShown = 10

const startMessage = `<b>Repricing agent</b>

/status - last round summary
/decisions - recent decisions
/round - run a round now`

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	summary, ok := h.journal.LastRound()
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, "No round has finished yet.")
	}

	text := fmt.Sprintf(`📊 <b>Last round</b>

Finished: %s
Duration: %s
Rows: %d
Updates: %d
Holds: %d
Failures: %d`,
		summary.FinishedAt.Format(time.RFC3339),
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond),
		summary.Rows,
		summary.Updates,
		summary.Holds,
		summary.Failures,
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnDecisions(ctx *th.Context, msg telego.Message) error {
	records := h.journal.Recent(recentDecisionsShown)
	if len(records) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, "No decisions recorded yet.")
	}

	var b strings.Builder

	b.WriteString("<b>Recent decisions</b>\n")

	for _, record := range records {
		fmt.Fprintf(&b, "\n%s <b>%s</b> (row %d): %.2f",
			statusEmoji(record.Status), record.ProductName, record.RowIndex, record.CurrentPrice)

		if record.Status == entity.DecisionUpdate && record.Target != nil {
			fmt.Fprintf(&b, " -> %.2f (%s)", record.Target.Price, record.Target.Name)
		}
	}

	return h.sendHTML(ctx, msg.Chat.ID, b.String())
}

func (h *Handler) OnRound(ctx *th.Context, msg telego.Message) error {
	if h.trigger == nil {
		return h.sendHTML(ctx, msg.Chat.ID, "Rounds are scheduled through the task queue; manual triggering is off.")
	}

	if h.trigger.TriggerRound() {
		return h.sendHTML(ctx, msg.Chat.ID, "Round triggered.")
	}

	return h.sendHTML(ctx, msg.Chat.ID, "A round is already pending.")
}

func statusEmoji(status entity.DecisionStatus) string {
	switch status {
	case entity.DecisionUpdate:
		return "✅"
	case entity.DecisionHold:
		return "⏸"
	case entity.DecisionFail:
		return "⚠️"
	default:
		return "❓"
	}
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{ //nolint:exhaustruct
		ChatID:    telego.ChatID{ID: chatID}, //nolint:exhaustruct
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	if err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
