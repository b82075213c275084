package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/justt1n/driffle-tool/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnDecisions, th.CommandEqual("decisions"))
	adminGroup.HandleMessage(h.OnRound, th.CommandEqual("round"))
}
