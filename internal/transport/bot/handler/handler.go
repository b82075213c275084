package handler

import (
	"github.com/justt1n/driffle-tool/internal/journal"
)

// RoundTrigger asks the scheduler for a round ahead of time. Nil when rounds
// run through the task queue.
type RoundTrigger interface {
	TriggerRound() bool
}

type Handler struct {
	journal *journal.Journal
	trigger RoundTrigger
}

func New(jrnl *journal.Journal, trigger RoundTrigger) *Handler {
	return &Handler{
		journal: jrnl,
		trigger: trigger,
	}
}
