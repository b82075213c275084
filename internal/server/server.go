package server

import (
	"context"
	"time"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/journal"
)

// decisionHistory is the durable decision log; present only when Postgres is
// configured.
type decisionHistory interface {
	ListRecent(ctx context.Context, limit int) ([]entity.DecisionRecord, error)
}

// roundTrigger pokes the worker loop into running a round ahead of schedule.
type roundTrigger interface {
	TriggerRound() bool
}

// Server is the operator-facing status API.
type Server struct {
	name    string
	version string
	started time.Time

	journal *journal.Journal
	history decisionHistory // nil without persistence
	trigger roundTrigger    // nil when rounds run through asynq
}

func NewServer(name, version string, jrnl *journal.Journal) Server {
	return Server{
		name:    name,
		version: version,
		started: time.Now(),
		journal: jrnl,
	}
}

func (s Server) WithHistory(history decisionHistory) Server {
	s.history = history
	return s
}

func (s Server) WithRoundTrigger(trigger roundTrigger) Server {
	s.trigger = trigger
	return s
}
