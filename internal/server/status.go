package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"git.appkode.ru/pub/go/failure"

	"github.com/justt1n/driffle-tool/pkg/contextx"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
	"github.com/justt1n/driffle-tool/pkg/httpx/reply"
	"github.com/justt1n/driffle-tool/pkg/httpx/req"
	"github.com/justt1n/driffle-tool/pkg/lox"
	"github.com/justt1n/driffle-tool/pkg/rest"
)

const (
	defaultDecisionsLimit = 50
	maxDecisionsLimit     = 500
)

func (s Server) getV1Status(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status := rest.Status{
		Name:    s.name,
		Version: s.version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	}

	if summary, ok := s.journal.LastRound(); ok {
		status.LastRound = newRESTRoundSummary(summary)
	}

	reply.JSON(ctx, w, http.StatusOK, status)

	return nil
}

func (s Server) getV1Decisions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit := defaultDecisionsLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxDecisionsLimit {
			return failure.NewInvalidArgumentError(
				fmt.Sprintf("limit=%q", raw),
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription(fmt.Sprintf("limit must be an integer in [1, %d]", maxDecisionsLimit)),
			)
		}

		limit = parsed
	}

	records := s.journal.Recent(limit)

	// The durable log survives restarts; prefer it when available.
	if s.history != nil {
		persisted, err := s.history.ListRecent(ctx, limit)
		if err == nil {
			records = persisted
		}
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(records, newRESTDecisionRecord))

	return nil
}

func (s Server) postV1Rounds(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var in rest.RoundRequest

	// The body is optional; a bare POST triggers a round just the same.
	if r.ContentLength != 0 {
		if err := req.Read(r, &in); err != nil {
			return err
		}
	}

	if s.trigger == nil {
		return failure.NewInvalidArgumentError(
			"no round trigger configured",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("manual rounds are unavailable when scheduling runs through the task queue"),
		)
	}

	// When a trigger is already pending the next round covers this request too.
	s.trigger.TriggerRound()

	if in.Reason != "" {
		contextx.LoggerFromContextOrDefault(ctx).Info("manual round requested",
			slog.String("reason", in.Reason))
	}

	reply.OK(w)

	return nil
}
