package worker

import (
	"context"
	"time"

	"github.com/justt1n/driffle-tool/pkg/logx"
)

// Loop drives rounds with a plain ticker when no Redis-backed scheduler is
// configured.
type Loop struct {
	repricer     *Repricer
	sleepTime    time.Duration
	crashBackoff time.Duration
	trigger      chan struct{}
}

func NewLoop(repricer *Repricer, sleepTime, crashBackoff time.Duration) *Loop {
	return &Loop{
		repricer:     repricer,
		sleepTime:    sleepTime,
		crashBackoff: crashBackoff,
		trigger:      make(chan struct{}, 1),
	}
}

// TriggerRound asks for a round ahead of schedule. Returns false when a
// trigger is already pending.
func (l *Loop) TriggerRound() bool {
	select {
	case l.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Run executes rounds until the context ends. A crashed round is logged and
// retried after the backoff; the loop itself never gives up.
func (l *Loop) Run(ctx context.Context) error {
	for {
		pause := l.sleepTime

		if err := l.repricer.RunRound(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logger(ctx).Error("round crashed, backing off", logx.Error(err))
			pause = l.crashBackoff
		}

		timer := time.NewTimer(pause)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-l.trigger:
			timer.Stop()
		case <-timer.C:
		}
	}
}
