package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeRepricingRound is the periodic task driving one round when scheduling
// runs through asynq instead of the in-process loop.
const TypeRepricingRound = "repricing:round"

const repricingQueue = "repricing"

// Queues is the asynq queue weighting for the server.
func Queues() map[string]int {
	return map[string]int{repricingQueue: 1}
}

// HandleRoundTask adapts the repricer to the asynq handler contract.
func (r *Repricer) HandleRoundTask(ctx context.Context, _ *asynq.Task) error {
	if err := r.RunRound(ctx); err != nil {
		return fmt.Errorf("repricer.RunRound: %w", err)
	}

	return nil
}

// RunScheduler registers the periodic round task and blocks until the
// context ends.
func RunScheduler(ctx context.Context, redisOpt asynq.RedisClientOpt, interval time.Duration) error {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	task := asynq.NewTask(TypeRepricingRound, nil)

	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", interval),
		task,
		asynq.Queue(repricingQueue),
		// A round that outlives the interval must not stack a second one.
		asynq.MaxRetry(0),
	); err != nil {
		return fmt.Errorf("scheduler.Register: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("scheduler.Start: %w", err)
	}

	<-ctx.Done()
	scheduler.Shutdown()

	return nil
}
