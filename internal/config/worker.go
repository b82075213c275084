package config

import "time"

type Worker struct {
	// Workers is both the concurrency limit and the batch size of a round.
	Workers int `env:"WORKERS" envDefault:"4" validate:"gte=1"`

	// SleepTime is the pause between rounds.
	SleepTime time.Duration `env:"SLEEP_TIME" envDefault:"30s"`

	// CrashBackoff is how long a round loop waits after an unexpected failure
	// before trying again.
	CrashBackoff time.Duration `env:"CRASH_BACKOFF" envDefault:"30s"`

	// RandomSeed pins the price randomization for replays. Zero seeds from
	// the clock.
	RandomSeed int64 `env:"RANDOM_SEED"`
}
