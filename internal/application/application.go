package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/justt1n/driffle-tool/internal/config"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/service/pricing"
	"github.com/justt1n/driffle-tool/internal/infrastructure/driffle"
	"github.com/justt1n/driffle-tool/internal/infrastructure/notifier"
	"github.com/justt1n/driffle-tool/internal/infrastructure/persistence"
	"github.com/justt1n/driffle-tool/internal/infrastructure/sheets"
	"github.com/justt1n/driffle-tool/internal/journal"
	"github.com/justt1n/driffle-tool/internal/server"
	"github.com/justt1n/driffle-tool/internal/transport/bot"
	"github.com/justt1n/driffle-tool/internal/transport/bot/handler"
	"github.com/justt1n/driffle-tool/internal/worker"
	"github.com/justt1n/driffle-tool/pkg/application/connectors"
	"github.com/justt1n/driffle-tool/pkg/application/modules"
	"github.com/justt1n/driffle-tool/pkg/contextx"
	"github.com/justt1n/driffle-tool/pkg/logx"
	"github.com/justt1n/driffle-tool/pkg/middlewarex"
)

const (
	journalCapacity    = 1000
	decisionBufferSize = 100
	logFieldMaxLen     = 4096

	httpShutdownTimeout   = 10 * time.Second
	httpReadHeaderTimeout = 5 * time.Second
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires the whole agent together and blocks until the context ends.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsListenAddress,
	}.Run(ctx, g)

	store, err := sheets.NewStore(ctx, cfg.Sheets)
	if err != nil {
		return fmt.Errorf("sheets.NewStore: %w", err)
	}

	gateway := driffle.NewAdapter(driffle.NewClient(cfg.Driffle), cfg.Driffle)

	seed := cfg.Worker.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	calculator := pricing.NewCalculator(rand.NewSource(seed))
	jrnl := journal.New(journalCapacity)

	repricer := worker.NewRepricer(store, gateway, calculator, jrnl, cfg.Worker.Workers)

	var history *persistence.DecisionRepository

	if cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		defer pg.Close(ctx)

		history = persistence.NewDecisionRepository(pg.Client(ctx))

		if err := history.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("history.EnsureSchema: %w", err)
		}

		repricer = repricer.WithRecorder(history)
	}

	if cfg.Bot.Enabled() {
		notifyBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		if err := notifyBot.SendText(ctx, "repricing agent starting"); err != nil {
			logger(ctx).Error("bot start message failed, notifications may be broken", logx.Error(err))
		}

		decisions := make(chan entity.Decision, decisionBufferSize)
		repricer = repricer.WithDecisionChannel(decisions)

		g.Go(func() error {
			return notifyBot.Run(ctx, decisions)
		})
	}

	statusServer := server.NewServer(cfg.App.Name, cfg.App.Version, jrnl)

	if history != nil {
		statusServer = statusServer.WithHistory(history)
	}

	var loop *worker.Loop

	if cfg.Redis.Enabled() {
		// asynq opens its own connections; this one only proves the address
		// works before the scheduler starts.
		rd := &connectors.Redis{
			Address:        cfg.Redis.Address,
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.DB,
		}
		rd.Client(ctx)

		defer rd.Close(ctx)

		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		modules.AsynqServer{
			RedisAddress:  cfg.Redis.Address,
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DB,
			Concurrency:   cfg.Worker.Workers,
		}.Run(ctx, g, worker.Queues(), modules.AsynqHandler{
			Pattern: worker.TypeRepricingRound,
			Handle:  repricer.HandleRoundTask,
		})

		g.Go(func() error {
			return worker.RunScheduler(ctx, redisOpt, cfg.Worker.SleepTime)
		})
	} else {
		loop = worker.NewLoop(repricer, cfg.Worker.SleepTime, cfg.Worker.CrashBackoff)
		statusServer = statusServer.WithRoundTrigger(loop)

		g.Go(func() error {
			return loop.Run(ctx)
		})
	}

	if cfg.Bot.CommandsEnabled() {
		var trigger handler.RoundTrigger
		if loop != nil {
			trigger = loop
		}

		controlBot, err := bot.New(ctx, cfg.Bot.Token, cfg.Bot.AdminID, handler.New(jrnl, trigger))
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error {
			return controlBot.Run(ctx)
		})
	}

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	statusServer.RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: httpShutdownTimeout,
	}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.App.StatusListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
