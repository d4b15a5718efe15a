package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/transferwatch/internal/config"
	handlershttp "github.com/gabapcia/transferwatch/internal/handlers/http"
	"github.com/gabapcia/transferwatch/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/transferwatch/internal/infra/messaging/kafka"
	"github.com/gabapcia/transferwatch/internal/infra/storage/postgres"
	"github.com/gabapcia/transferwatch/internal/infra/storage/redis"
	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/telemetry"
	"github.com/gabapcia/transferwatch/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// runner is a blocking component bound to a context.
type runner interface {
	Run(ctx context.Context) error
}

// startCommand returns the command that runs the watcher.
//
// Usage example:
//
//	DATABASE_URL=postgres://... transferwatch start
//
// The process runs until it receives SIGINT or SIGTERM, or until the poller gives
// up obtaining a starting height.
func startCommand() *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Tails the chain for large transfers and serves health and metrics endpoints.",
		Usage:       "Runs the poller and the HTTP server. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, shutdownTelemetry, err := setup(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			defer flushTelemetry(ctx, shutdownTelemetry)

			return start(ctx, cfg)
		},
	}
}

// start wires every component from cfg and runs them until ctx is canceled.
func start(ctx context.Context, cfg config.Config) error {
	sink, closeSinks, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	dedup, err := redis.NewClient(ctx, cfg.RedisAddr(), cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB,
		redis.WithTTL(cfg.RedisTTLDuration()),
	)
	if err != nil {
		return err
	}
	defer dedup.Close()

	poller := transferwatch.New(newChain(cfg), sink, cfg.Threshold(),
		transferwatch.WithDedupCache(dedup),
		transferwatch.WithPollInterval(cfg.PollInterval),
		transferwatch.WithMinCallInterval(cfg.RPCMinInterval),
		transferwatch.WithBackoff(cfg.BackoffBase, cfg.BackoffMax),
		transferwatch.WithFullTransactions(cfg.FullTransactions),
	)

	logger.Info(ctx, "starting transferwatch",
		"node.url", cfg.NodeURL,
		"transfer.threshold", cfg.Threshold().String(),
		"http.addr", cfg.HTTPAddr,
	)

	return runPipeline(ctx, poller, handlershttp.NewServer(cfg.HTTPAddr, poller))
}

// flushTelemetry calls shutdown with a bounded context that survives the
// cancellation of ctx.
func flushTelemetry(ctx context.Context, shutdown telemetry.ShutdownFunc) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "failed to flush telemetry", "error", err)
	}
}

// newChain builds the node client.
func newChain(cfg config.Config) transferwatch.Blockchain {
	conn := jsonrpc.NewClient(cfg.NodeURL,
		jsonrpc.WithTimeout(cfg.RPCTimeout),
		jsonrpc.WithRetryMax(cfg.RPCRetryMax),
	)

	return ethereum.NewClient(conn)
}

// newSink connects the Postgres sink and, when brokers are configured, fans out
// to Kafka as well. The returned func closes every sink.
func newSink(ctx context.Context, cfg config.Config) (transferwatch.TransferSink, func(), error) {
	pg, err := postgres.NewSink(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DatabaseEnsureSchema {
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}

	if len(cfg.KafkaBrokers) == 0 {
		return pg, pg.Close, nil
	}

	producer, err := kafka.NewSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		pg.Close()
		return nil, nil, err
	}

	closeAll := func() {
		if err := producer.Close(); err != nil {
			logger.Warn(ctx, "failed to close kafka producer", "error", err)
		}
		pg.Close()
	}

	return transferwatch.FanoutSink(pg, producer), closeAll, nil
}

// runPipeline runs the poller and the server together. When either stops, the
// other is canceled. Cancellation of ctx is a clean exit.
func runPipeline(ctx context.Context, poller, server runner) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return poller.Run(ctx)
	})

	g.Go(func() error {
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
