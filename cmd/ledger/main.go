// Package main runs a delivery ledger: it seals a genesis block, records the given
// deliveries into proof-of-work blocks and reports the resulting chain.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/chain"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/hasher"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/pow"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/producer"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/metrics"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Difficulty      string        `long:"difficulty" env:"DRONEDROP_DIFFICULTY" description:"proof-of-work preset: extreme, high, low or fast" default:"low"`
	Hasher          string        `long:"hasher" env:"DRONEDROP_HASHER" description:"block hash function: sha1 or sha256d" default:"sha1"`
	MaxIterations   uint64        `long:"max-iterations" env:"DRONEDROP_MAX_ITERATIONS" description:"hash evaluations allowed per block, 0 for unbounded" default:"0"`
	Workers         int           `long:"workers" env:"DRONEDROP_WORKERS" description:"parallel nonce search workers" default:"1"`
	Window          uint64        `long:"window" env:"DRONEDROP_WINDOW" description:"nonces scanned per worker task" default:"4096"`
	SealTimeout     time.Duration `long:"seal-timeout" env:"DRONEDROP_SEAL_TIMEOUT" description:"abort mining after this long, 0 to disable" default:"0"`
	BlockSize       int           `long:"block-size" env:"DRONEDROP_BLOCK_SIZE" description:"deliveries per block" default:"100"`
	FlushInterval   time.Duration `long:"flush-interval" env:"DRONEDROP_FLUSH_INTERVAL" description:"seal pending deliveries after this long" default:"10s"`
	BlocksPerSecond int           `long:"blocks-per-second" env:"DRONEDROP_BLOCKS_PER_SECOND" description:"block production rate limit" default:"10"`
	Deliveries      []string      `long:"delivery" env:"DRONEDROP_DELIVERIES" env-delim:"," description:"delivery as sender:target:gps, repeatable"`
	MetricsAddr     string        `long:"metrics-addr" env:"DRONEDROP_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ledger failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	difficulty, err := model.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return err
	}
	hash, err := hasher.ByName(cfg.Hasher)
	if err != nil {
		return err
	}
	deliveries, err := parseDeliveries(cfg.Deliveries)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	if cfg.SealTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SealTimeout)
		defer cancel()
	}

	miner, err := pow.NewMiner(hash, pow.Config{
		MaxIterations: cfg.MaxIterations,
		Workers:       cfg.Workers,
		Window:        cfg.Window,
	}, metrics.NewMiner(difficulty, cfg.Hasher), logger.Named("miner"))
	if err != nil {
		return fmt.Errorf("init miner: %w", err)
	}

	c, err := chain.New(ctx, model.NewBlock(), miner, chain.Config{Difficulty: difficulty}, logger.Named("chain"))
	if err != nil {
		return fmt.Errorf("init chain: %w", err)
	}
	logger.Info("genesis block found", zap.String("hash", c.Blocks()[0].Hash))

	p, err := producer.New(c, metrics.NewProducer(), producer.Config{
		BlockSize:       cfg.BlockSize,
		FlushInterval:   cfg.FlushInterval,
		BlocksPerSecond: cfg.BlocksPerSecond,
		ErrorBuffer:     len(deliveries) + 1,
	}, logger.Named("producer"))
	if err != nil {
		return fmt.Errorf("init producer: %w", err)
	}

	if err := record(ctx, p, deliveries); err != nil {
		return err
	}
	if err := c.Verify(); err != nil {
		return fmt.Errorf("verify chain: %w", err)
	}

	for _, b := range p.Blocks() {
		logger.Info("block",
			zap.Uint64("index", b.Index),
			zap.String("previous_hash", b.PreviousHash),
			zap.String("hash", b.Hash),
			zap.Uint64("nonce", b.Nonce),
			zap.Int("deliveries", len(b.Deliveries())),
		)
	}
	logger.Info("number of blocks in chain", zap.Int("blocks", p.Len()))
	return nil
}

// record submits deliveries, waits for them to be sealed and returns every
// production error.
func record(ctx context.Context, p *producer.Producer, deliveries []model.DeliveryRecord) error {
	p.Start(ctx)

	var errs []error
	for _, d := range deliveries {
		if err := p.Submit(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("submit delivery: %w", err))
			break
		}
	}
	p.Stop()

	for err := range p.Errors() {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
