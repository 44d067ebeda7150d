// Package producer turns a stream of submitted deliveries into sealed blocks.
package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/dronedrop-ledger/pkg/batcher"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// Config controls how deliveries are grouped into blocks.
type Config struct {
	// BlockSize is the number of deliveries that triggers a block.
	BlockSize int
	// FlushInterval seals pending deliveries even if BlockSize is not reached.
	FlushInterval time.Duration
	// BlocksPerSecond caps the block production rate.
	BlocksPerSecond int
	// ErrorBuffer is the capacity of the Errors channel.
	ErrorBuffer int
}

// Producer is the single writer of a chain. Deliveries are buffered and sealed
// into blocks by one background goroutine; reads may happen concurrently.
type Producer struct {
	chain   Chain
	metrics Metrics
	logger  *zap.Logger
	batcher *batcher.Batcher[model.DeliveryRecord]
	errs    chan error

	mu deadlock.RWMutex
}

func New(chain Chain, metrics Metrics, cfg Config, logger *zap.Logger) (*Producer, error) {
	if chain == nil {
		return nil, errors.New("chain is required")
	}
	if metrics == nil {
		return nil, errors.New("producer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = defaultBlockSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.BlocksPerSecond <= 0 {
		cfg.BlocksPerSecond = defaultBlocksPerSecond
	}
	if cfg.ErrorBuffer <= 0 {
		cfg.ErrorBuffer = defaultErrorBuffer
	}

	p := &Producer{
		chain:   chain,
		metrics: metrics,
		logger:  logger,
		errs:    make(chan error, cfg.ErrorBuffer),
	}
	p.batcher = batcher.New(
		logger.Named("batcher"),
		p.produce,
		cfg.BlockSize,
		cfg.FlushInterval,
		cfg.BlocksPerSecond,
	).OnError(p.report)
	return p, nil
}

// Start launches the background block production loop.
func (p *Producer) Start(ctx context.Context) {
	p.metrics.SetChainLength(p.Len())
	p.batcher.Start(ctx)
}

// Stop seals every pending delivery, stops the loop and closes Errors.
// It must be called exactly once, after Start.
func (p *Producer) Stop() {
	p.batcher.Stop()
	close(p.errs)
}

// Submit queues a delivery for inclusion in a future block.
func (p *Producer) Submit(ctx context.Context, d model.DeliveryRecord) error {
	return p.batcher.Add(ctx, d)
}

// Errors reports batches that could not be turned into a block.
func (p *Producer) Errors() <-chan error {
	return p.errs
}

// Blocks returns a snapshot of the chain.
func (p *Producer) Blocks() []*model.Block {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chain.Blocks()
}

func (p *Producer) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chain.Len()
}

func (p *Producer) produce(ctx context.Context, deliveries []model.DeliveryRecord) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveBlock(err, len(deliveries), started)
	}()

	// Only this goroutine writes, so sealing can run under the read lock.
	p.mu.RLock()
	b, err := p.chain.NextBlock(ctx, deliveries)
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("build block: %w", err)
	}

	p.mu.Lock()
	err = p.chain.AddBlock(ctx, b)
	length := p.chain.Len()
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("append block %d: %w", b.Index, err)
	}

	p.metrics.SetChainLength(length)
	p.logger.Info("block produced",
		zap.Uint64("index", b.Index),
		zap.String("hash", b.Hash),
		zap.Int("deliveries", len(deliveries)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (p *Producer) report(deliveries []model.DeliveryRecord, err error) {
	err = fmt.Errorf("%d deliveries not recorded: %w", len(deliveries), err)
	select {
	case p.errs <- err:
	default:
		p.logger.Warn("error channel full, dropping error", zap.Error(err))
	}
}
