// Package pow implements the proof-of-work nonce search that seals blocks.
package pow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/hasher"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/dronedrop-ledger/pkg/safe"
	"github.com/goodnatureofminers/dronedrop-ledger/pkg/workerpool"
	"go.uber.org/zap"
)

// ErrSearchExhausted is returned when the iteration cap or the nonce space runs out
// before a qualifying hash is found.
var ErrSearchExhausted = errors.New("nonce search exhausted")

// Config tunes the nonce search.
type Config struct {
	// MaxIterations caps hash evaluations per seal. Zero means unbounded.
	MaxIterations uint64
	// Workers above one enables the parallel search.
	Workers int
	// Window is the number of nonces a worker scans per task.
	Window uint64
}

// Miner seals blocks by searching for a nonce whose key hash has the target prefix.
type Miner struct {
	hash          hasher.Func
	maxIterations uint64
	workers       int
	window        uint64
	metrics       Metrics
	logger        *zap.Logger
}

func NewMiner(hash hasher.Func, cfg Config, metrics Metrics, logger *zap.Logger) (*Miner, error) {
	if hash == nil {
		return nil, errors.New("hash function is required")
	}
	if metrics == nil {
		return nil, errors.New("miner metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Window == 0 {
		cfg.Window = defaultWindow
	}
	return &Miner{
		hash:          hash,
		maxIterations: cfg.MaxIterations,
		workers:       cfg.Workers,
		window:        cfg.Window,
		metrics:       metrics,
		logger:        logger,
	}, nil
}

// Meets reports whether hash satisfies the difficulty target.
func Meets(hash, target string) bool {
	return strings.HasPrefix(hash, target)
}

// Hash returns the hash of the block key at its current nonce.
func (m *Miner) Hash(b *model.Block) (string, error) {
	key, err := b.Key()
	if err != nil {
		return "", err
	}
	return m.hash(key), nil
}

// Seal finds the smallest nonce not below b.Nonce whose key hash starts with
// target, then stores that nonce and hash on the block. The block is left
// untouched on error.
func (m *Miner) Seal(ctx context.Context, b *model.Block, target string) (err error) {
	started := time.Now()
	var attempts uint64
	defer func() {
		m.metrics.ObserveSeal(err, attempts, started)
	}()

	keyAt, err := b.KeyFunc()
	if err != nil {
		return err
	}

	var (
		nonce uint64
		hash  string
	)
	if m.workers > 1 {
		nonce, hash, attempts, err = m.searchParallel(ctx, keyAt, b.Nonce, target)
	} else {
		nonce, hash, attempts, err = m.searchSequential(ctx, keyAt, b.Nonce, target)
	}
	if err != nil {
		return fmt.Errorf("seal block %d: %w", b.Index, err)
	}

	b.Nonce = nonce
	b.Hash = hash
	m.logger.Debug("block sealed",
		zap.Uint64("index", b.Index),
		zap.Uint64("nonce", nonce),
		zap.String("hash", hash),
		zap.Uint64("attempts", attempts),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (m *Miner) searchSequential(
	ctx context.Context,
	keyAt func(uint64) []byte,
	start uint64,
	target string,
) (uint64, string, uint64, error) {
	var attempts uint64
	for nonce := start; ; nonce++ {
		if attempts%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, "", attempts, err
			}
		}
		if m.maxIterations > 0 && attempts >= m.maxIterations {
			return 0, "", attempts, exhausted(attempts, start)
		}

		hash := m.hash(keyAt(nonce))
		attempts++
		if Meets(hash, target) {
			return nonce, hash, attempts, nil
		}
		if nonce == math.MaxUint64 {
			return 0, "", attempts, exhausted(attempts, start)
		}
	}
}

type found struct {
	nonce uint64
	hash  string
}

// searchParallel scans the nonce space in rounds of m.workers windows. Each window
// reports its lowest qualifying nonce and the lowest window with a hit wins the
// round, so the result matches searchSequential.
func (m *Miner) searchParallel(
	ctx context.Context,
	keyAt func(uint64) []byte,
	start uint64,
	target string,
) (uint64, string, uint64, error) {
	roundSize, err := safe.MulUint64(m.window, uint64(m.workers))
	if err != nil {
		return 0, "", 0, err
	}

	var attempts uint64
	base := start
	for {
		if err := ctx.Err(); err != nil {
			return 0, "", attempts, err
		}

		budget := roundSize
		if m.maxIterations > 0 {
			remaining := m.maxIterations - attempts
			if remaining == 0 {
				return 0, "", attempts, exhausted(attempts, start)
			}
			if remaining < budget {
				budget = remaining
			}
		}
		if left := math.MaxUint64 - base; left < budget-1 {
			budget = left + 1
		}

		ranges := workerpool.Ranges(base, budget, m.window)
		results := make([]found, len(ranges))
		var best atomic.Int64
		best.Store(int64(len(ranges)))
		var scanned atomic.Uint64

		err := workerpool.Process(ctx, m.workers, ranges, func(ctx context.Context, r workerpool.Range) error {
			for nonce, n := r.From, 0; ; nonce, n = nonce+1, n+1 {
				if best.Load() < int64(r.Index) {
					return nil
				}
				if n%ctxCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				hash := m.hash(keyAt(nonce))
				scanned.Add(1)
				if Meets(hash, target) {
					results[r.Index] = found{nonce: nonce, hash: hash}
					lowerBest(&best, int64(r.Index))
					return nil
				}
				if nonce == r.To {
					return nil
				}
			}
		}, nil)
		attempts += scanned.Load()
		if err != nil {
			return 0, "", attempts, err
		}

		if idx := best.Load(); idx < int64(len(ranges)) {
			return results[idx].nonce, results[idx].hash, attempts, nil
		}

		next, err := safe.AddUint64(base, budget)
		if err != nil {
			return 0, "", attempts, exhausted(attempts, start)
		}
		base = next
	}
}

func lowerBest(best *atomic.Int64, idx int64) {
	for {
		cur := best.Load()
		if idx >= cur || best.CompareAndSwap(cur, idx) {
			return
		}
	}
}

func exhausted(attempts, start uint64) error {
	return fmt.Errorf("%w after %d attempts from nonce %d", ErrSearchExhausted, attempts, start)
}
