// Package chain maintains the append-only, hash-linked sequence of sealed blocks.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/contract"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/pow"
	"github.com/goodnatureofminers/dronedrop-ledger/pkg/safe"
	"go.uber.org/zap"
)

// Chain is not safe for concurrent use; callers serialize writes.
type Chain struct {
	blocks     []*model.Block
	difficulty model.Difficulty
	miner      Miner
	contract   contract.SmartContract
	logger     *zap.Logger
}

// New creates a chain and seals genesis in place as its first block.
func New(ctx context.Context, genesis *model.Block, miner Miner, cfg Config, logger *zap.Logger) (*Chain, error) {
	if genesis == nil {
		return nil, errors.New("genesis block is required")
	}
	if miner == nil {
		return nil, errors.New("miner is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = model.DefaultDifficulty
	}
	if cfg.Contract == nil {
		cfg.Contract = contract.DeliveryContract{}
	}

	c := &Chain{
		blocks:     make([]*model.Block, 0, 1),
		difficulty: cfg.Difficulty,
		miner:      miner,
		contract:   cfg.Contract,
		logger:     logger.With(zap.String("difficulty", string(cfg.Difficulty))),
	}
	if err := c.AddBlock(ctx, genesis); err != nil {
		return nil, fmt.Errorf("add genesis block: %w", err)
	}
	return c, nil
}

// Difficulty returns the target every block hash must start with.
func (c *Chain) Difficulty() model.Difficulty {
	return c.difficulty
}

func (c *Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns copies of all blocks in chain order.
func (c *Chain) Blocks() []*model.Block {
	out := make([]*model.Block, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.Clone()
	}
	return out
}

// Tail returns a copy of the last block.
func (c *Chain) Tail() (*model.Block, error) {
	if len(c.blocks) == 0 {
		return nil, ErrEmptyChain
	}
	return c.blocks[len(c.blocks)-1].Clone(), nil
}

// NextBlock builds and seals the block that would follow the current tail. The
// block is not appended.
func (c *Chain) NextBlock(ctx context.Context, deliveries []model.DeliveryRecord) (*model.Block, error) {
	if len(c.blocks) == 0 {
		return nil, ErrEmptyChain
	}
	index, err := safe.Uint64(len(c.blocks))
	if err != nil {
		return nil, err
	}

	b := model.NewBlock()
	for _, d := range deliveries {
		b.AddDelivery(d)
	}
	b.Index = index
	b.PreviousHash = c.blocks[len(c.blocks)-1].Hash

	if err := c.miner.Seal(ctx, b, c.difficulty.Prefix()); err != nil {
		return nil, err
	}
	return b, nil
}

// AddBlock appends b. The first block is treated as genesis: its index and
// previous hash are reset and it is sealed in place, discarding any caller
// supplied hash. Later blocks must already be sealed and link to the tail.
func (c *Chain) AddBlock(ctx context.Context, b *model.Block) error {
	if b == nil {
		return errors.New("block is required")
	}

	if len(c.blocks) == 0 {
		b.Index = 0
		b.PreviousHash = model.GenesisPreviousHash
		b.Hash = ""
		if err := c.miner.Seal(ctx, b, c.difficulty.Prefix()); err != nil {
			return err
		}
	} else if err := c.validate(b, len(c.blocks)); err != nil {
		c.logger.Warn("block rejected", zap.Uint64("index", b.Index), zap.Error(err))
		return err
	}

	for _, d := range b.Deliveries() {
		if err := c.contract.Decrypted(ctx, d); err != nil {
			return fmt.Errorf("contract rejected block %d: %w", b.Index, err)
		}
	}

	c.blocks = append(c.blocks, b.Clone())
	c.logger.Info("block appended",
		zap.Uint64("index", b.Index),
		zap.String("hash", b.Hash),
		zap.Uint64("nonce", b.Nonce),
		zap.Int("deliveries", len(b.Deliveries())),
	)
	return nil
}

// Verify re-checks linkage, difficulty and hash consistency of every block.
func (c *Chain) Verify() error {
	for i, b := range c.blocks {
		if err := c.validate(b, i); err != nil {
			return err
		}
	}
	return nil
}

// validate checks b as the block at position pos, given c.blocks[:pos].
func (c *Chain) validate(b *model.Block, pos int) error {
	want, err := safe.Uint64(pos)
	if err != nil {
		return err
	}
	if b.Index != want {
		return fmt.Errorf("%w: got index %d, want %d", ErrIndexViolation, b.Index, want)
	}

	prev := model.GenesisPreviousHash
	if pos > 0 {
		prev = c.blocks[pos-1].Hash
	}
	if b.PreviousHash != prev {
		return fmt.Errorf("%w: block %d previous hash %q, tail hash %q", ErrLinkageViolation, b.Index, b.PreviousHash, prev)
	}

	if !pow.Meets(b.Hash, c.difficulty.Prefix()) {
		return fmt.Errorf("%w: block %d hash %q, target %q", ErrDifficultyViolation, b.Index, b.Hash, c.difficulty)
	}

	hash, err := c.miner.Hash(b)
	if err != nil {
		return fmt.Errorf("hash block %d: %w", b.Index, err)
	}
	if hash != b.Hash {
		return fmt.Errorf("%w: block %d stored %q, computed %q", ErrHashMismatch, b.Index, b.Hash, hash)
	}
	return nil
}
