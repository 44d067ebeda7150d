package chain

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/contract"
	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Miner seals blocks and recomputes their hashes.
	Miner interface {
		Seal(ctx context.Context, b *model.Block, target string) error
		Hash(b *model.Block) (string, error)
	}
)

// Config holds chain settings fixed at construction.
type Config struct {
	Difficulty model.Difficulty
	// Contract runs for each delivery before its block is appended. Defaults to
	// contract.DeliveryContract.
	Contract contract.SmartContract
}

var (
	ErrEmptyChain          = errors.New("chain has no blocks")
	ErrIndexViolation      = errors.New("block index does not follow chain tail")
	ErrLinkageViolation    = errors.New("block previous hash does not match chain tail")
	ErrDifficultyViolation = errors.New("block hash does not meet difficulty target")
	ErrHashMismatch        = errors.New("block hash does not match its key")
)
