package producer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Chain interface {
		NextBlock(ctx context.Context, deliveries []model.DeliveryRecord) (*model.Block, error)
		AddBlock(ctx context.Context, b *model.Block) error
		Blocks() []*model.Block
		Len() int
	}
	Metrics interface {
		ObserveBlock(err error, deliveries int, started time.Time)
		SetChainLength(n int)
	}
)

const (
	defaultBlockSize       = 100
	defaultFlushInterval   = 10 * time.Second
	defaultBlocksPerSecond = 10
	defaultErrorBuffer     = 16
)
