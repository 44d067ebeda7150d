// Package contract defines hooks that run against deliveries as blocks are appended.
package contract

import (
	"context"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
)

// SmartContract processes a delivery payload before its block joins the chain.
type SmartContract interface {
	Decrypted(ctx context.Context, d model.DeliveryRecord) error
}

// DeliveryContract is the default contract. Delivery payloads are stored in the
// clear, so it accepts every record unchanged.
type DeliveryContract struct{}

func (DeliveryContract) Decrypted(context.Context, model.DeliveryRecord) error {
	return nil
}
