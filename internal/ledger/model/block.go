package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// GenesisPreviousHash is the previous hash assigned to the first block of a chain.
const GenesisPreviousHash = "00000000000"

// ErrSerialization is returned when a block cannot be encoded into its canonical key.
var ErrSerialization = errors.New("block serialization failed")

// Block groups deliveries and links to its predecessor by hash.
// A block with an empty Hash has not been sealed yet.
type Block struct {
	Index        uint64
	PreviousHash string
	Hash         string
	Nonce        uint64

	deliveries []DeliveryRecord
}

// NewBlock returns an empty unsealed block.
func NewBlock() *Block {
	return &Block{deliveries: make([]DeliveryRecord, 0)}
}

// AddDelivery appends a delivery. Callers must not add deliveries to sealed blocks.
func (b *Block) AddDelivery(d DeliveryRecord) {
	b.deliveries = append(b.deliveries, d)
}

// Deliveries returns a copy of the block deliveries in insertion order.
func (b *Block) Deliveries() []DeliveryRecord {
	out := make([]DeliveryRecord, len(b.deliveries))
	copy(out, b.deliveries)
	return out
}

// Sealed reports whether the block hash has been set.
func (b *Block) Sealed() bool {
	return b.Hash != ""
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	c := *b
	c.deliveries = b.Deliveries()
	return &c
}

// Key returns the canonical hashing input: index, previous hash, nonce and the
// JSON encoded delivery list, concatenated in that order.
func (b *Block) Key() ([]byte, error) {
	keyAt, err := b.KeyFunc()
	if err != nil {
		return nil, err
	}
	return keyAt(b.Nonce), nil
}

// KeyFunc encodes the deliveries once and returns a builder of the canonical key
// for an arbitrary nonce. The builder is safe for concurrent use and does not
// observe later changes to the block.
func (b *Block) KeyFunc() (func(nonce uint64) []byte, error) {
	deliveries := b.deliveries
	if deliveries == nil {
		deliveries = []DeliveryRecord{}
	}
	encoded, err := json.Marshal(deliveries)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d deliveries: %v", ErrSerialization, b.Index, err)
	}

	head := strconv.AppendUint(nil, b.Index, 10)
	head = append(head, b.PreviousHash...)

	return func(nonce uint64) []byte {
		key := make([]byte, 0, len(head)+20+len(encoded))
		key = append(key, head...)
		key = strconv.AppendUint(key, nonce, 10)
		return append(key, encoded...)
	}, nil
}
