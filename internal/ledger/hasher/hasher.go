// Package hasher provides the hash functions used to seal blocks.
package hasher

import (
	"crypto/sha1" //nolint:gosec // sha1 is the ledger's reference block hash
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Func maps a canonical block key to a lowercase hex digest.
type Func func(data []byte) string

const (
	NameSHA1         = "sha1"
	NameDoubleSHA256 = "sha256d"
)

// SHA1 returns the lowercase hex SHA-1 digest, the same output as shasum.
func SHA1(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// DoubleSHA256 returns the lowercase hex of sha256(sha256(data)) in natural byte
// order, unlike chainhash.Hash.String which reverses it.
func DoubleSHA256(data []byte) string {
	return hex.EncodeToString(chainhash.DoubleHashB(data))
}

// ByName resolves a configured hash function. An empty name selects SHA1.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSHA1:
		return SHA1, nil
	case NameDoubleSHA256:
		return DoubleSHA256, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
}
