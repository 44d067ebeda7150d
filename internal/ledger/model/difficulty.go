package model

import (
	"fmt"
	"strings"
)

// Difficulty is the hash prefix every sealed block must start with.
type Difficulty string

var (
	// Extreme requires four leading zeros.
	Extreme Difficulty = "0000"
	// High requires three leading zeros.
	High Difficulty = "000"
	// Low requires two leading zeros.
	Low Difficulty = "00"
	// Fast requires a single leading zero.
	Fast Difficulty = "0"

	DefaultDifficulty = Low
)

// Prefix returns the required hash prefix.
func (d Difficulty) Prefix() string {
	return string(d)
}

// ParseDifficulty resolves a preset by name.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "extreme":
		return Extreme, nil
	case "high":
		return High, nil
	case "low":
		return Low, nil
	case "fast":
		return Fast, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", name)
	}
}
