package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Prefixes for generated identifiers.
const (
	ListingIDPrefix     = "ML"
	TransactionIDPrefix = "TXN"
)

// NewID returns prefix followed by a random uppercase hex identifier,
// e.g. ML-9F1C2A4B3D5E4F60A7B8C9D0E1F20314.
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
