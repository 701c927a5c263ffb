package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PatternID is a 64-bit xxhash fingerprint of a pattern, rendered as 16 hex
// characters. It is an index key for run history, not a security boundary.
type PatternID string

// ComputePatternID fingerprints pattern.
func ComputePatternID(pattern []byte) PatternID {
	return PatternID(fmt.Sprintf("%016x", xxhash.Sum64(pattern)))
}
