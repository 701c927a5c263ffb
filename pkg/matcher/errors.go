package matcher

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every caller-visible configuration
// failure. A pattern that does not occur in the text is not a failure: it
// yields an empty result.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrEmptyPattern is returned by every matcher for a zero-length pattern.
	ErrEmptyPattern = fmt.Errorf("%w: empty pattern", ErrInvalidArgument)

	// ErrInvalidModulus is returned by Rabin-Karp for a modulus <= 0.
	ErrInvalidModulus = fmt.Errorf("%w: modulus must be positive", ErrInvalidArgument)

	// ErrInvalidBase is returned by Rabin-Karp for a negative base.
	ErrInvalidBase = fmt.Errorf("%w: base must not be negative", ErrInvalidArgument)

	// ErrUnknownAlgorithm is returned when an algorithm name cannot be resolved.
	ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", ErrInvalidArgument)
)
