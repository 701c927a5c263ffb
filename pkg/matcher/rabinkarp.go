package matcher

import (
	"math/bits"

	"github.com/praetorian-inc/needle/pkg/types"
)

// DefaultBase is the positional weight base used when RabinKarp.Base is 0.
const DefaultBase = 10

// DefaultModulus is a large prime that keeps Rabin-Karp collisions rare.
// Callers that build RabinKarp directly must still set Modulus.
const DefaultModulus = 1_000_000_007

// RabinKarp hashes the pattern and every text window modulo Modulus and
// verifies each hash hit symbol by symbol, so collisions never surface as
// false positives.
//
// The hash of a window w is sum(w[k] * Base^k) mod Modulus, reduced as it
// accumulates. All arithmetic uses 128-bit intermediates, so any modulus that
// fits in an int is safe from overflow.
//
// When Base is invertible modulo Modulus the window hash is updated in O(1)
// per slide; otherwise each window is hashed from scratch. Both paths yield
// identical hashes and results.
type RabinKarp struct {
	Modulus int // hash space size q; must be positive
	Base    int // positional weight base; 0 selects DefaultBase
}

// FindRabinKarp searches with the default base and modulus q.
func FindRabinKarp(text, pattern []byte, q int) (*types.MatchResult, error) {
	return RabinKarp{Modulus: q}.Find(text, pattern)
}

// Name implements Matcher.
func (RabinKarp) Name() string { return string(AlgorithmRabinKarp) }

func (r RabinKarp) validate() error {
	if r.Modulus <= 0 {
		return ErrInvalidModulus
	}
	if r.Base < 0 {
		return ErrInvalidBase
	}
	return nil
}

func (r RabinKarp) base() uint64 {
	if r.Base == 0 {
		return DefaultBase
	}
	return uint64(r.Base)
}

// Find implements Matcher.
func (r RabinKarp) Find(text, pattern []byte) (*types.MatchResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}

	result := types.NewMatchResult(r.Name())
	m, n := len(pattern), len(text)
	if m > n {
		return result, nil
	}

	q := uint64(r.Modulus)
	base := r.base() % q
	target := HashWindow(pattern, r.base(), q)

	inv, rolling := modInverse(base, q)
	// weight of the last symbol in a window: base^(m-1)
	top := powMod(base, uint64(m-1), q)

	h := HashWindow(text[:m], r.base(), q)
	for s := 0; ; s++ {
		if h == target && windowEqual(text, s, pattern) {
			result.Add(s)
		}
		if s == n-m {
			break
		}

		if rolling {
			// drop text[s] (weight 1), shift weights down, add text[s+m] on top
			h = subMod(h, uint64(text[s])%q, q)
			h = mulMod(h, inv, q)
			h = addMod(h, mulMod(uint64(text[s+m])%q, top, q), q)
		} else {
			h = HashWindow(text[s+1:s+1+m], r.base(), q)
		}
	}
	return result, nil
}

// HashWindow returns sum(window[k] * base^k) mod modulus. modulus must be
// positive.
func HashWindow(window []byte, base, modulus uint64) uint64 {
	b := base % modulus
	var h uint64
	weight := 1 % modulus
	for _, c := range window {
		h = addMod(h, mulMod(uint64(c)%modulus, weight, modulus), modulus)
		weight = mulMod(weight, b, modulus)
	}
	return h
}

// mulMod returns a*b mod m for a, b < m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// addMod returns a+b mod m for a, b < m.
func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		sum -= m
	}
	return sum
}

// subMod returns a-b mod m for a, b < m.
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// powMod returns b^e mod m by square-and-multiply.
func powMod(b, e, m uint64) uint64 {
	result := 1 % m
	b %= m
	for e > 0 {
		if e&1 == 1 {
			result = mulMod(result, b, m)
		}
		b = mulMod(b, b, m)
		e >>= 1
	}
	return result
}

// modInverse returns x with a*x = 1 (mod m), and false when gcd(a, m) != 1.
// m must fit in an int64.
func modInverse(a, m uint64) (uint64, bool) {
	if m == 1 {
		return 0, true
	}

	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a%m)
	for newR != 0 {
		quot := r / newR
		t, newT = newT, t-quot*newT
		r, newR = newR, r-quot*newR
	}
	if r != 1 {
		return 0, false
	}
	if t < 0 {
		t += int64(m)
	}
	return uint64(t), true
}
