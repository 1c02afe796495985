// Package basen implements generic base-N encoding, used to turn random
// binary identifiers (UUIDs) into compact strings safe for track ids and
// labels.
package basen

import (
	"math/big"

	"github.com/juju/errors"
)

const (
	// AlphabetBase62 is used to shorten UUIDs for track identity synthesis.
	AlphabetBase62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Codec encodes and decodes binary data over a fixed alphabet. Decode
// inverts Encode for the same alphabet up to leading zero bytes, which
// Encode does not represent and Decode does not restore. This module
// constructs exactly one Codec per alphabet rather than a separate
// encoder and decoder that would need to be kept in sync by hand.
type Codec struct {
	alphabet    string
	runeToValue map[rune]int
}

// NewCodec builds a Codec over the given alphabet.
func NewCodec(alphabet string) *Codec {
	runeToValue := make(map[rune]int, len(alphabet))

	for i, r := range alphabet {
		runeToValue[r] = i
	}

	return &Codec{alphabet: alphabet, runeToValue: runeToValue}
}

// Encode renders data as a base-N string over c's alphabet.
func (c *Codec) Encode(data []byte) string {
	var value, zero, base big.Int

	value.SetBytes(data)

	baseN := int64(len(c.alphabet))

	var digits []byte

	for value.Cmp(&zero) != 0 {
		base.SetInt64(baseN)
		_, remainder := value.DivMod(&value, &base, &base)
		digits = append(digits, c.alphabet[remainder.Int64()])
	}

	return string(digits)
}

// Decode recovers the bytes that Encode produced for data, for c's
// alphabet, without any leading zero bytes the original data had.
func (c *Codec) Decode(data string) ([]byte, error) {
	var n, factor, weighted, value, zero big.Int

	n.SetInt64(int64(len(c.alphabet)))

	for i, r := range data {
		digit, ok := c.runeToValue[r]
		if !ok {
			return nil, errors.Errorf("basen: character %q not found in alphabet %q", r, c.alphabet)
		}

		weighted.SetInt64(int64(digit))
		factor.SetInt64(int64(i)).Exp(&n, &factor, &zero)
		weighted.Mul(&weighted, &factor)
		value.Add(&value, &weighted)
	}

	return value.Bytes(), nil
}
