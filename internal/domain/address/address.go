// Package address turns user-supplied participant addresses into the canonical
// text form stored in win and claim records.
package address

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// fieldPrime is the Starknet field modulus 2^251 + 17*2^192 + 1.
var fieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

// Felt is a field element in big-endian byte order.
type Felt [32]byte

// Parse reads a 0x-prefixed hex string or a decimal string.
func Parse(s string) (Felt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Felt{}, ErrEmptyAddress
	}

	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}
	// big.Int accepts a leading sign; addresses never carry one.
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if n.Cmp(fieldPrime) >= 0 {
		return Felt{}, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}

	var f Felt
	n.FillBytes(f[:])
	return f, nil
}

// Hex returns 0x followed by 64 lowercase hex digits.
func (f Felt) Hex() string {
	return "0x" + hex.EncodeToString(f[:])
}

func (f Felt) String() string { return f.Hex() }

// Normalize parses s and returns its canonical form.
func Normalize(s string) (string, error) {
	f, err := Parse(s)
	if err != nil {
		return "", err
	}
	return f.Hex(), nil
}
