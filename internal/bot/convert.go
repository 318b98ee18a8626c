package bot

import (
	"fmt"
	"math/big"
)

// rawPerNano is the fixed scale between the ledger's smallest unit and the
// displayed unit: 1 NANO = 10^24 raw.
var rawPerNano = new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)

// RawToDisplay converts a raw amount string to whole display units,
// truncating any sub-unit remainder. Amounts are arbitrary precision and
// never pass through a float.
func RawToDisplay(raw string) (string, error) {
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() < 0 {
		return "", fmt.Errorf("amount %q is not a non-negative integer", raw)
	}
	return new(big.Int).Quo(value, rawPerNano).String(), nil
}

// DisplayToRaw converts whole display units to a raw amount string.
func DisplayToRaw(display string) (string, error) {
	value, ok := new(big.Int).SetString(display, 10)
	if !ok || value.Sign() < 0 {
		return "", fmt.Errorf("amount %q is not a non-negative integer", display)
	}
	return new(big.Int).Mul(value, rawPerNano).String(), nil
}
