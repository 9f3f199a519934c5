package types

import "fmt"

// Coin is an amount of money in the smallest ledger unit.
// All fee and value arithmetic is exact and checked: operations that would
// wrap return an error instead of silently overflowing or saturating.
type Coin uint64

// MaxCoin is the largest representable amount.
const MaxCoin = Coin(^uint64(0))

// Add returns c + other, or an error if the sum overflows.
func (c Coin) Add(other Coin) (Coin, error) {
	if c > MaxCoin-other {
		return 0, fmt.Errorf("coin overflow: %d + %d", c, other)
	}
	return c + other, nil
}

// Sub returns c - other, or an error if other exceeds c.
func (c Coin) Sub(other Coin) (Coin, error) {
	if other > c {
		return 0, fmt.Errorf("coin underflow: %d - %d", c, other)
	}
	return c - other, nil
}

// Mul returns c * other, or an error if the product overflows.
func (c Coin) Mul(other Coin) (Coin, error) {
	if c == 0 || other == 0 {
		return 0, nil
	}
	if c > MaxCoin/other {
		return 0, fmt.Errorf("coin overflow: %d * %d", c, other)
	}
	return c * other, nil
}

// String returns the amount in decimal.
func (c Coin) String() string {
	return fmt.Sprintf("%d", uint64(c))
}
