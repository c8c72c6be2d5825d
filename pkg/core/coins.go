package core

import "math/big"

var oneTon = big.NewInt(1_000_000_000)

// Nano converts a whole number of tons to nanotons.
func Nano(tons int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(tons), oneTon)
}

// MilliNano converts a fractional amount expressed in thousandths of a ton.
func MilliNano(millitons int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(millitons), big.NewInt(1_000_000))
}

// Units wraps a raw number of indivisible token units.
func Units(v int64) *big.Int {
	return big.NewInt(v)
}

// CopyAmount returns an independent copy of v, treating nil as zero.
func CopyAmount(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
