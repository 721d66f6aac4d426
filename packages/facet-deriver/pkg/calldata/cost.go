package calldata

import (
	"math/big"
)

// Gas charged per calldata byte, following the standard L1 calldata accounting rule.
const (
	ZeroByteGas    = 4
	NonZeroByteGas = 16
)

// Counts returns the number of zero and non-zero bytes in the given data.
func Counts(data []byte) (zeroes uint64, nonZeroes uint64) {
	for _, b := range data {
		if b == 0 {
			zeroes++
		} else {
			nonZeroes++
		}
	}
	return zeroes, nonZeroes
}

// Cost calculates the calldata gas cost of the given bytes.
func Cost(data []byte) *big.Int {
	zeroes, nonZeroes := Counts(data)

	cost := new(big.Int).Mul(new(big.Int).SetUint64(zeroes), big.NewInt(ZeroByteGas))
	return cost.Add(cost, new(big.Int).Mul(new(big.Int).SetUint64(nonZeroes), big.NewInt(NonZeroByteGas)))
}
