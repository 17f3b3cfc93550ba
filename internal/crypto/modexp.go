package crypto

import "math/big"

var one = big.NewInt(1)

// ModExp returns base^exponent mod modulus by right-to-left binary
// exponentiation. The result is always in [0, modulus).
//
// It panics if modulus < 1 or exponent < 0. KeyHalf construction rules out
// both, so a panic here is a programming error.
//
// Running time depends on the exponent's bits.
func ModExp(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() < 1 {
		panic("crypto: ModExp modulus must be positive")
	}
	if exponent.Sign() < 0 {
		panic("crypto: ModExp exponent must be non-negative")
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int)
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result
}
