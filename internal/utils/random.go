package utils

import (
	"crypto/rand"
	"math/big"
)

func GenerateRandomString(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

// GenerateCouponSuffix draws length characters from the 36-symbol coupon
// alphabet. Uniqueness against persisted codes is the caller's job.
func GenerateCouponSuffix(length int) string {
	return GenerateRandomString(length, CouponCodeAlphabet)
}

// SecureRandomFloat returns a uniform value in [0, 1) from crypto/rand, so a
// client cannot predict or replay lottery draws.
func SecureRandomFloat() float64 {
	max := big.NewInt(1 << 53)
	n, _ := rand.Int(rand.Reader, max)
	return float64(n.Int64()) / float64(1<<53)
}
