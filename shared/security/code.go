package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/matthewhartstonge/argon2"
)

const codeDigits = 6

// GenerateCode returns a random 6-digit verification code, zero padded.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// HashCode hashes a verification code for storage. Codes are 6-digit values
// with very little entropy, so a slow memory-hard hash is used instead of a
// plain digest.
func HashCode(code string) (string, error) {
	cfg := argon2.DefaultConfig()

	encoded, err := cfg.HashEncoded([]byte(code))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyCode checks a submitted code against its stored argon2 encoding.
func VerifyCode(code, encoded string) (bool, error) {
	return argon2.VerifyEncoded([]byte(code), []byte(encoded))
}
