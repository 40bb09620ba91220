// Package codec provides the two primitives the registries build on: a keyed
// one-way hash for credentials and fixed-length random identifiers for tokens
// and checks.
package codec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var ErrEmptyInput = errors.New("input must be a non-empty string")

// Hash returns the hex-encoded HMAC-SHA256 digest of input keyed by secret.
// Digest equality is the only verification primitive; plaintext is never
// stored or compared.
func Hash(secret, input string) (string, error) {
	if input == "" {
		return "", ErrEmptyInput
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(input))

	return hex.EncodeToString(mac.Sum(nil)), nil
}

// RandomID returns a random identifier of the given length over lowercase
// letters and digits, drawn from crypto/rand.
func RandomID(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("length must be positive")
	}

	max := big.NewInt(int64(len(idAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = idAlphabet[n.Int64()]
	}

	return string(out), nil
}
