package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	orderNumberPrefix   = "ORD"
	orderSuffixLength   = 9
	orderSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// OrderNumberFunc mints an order number for a checkout completed at the given instant.
type OrderNumberFunc func(now time.Time) (string, error)

// NewOrderNumber returns ORD-<unix millis>-<9 random base36 characters>.
func NewOrderNumber(now time.Time) (string, error) {

	suffix, err := secureString(orderSuffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, now.UnixMilli(), suffix), nil
}

func secureString(length int) (string, error) {

	base := big.NewInt(int64(len(orderSuffixAlphabet)))
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		b[i] = orderSuffixAlphabet[n.Int64()]
	}

	return string(b), nil
}
