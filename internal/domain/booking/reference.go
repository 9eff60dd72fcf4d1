package booking

import (
	"crypto/rand"
	"fmt"
)

// Crockford-style alphabet without ambiguous characters, safe to read out
// over the phone.
const referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const referenceLength = 10

// NewReference generates a human-presentable booking reference. Collision
// resistance comes from 50 bits of entropy plus the unique constraint at the
// store; callers retry on a duplicate.
func NewReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return "BK-" + string(buf), nil
}
