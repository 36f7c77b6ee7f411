// Package invitecode generates event invite codes of the form
// HACK-XXXXXX, where X is an uppercase base-36 character.
package invitecode

import (
	"crypto/rand"
	"fmt"
)

const (
	Prefix = "HACK-"

	suffixLength = 6
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generate returns a fresh code. The suffix is short, so codes are not
// guaranteed unique; the store's unique constraint catches collisions.
func Generate() (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return Prefix + string(buf), nil
}
