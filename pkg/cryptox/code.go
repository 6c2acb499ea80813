package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// InviteCodeAlphabet is the character set invite codes are drawn from.
// Uppercase letters and digits, with the visually confusable 0/O/1/I removed
// so codes survive being read aloud or copied by hand.
const InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the number of characters in a generated invite code.
const InviteCodeLength = 8

// GenerateInviteCode produces an invite code with each character drawn
// independently and uniformly at random from InviteCodeAlphabet.
// Generation does not check for collisions; uniqueness is enforced by the
// store's unique constraint and callers regenerate on conflict.
func GenerateInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(InviteCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = InviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
