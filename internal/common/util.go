package common

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
)

// inviteAlphabet deliberately omits ambiguous characters (0/O, 1/I/L)
// so codes survive being read over the phone or retyped from paper.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length will be
// twice the size.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system randomness source fails, which is not a
// recoverable condition for the callers (salt generation).
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// MakeInviteCode generates an invite code of length chars from the
// unambiguous alphabet, prepending the optional prefix. The prefix is
// uppercased but otherwise used as given.
func MakeInviteCode(length int, prefix string) (string, error) {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(prefix))
	max := big.NewInt(int64(len(inviteAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeInviteCode prepares raw user input for lookup: it strips a
// "#token=" URL-fragment prefix if present, removes whitespace and
// uppercases the rest.
func NormalizeInviteCode(raw string) string {
	if i := strings.Index(raw, "#token="); i >= 0 {
		raw = raw[i+len("#token="):]
	}
	raw = strings.Join(strings.Fields(raw), "")
	return strings.ToUpper(raw)
}
