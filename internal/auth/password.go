// Package auth hashes and verifies account passwords. Passwords are stored
// as salted argon2id digests; the cleartext never reaches a record file.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters: 1 pass over 64 MiB with 4 lanes, 32-byte digest.
const (
	saltLen    = 16
	timeCost   = 1
	memoryCost = 64 * 1024
	threads    = 4
	keyLen     = 32
)

// HashPassword generates a fresh salt and returns the base64-encoded
// argon2id digest and salt for the given password.
func HashPassword(password string) (hash, salt string, err error) {
	rawSalt := make([]byte, saltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), rawSalt, timeCost, memoryCost, threads, keyLen)

	return base64.StdEncoding.EncodeToString(digest),
		base64.StdEncoding.EncodeToString(rawSalt),
		nil
}

// VerifyPassword reports whether password matches the stored digest and
// salt. Undecodable stored values verify as false.
func VerifyPassword(password, hash, salt string) bool {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	rawHash, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}

	digest := argon2.IDKey([]byte(password), rawSalt, timeCost, memoryCost, threads, keyLen)
	return subtle.ConstantTimeCompare(digest, rawHash) == 1
}
