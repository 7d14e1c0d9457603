package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// HMACSHA512 returns HMAC-SHA512(key, parts[0] || parts[1] || ...).
func HMACSHA512(key []byte, parts ...[]byte) [sha512.Size]byte {
	h := hmac.New(sha512.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	var out [sha512.Size]byte
	h.Sum(out[:0])
	return out
}

// HMACSHA256 returns HMAC-SHA256(key, parts[0] || parts[1] || ...).
func HMACSHA256(key []byte, parts ...[]byte) [sha256.Size]byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// PBKDF2SHA512 stretches password with salt into keyLen bytes.
func PBKDF2SHA512(password, salt []byte, iter, keyLen int) []byte {
	return pbkdf2.Key(password, salt, iter, keyLen, sha512.New)
}
