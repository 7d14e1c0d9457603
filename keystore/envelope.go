package keystore

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"bip32ed25519/internal/util/memzero"
)

// The current supported version of the encrypted blob format stored on disk.
const blobVersion = 1

// blob is the on-disk JSON structure of a stored key.
type blob struct {
	V           int           `json:"v"`
	KDF         string        `json:"kdf"`
	Salt        []byte        `json:"salt"`
	Scrypt      *ScryptConfig `json:"scrypt,omitempty"`
	Argon2      *Argon2Config `json:"argon2,omitempty"`
	Public      []byte        `json:"public"`
	Fingerprint string        `json:"fingerprint"`
	Private     bool          `json:"private"`
	Cipher      []byte        `json:"cipher"`
}

// aad binds the cleartext header fields to the ciphertext.
func (b *blob) aad() []byte {
	out := make([]byte, 0, len(b.Salt)+len(b.Public)+1)
	out = append(out, b.Salt...)
	out = append(out, b.Public...)
	if b.Private {
		return append(out, 1)
	}
	return append(out, 0)
}

// stretch derives the AEAD key. Parameters come from the key file and are
// bounds checked before any work is done.
func (b *blob) stretch(passphrase string) ([]byte, error) {
	var (
		s ScryptConfig
		a Argon2Config
	)
	if b.Scrypt != nil {
		s = *b.Scrypt
	}
	if b.Argon2 != nil {
		a = *b.Argon2
	}
	if err := validateKDF(b.KDF, s, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}

	switch b.KDF {
	case KDFScrypt:
		return scrypt.Key([]byte(passphrase), b.Salt, s.N, s.R, s.P,
			chacha20poly1305.KeySize)

	case KDFArgon2id:
		return argon2.IDKey([]byte(passphrase), b.Salt, a.Time, a.MemoryKiB,
			a.Threads, chacha20poly1305.KeySize), nil

	default:
		return nil, fmt.Errorf("unknown kdf %q", b.KDF)
	}
}

// seal stretches passphrase per cfg and encrypts raw into b.
func seal(cfg Config, passphrase string, raw []byte, b *blob) error {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return err
	}

	b.V = blobVersion
	b.KDF = cfg.KDF
	b.Salt = salt[:]
	switch cfg.KDF {
	case KDFScrypt:
		p := cfg.Scrypt
		b.Scrypt = &p
	case KDFArgon2id:
		p := cfg.Argon2
		b.Argon2 = &p
	}

	key, err := b.stretch(passphrase)
	if err != nil {
		return err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return err
	}
	// Zero nonce; every seal draws a fresh salt and so a fresh key.
	var nonce [chacha20poly1305.NonceSize]byte
	b.Cipher = aead.Seal(nil, nonce[:], raw, b.aad())
	return nil
}

// open decrypts the key material held in b.
func open(passphrase string, b *blob) ([]byte, error) {
	if b.V > blobVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", b.V)
	}

	key, err := b.stretch(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], b.Cipher, b.aad())
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func decodeBlob(raw []byte) (*blob, error) {
	var b blob
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	return &b, nil
}
