package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"bip32ed25519/hdkey"
	"bip32ed25519/internal/util/memzero"
)

const (
	fileSuffix    = ".key.json"
	maxNameLength = 128
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// stored file has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")

	// ErrCorruptKeyFile is returned when a key file does not decode or
	// carries KDF parameters outside the accepted bounds.
	ErrCorruptKeyFile = errors.New("corrupt key file")

	// ErrNotFound is returned for names with no stored key.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidName is returned for names that are empty, too long or would
	// escape the store directory.
	ErrInvalidName = errors.New("invalid key name")
)

// Entry describes a stored key without decrypting it.
type Entry struct {
	Name        string
	PublicKey   hdkey.PublicKey
	Fingerprint string
	Private     bool
	KDF         string
}

// FileStore stores extended keys as one encrypted file per name.
type FileStore struct {
	cfg Config
	mu  sync.Mutex
}

// New validates cfg and creates the store directory if needed.
func New(cfg Config) (*FileStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("keystore config: %w", err)
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{cfg: cfg}, nil
}

func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, maxNameLength)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.cfg.Dir, name+fileSuffix)
}

// Save seals key under passphrase, replacing any key stored as name. Depth
// and child index are not persisted.
func (s *FileStore) Save(name, passphrase string, key *hdkey.ExtendedKey) error {
	if err := validName(name); err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("%w: nil key", hdkey.ErrInvalidKey)
	}

	pub := key.PublicKey()
	b := blob{
		Public:      pub[:],
		Fingerprint: key.Fingerprint(),
		Private:     key.IsPrivate(),
	}

	raw := key.Bytes()
	defer memzero.Zero(raw)
	if err := seal(s.cfg, passphrase, raw, &b); err != nil {
		return fmt.Errorf("seal key %q: %w", name, err)
	}

	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(s.path(name), out, 0o600); err != nil {
		return err
	}
	log.Debugf("Stored key %s (%s, private=%v)", name, b.Fingerprint, b.Private)
	return nil
}

// Load decrypts the key stored as name.
func (s *FileStore) Load(name, passphrase string) (*hdkey.ExtendedKey, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	b, err := s.read(name)
	if err != nil {
		return nil, err
	}

	raw, err := open(passphrase, b)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	key, err := hdkey.ParseExtendedKey(raw)
	if err != nil {
		return nil, fmt.Errorf("key %q: %w", name, err)
	}
	if pub := key.PublicKey(); string(pub[:]) != string(b.Public) {
		key.Wipe()
		return nil, fmt.Errorf("key %q: %w", name, ErrWrongPassphrase)
	}

	log.Tracef("Loaded key %s (%s)", name, b.Fingerprint)
	return key, nil
}

func (s *FileStore) read(name string) (*blob, error) {
	s.mu.Lock()
	raw, err := os.ReadFile(s.path(name))
	s.mu.Unlock()

	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return decodeBlob(raw)
}

// List returns the stored keys sorted by name. Unreadable files are skipped.
func (s *FileStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirents, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), fileSuffix) {
			continue
		}
		name := strings.TrimSuffix(d.Name(), fileSuffix)

		raw, err := os.ReadFile(filepath.Join(s.cfg.Dir, d.Name()))
		if err != nil {
			log.Warnf("Skipping key file %s: %v", d.Name(), err)
			continue
		}
		b, err := decodeBlob(raw)
		if err != nil || len(b.Public) != len(hdkey.PublicKey{}) {
			log.Warnf("Skipping malformed key file %s", d.Name())
			continue
		}

		e := Entry{
			Name:        name,
			Fingerprint: b.Fingerprint,
			Private:     b.Private,
			KDF:         b.KDF,
		}
		copy(e.PublicKey[:], b.Public)
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the key stored as name.
func (s *FileStore) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err == nil {
		log.Debugf("Deleted key %s", name)
	}
	return err
}
