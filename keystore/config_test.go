package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keystore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("KEYSTORE_TEST_DIR", "/tmp/keys")

	cfg, err := LoadConfig(writeConfig(t, "dir: ${KEYSTORE_TEST_DIR}\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig("/tmp/keys"), cfg)
}

func TestLoadConfigArgon2(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "dir: /k\r\n"+
		"kdf: argon2id\r\n"+
		"argon2:\r\n"+
		"  time: 2\r\n"+
		"  memory_kib: 1024\r\n"+
		"  threads: 2\r\n"))
	require.NoError(t, err)
	require.Equal(t, KDFArgon2id, cfg.KDF)
	require.Equal(t, Argon2Config{Time: 2, MemoryKiB: 1024, Threads: 2}, cfg.Argon2)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no dir", func(c *Config) { c.Dir = "" }},
		{"unknown kdf", func(c *Config) { c.KDF = "md5" }},
		{"scrypt n not power of two", func(c *Config) { c.Scrypt.N = 3 }},
		{"scrypt n one", func(c *Config) { c.Scrypt.N = 1 }},
		{"scrypt r zero", func(c *Config) { c.Scrypt.R = 0 }},
		{"argon2 no threads", func(c *Config) {
			c.KDF = KDFArgon2id
			c.Argon2.Threads = 0
		}},
		{"argon2 tiny memory", func(c *Config) {
			c.KDF = KDFArgon2id
			c.Argon2.MemoryKiB = 8
		}},
		{"scrypt n too large", func(c *Config) { c.Scrypt.N = 1 << 21 }},
		{"scrypt r too large", func(c *Config) { c.Scrypt.R = 33 }},
		{"scrypt p too large", func(c *Config) { c.Scrypt.P = 17 }},
		{"argon2 too many threads", func(c *Config) {
			c.KDF = KDFArgon2id
			c.Argon2.Threads = 65
		}},
		{"argon2 too much memory", func(c *Config) {
			c.KDF = KDFArgon2id
			c.Argon2.MemoryKiB = 1<<20 + 1
		}},
		{"argon2 too many passes", func(c *Config) {
			c.KDF = KDFArgon2id
			c.Argon2.Time = 65
		}},
	}

	require.NoError(t, DefaultConfig("/k").Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig("/k")
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "dir: [\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "kdf: scrypt\n"))
	require.Error(t, err)
}
