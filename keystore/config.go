package keystore

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported key stretching functions.
const (
	KDFScrypt   = "scrypt"
	KDFArgon2id = "argon2id"
)

// Upper bounds on KDF parameters. Key files carry their own parameters, so
// these cap the memory and time a Load can be made to spend.
const (
	maxScryptN       = 1 << 20
	maxScryptR       = 32
	maxScryptP       = 16
	maxArgon2Time    = 64
	maxArgon2Memory  = 1 << 20 // KiB, 1 GiB
	maxArgon2Threads = 64
)

// Config controls where keys are stored and how passphrases are stretched.
type Config struct {
	Dir    string       `yaml:"dir"`
	KDF    string       `yaml:"kdf"`
	Scrypt ScryptConfig `yaml:"scrypt"`
	Argon2 Argon2Config `yaml:"argon2"`
}

type ScryptConfig struct {
	N int `yaml:"n"`
	R int `yaml:"r"`
	P int `yaml:"p"`
}

type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
}

// DefaultConfig returns a scrypt configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir: dir,
		KDF: KDFScrypt,
		Scrypt: ScryptConfig{
			N: 1 << 15,
			R: 8,
			P: 1,
		},
		Argon2: Argon2Config{
			Time:      3,
			MemoryKiB: 64 * 1024,
			Threads:   4,
		},
	}
}

// LoadConfig reads a YAML config file. Environment variables in the file are
// expanded and unset fields keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	// #nosec G304 -- path is operator-provided config path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	expanded := os.ExpandEnv(string(raw))
	expanded = strings.ReplaceAll(expanded, "\r\n", "\n")

	cfg := DefaultConfig("")
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}
	return validateKDF(c.KDF, c.Scrypt, c.Argon2)
}

func validateKDF(kdf string, s ScryptConfig, a Argon2Config) error {
	switch kdf {
	case KDFScrypt:
		if s.N <= 1 || s.N > maxScryptN || s.N&(s.N-1) != 0 {
			return fmt.Errorf("scrypt.n must be a power of two in (1, %d], got %d",
				maxScryptN, s.N)
		}
		if s.R <= 0 || s.R > maxScryptR {
			return fmt.Errorf("scrypt.r must be in [1, %d], got %d", maxScryptR, s.R)
		}
		if s.P <= 0 || s.P > maxScryptP {
			return fmt.Errorf("scrypt.p must be in [1, %d], got %d", maxScryptP, s.P)
		}

	case KDFArgon2id:
		if a.Time == 0 || a.Time > maxArgon2Time {
			return fmt.Errorf("argon2.time must be in [1, %d], got %d",
				maxArgon2Time, a.Time)
		}
		if a.Threads == 0 || a.Threads > maxArgon2Threads {
			return fmt.Errorf("argon2.threads must be in [1, %d], got %d",
				maxArgon2Threads, a.Threads)
		}
		if a.MemoryKiB < 8*uint32(a.Threads) || a.MemoryKiB > maxArgon2Memory {
			return fmt.Errorf("argon2.memory_kib must be in [%d, %d], got %d",
				8*uint32(a.Threads), maxArgon2Memory, a.MemoryKiB)
		}

	default:
		return fmt.Errorf("unknown kdf %q", kdf)
	}

	return nil
}
