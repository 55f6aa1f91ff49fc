package compose

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// SeedMode determines how the seed for part selection is generated.
type SeedMode string

const (
	// SeedRandom uses a non-deterministic seed (varies each run).
	SeedRandom SeedMode = "random"
	// SeedManual uses a user-provided seed value.
	SeedManual SeedMode = "manual"
	// SeedName derives the seed from a character name, so the same name
	// always produces the same character.
	SeedName SeedMode = "name"
)

// SeedConfig holds configuration for seed generation.
type SeedConfig struct {
	Mode  SeedMode
	Value *int64 // only used with SeedManual
	Name  string // only used with SeedName
}

// CalculateSeed determines the seed value based on the seed mode.
func CalculateSeed(cfg SeedConfig) (int64, error) {
	switch cfg.Mode {
	case SeedRandom, "":
		return GenerateRandomSeed(), nil
	case SeedManual:
		if cfg.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *cfg.Value, nil
	case SeedName:
		if cfg.Name == "" {
			return 0, fmt.Errorf("a name is required for name seed mode")
		}
		return NameSeed(cfg.Name), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", cfg.Mode)
	}
}

// NameSeed hashes name into a seed.
func NameSeed(name string) int64 {
	hash := sha256.Sum256([]byte(name))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// GenerateRandomSeed generates a non-deterministic random seed.
func GenerateRandomSeed() int64 {
	// #nosec G404 -- part selection is not security sensitive
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- part selection is not security sensitive
}

// ValidSeedModes returns a list of valid seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedRandom, SeedManual, SeedName}
}

// ParseSeedMode converts a string to a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	mode := SeedMode(s)
	if slices.Contains(ValidSeedModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, manual, name)", s)
}
