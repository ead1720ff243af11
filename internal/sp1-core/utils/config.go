package utils

import (
	"fmt"
)

// Config holds the execution parameters of a runtime.
type Config struct {
	// Sharding
	ShardSize uint32 // Clock ticks per shard (power of 2)

	// Limits
	MaxCycles uint64 // Global cycle budget, 0 for none

	// Commitments
	OutputDigest string // "sha256" or "sha3"
	CommitShards bool   // Attach a memory table root to every finalized shard

	// Storage
	StoreCacheSize int // Shard records kept in the store's read cache
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() *Config {
	return &Config{
		ShardSize:      1 << 22,
		MaxCycles:      0,
		OutputDigest:   "sha256",
		CommitShards:   true,
		StoreCacheSize: 64,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !IsPowerOfTwo(int(c.ShardSize)) {
		return fmt.Errorf("shard size must be a power of 2, got %d", c.ShardSize)
	}

	if c.ShardSize < 16 {
		return fmt.Errorf("shard size (%d) must be at least 16", c.ShardSize)
	}

	if c.OutputDigest != "sha256" && c.OutputDigest != "sha3" {
		return fmt.Errorf("output digest must be 'sha256' or 'sha3', got '%s'", c.OutputDigest)
	}

	if c.StoreCacheSize < 0 {
		return fmt.Errorf("store cache size must not be negative")
	}

	return nil
}

// WithShardSize sets the shard size
func (c *Config) WithShardSize(size uint32) *Config {
	c.ShardSize = size
	return c
}

// WithMaxCycles sets the global cycle budget
func (c *Config) WithMaxCycles(cycles uint64) *Config {
	c.MaxCycles = cycles
	return c
}

// WithOutputDigest sets the output digest function
func (c *Config) WithOutputDigest(hashFunc string) *Config {
	c.OutputDigest = hashFunc
	return c
}

// WithCommitShards toggles shard commitments
func (c *Config) WithCommitShards(commit bool) *Config {
	c.CommitShards = commit
	return c
}

// WithStoreCacheSize sets the store cache size
func (c *Config) WithStoreCacheSize(size int) *Config {
	c.StoreCacheSize = size
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	return &Config{
		ShardSize:      c.ShardSize,
		MaxCycles:      c.MaxCycles,
		OutputDigest:   c.OutputDigest,
		CommitShards:   c.CommitShards,
		StoreCacheSize: c.StoreCacheSize,
	}
}
