package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/pkg/sp1-core"
	"github.com/rlyzurjf57/sp1/pkg/sp1-core/zkvm"
)

// ConfigInput is line 1. Missing fields keep their defaults.
type ConfigInput struct {
	ShardSize    *uint32 `json:"shard_size,omitempty"`
	MaxCycles    *uint64 `json:"max_cycles,omitempty"`
	OutputDigest *string `json:"output_digest,omitempty"`
	CommitShards *bool   `json:"commit_shards,omitempty"`
	CacheSize    *int    `json:"store_cache_size,omitempty"`
}

// MemoryInput is line 2: word values keyed by address, decimal or 0x hex.
type MemoryInput map[string]uint32

// WitnessInput is line 3: the witness stream as a hex string.
type WitnessInput string

// TrapInput is one entry of line 4. Code is a syscall name such as
// "WRITE" or a number.
type TrapInput struct {
	Code string `json:"code"`
	Arg1 uint32 `json:"arg1"`
	Arg2 uint32 `json:"arg2"`
}

var namesToCodes = func() map[string]uint32 {
	m := make(map[string]uint32, len(zkvm.Names))
	for code, name := range zkvm.Names {
		m[name] = code
	}
	return m
}()

func (c *ConfigInput) apply(config *sp1core.Config) {
	if c.ShardSize != nil {
		config.WithShardSize(*c.ShardSize)
	}
	if c.MaxCycles != nil {
		config.WithMaxCycles(*c.MaxCycles)
	}
	if c.OutputDigest != nil {
		config.WithOutputDigest(*c.OutputDigest)
	}
	if c.CommitShards != nil {
		config.WithCommitShards(*c.CommitShards)
	}
	if c.CacheSize != nil {
		config.WithStoreCacheSize(*c.CacheSize)
	}
}

// applyEnv lets SP1_SHARD_SIZE and SP1_MAX_CYCLES override the input.
func applyEnv(config *sp1core.Config, getenv func(string) string) error {
	if s := getenv("SP1_SHARD_SIZE"); s != "" {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return errors.Wrap(err, "SP1_SHARD_SIZE")
		}
		config.WithShardSize(uint32(v))
	}
	if s := getenv("SP1_MAX_CYCLES"); s != "" {
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return errors.Wrap(err, "SP1_MAX_CYCLES")
		}
		config.WithMaxCycles(v)
	}
	return nil
}

func buildConfig(line []byte) (*sp1core.Config, error) {
	var in ConfigInput
	if err := json.Unmarshal(line, &in); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	config := sp1core.DefaultConfig()
	in.apply(config)
	if err := applyEnv(config, os.Getenv); err != nil {
		return nil, err
	}
	return config, nil
}

func parseMemory(line []byte) (map[uint32]uint32, error) {
	var in MemoryInput
	if err := json.Unmarshal(line, &in); err != nil {
		return nil, errors.Wrap(err, "parse memory")
	}
	image := make(map[uint32]uint32, len(in))
	for key, value := range in {
		addr, err := strconv.ParseUint(key, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "memory address %q", key)
		}
		image[uint32(addr)] = value
	}
	return image, nil
}

func parseWitness(line []byte) ([]byte, error) {
	var in WitnessInput
	if err := json.Unmarshal(line, &in); err != nil {
		return nil, errors.Wrap(err, "parse witness")
	}
	b, err := hex.DecodeString(strings.TrimPrefix(string(in), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode witness")
	}
	return b, nil
}

func parseTraps(line []byte) ([]TrapInput, error) {
	var traps []TrapInput
	if err := json.Unmarshal(line, &traps); err != nil {
		return nil, errors.Wrap(err, "parse traps")
	}
	return traps, nil
}

// resolveCode turns a syscall name or number into its number. Numbers are
// passed through unchecked so the runtime gets to reject them.
func resolveCode(s string) (uint32, error) {
	if code, ok := namesToCodes[strings.ToUpper(s)]; ok {
		return code, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Errorf("unknown syscall %q", s)
	}
	return uint32(v), nil
}
