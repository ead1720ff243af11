package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	hclog "github.com/hashicorp/go-hclog"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/log"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/store"
	"github.com/rlyzurjf57/sp1/pkg/sp1-core"
)

// TrapOutput reports one serviced trap.
type TrapOutput struct {
	Code   string `json:"code"`
	Return uint32 `json:"return"`
	PC     uint32 `json:"pc"`
	Shard  uint32 `json:"shard"`
}

// Summary is written to stdout once all traps ran.
type Summary struct {
	Halted       bool         `json:"halted"`
	ExitCode     uint32       `json:"exit_code"`
	Cycles       uint64       `json:"cycles"`
	Output       []uint32     `json:"output"`
	OutputDigest string       `json:"output_digest"`
	Shards       int          `json:"shards"`
	Traps        []TrapOutput `json:"traps"`
	Error        string       `json:"error,omitempty"`
}

var (
	storeDir = flag.String("store", "", "persist shard records in a pebble database at this directory")
	dump     = flag.Bool("dump", false, "dump every shard record to stderr")
	check    = flag.Bool("check", false, "replay the memory log of every shard after the run")
	verbose  = flag.Bool("v", false, "log every syscall")
)

func main() {
	flag.Parse()
	os.Exit(execute(os.Stdin, os.Stdout))
}

// execute drives one run and returns the process exit code. Every deferred
// cleanup has run by the time it returns.
func execute(stdin io.Reader, stdout io.Writer) int {
	if *verbose {
		log.SetOutput(os.Stderr, hclog.Trace)
	}

	// Read JSON lines from stdin:
	// config, memory image, witness, traps.
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	lines := make([][]byte, 0, 4)
	for _, name := range []string{"config", "memory", "witness", "traps"} {
		if !scanner.Scan() {
			return fatal(fmt.Sprintf("Failed to read %s", name))
		}
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}

	config, err := buildConfig(lines[0])
	if err != nil {
		return fatal(err.Error())
	}
	image, err := parseMemory(lines[1])
	if err != nil {
		return fatal(err.Error())
	}
	witness, err := parseWitness(lines[2])
	if err != nil {
		return fatal(err.Error())
	}
	traps, err := parseTraps(lines[3])
	if err != nil {
		return fatal(err.Error())
	}

	var shardStore *store.ShardStore
	var sink sp1core.RecordSink
	if *storeDir != "" {
		shardStore, err = store.Open(*storeDir, store.Options{CacheSize: config.StoreCacheSize})
		if err != nil {
			return fatal(fmt.Sprintf("Failed to open store: %v", err))
		}
		defer shardStore.Close()
		sink = shardStore
	}

	m, err := sp1core.NewMachine(config, bytes.NewReader(witness), sink)
	if err != nil {
		return fatal(fmt.Sprintf("Failed to create machine: %v", err))
	}
	if err := m.LoadMemory(image); err != nil {
		return fatal(fmt.Sprintf("Failed to load memory: %v", err))
	}

	summary := run(m, traps)

	records := m.Records()
	if shardStore != nil {
		records, err = shardStore.Records()
		if err != nil {
			return fatal(fmt.Sprintf("Failed to read shard records: %v", err))
		}
	}
	summary.Shards = len(records)

	if *dump {
		spew.Fdump(os.Stderr, records)
	}
	if *check {
		if err := m.Verify(records); err != nil {
			return fatal(err.Error())
		}
		log.L.Info("memory log consistent", "shards", len(records))
	}

	out, err := json.Marshal(summary)
	if err != nil {
		return fatal(fmt.Sprintf("Failed to serialize summary: %v", err))
	}
	stdout.Write(out)
	stdout.Write([]byte("\n"))

	if summary.Error != "" {
		return 1
	}
	return 0
}

// run services traps in order until one fails or the guest halts, then
// finalizes the last shard.
func run(m *sp1core.Machine, traps []TrapInput) *Summary {
	summary := &Summary{Traps: make([]TrapOutput, 0, len(traps))}

	for i, t := range traps {
		code, err := resolveCode(t.Code)
		if err != nil {
			summary.Error = fmt.Sprintf("trap %d: %v", i, err)
			break
		}
		res, err := m.Trap(code, t.Arg1, t.Arg2)
		if err != nil {
			summary.Error = fmt.Sprintf("trap %d: %v", i, err)
			break
		}
		summary.Traps = append(summary.Traps, TrapOutput{
			Code:   t.Code,
			Return: res.Return,
			PC:     res.PC,
			Shard:  res.Shard,
		})
		if res.Halted {
			break
		}
	}

	if summary.Error == "" && !m.Unconstrained() {
		if err := m.Finish(); err != nil {
			summary.Error = err.Error()
		}
	}

	summary.Halted, summary.ExitCode = m.Halted()
	summary.Cycles = m.Cycles()
	summary.Output = m.Output()
	if d, err := m.OutputDigest(); err == nil {
		summary.OutputDigest = hex.EncodeToString(d)
	}
	log.L.Info("execution finished",
		"traps", len(summary.Traps),
		"cycles", summary.Cycles,
		"halted", summary.Halted)
	return summary
}

func fatal(msg string) int {
	log.L.Error(msg)
	return 1
}
