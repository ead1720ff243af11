package integration_test

import (
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/memtable"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/sha256"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/store"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
	"github.com/rlyzurjf57/sp1/pkg/sp1-core/zkvm"
)

// Test05_ShardsToStore runs enough SHA work to fill several shards,
// persists them in the shard store and replays the memory log.
func Test05_ShardsToStore(t *testing.T) {
	t.Log("=== Test 05: shard rollover into the pebble store ===")

	const (
		wPtr = 0x8000
		hPtr = 0x9000
	)

	st, err := store.Open("", store.Options{CacheSize: 2, InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	config := utils.DefaultConfig().WithShardSize(256)
	rt := newRuntime(t, config, nil, st)

	image := make(map[uint32]uint32)
	for i := 0; i < 16; i++ {
		image[wPtr+uint32(i)*4] = uint32(i) * 0x01010101
	}
	for i, h := range sha256.InitialState {
		image[hPtr+uint32(i)*4] = h
	}
	if err := rt.InitMemory(image); err != nil {
		t.Fatalf("Failed to load memory: %v", err)
	}

	// Each extend makes 240 accesses, each compress 80.
	for i := 0; i < 3; i++ {
		trap(t, rt, zkvm.ShaExtend, wPtr, 0)
		trap(t, rt, zkvm.ShaCompress, wPtr, hPtr)
	}
	trap(t, rt, zkvm.Halt, 0, 0)
	if err := rt.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	records, err := st.Records()
	if err != nil {
		t.Fatalf("Failed to load records: %v", err)
	}
	if len(records) < 3 {
		t.Fatalf("Expected several shards, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Shard != uint32(i+1) {
			t.Errorf("Record %d is shard %d", i, rec.Shard)
		}
		if len(rec.Commitment) == 0 {
			t.Errorf("Shard %d has no commitment", rec.Shard)
		}
	}

	if err := memtable.Check(records, rt.InitialMemory()); err != nil {
		t.Fatalf("Memory log inconsistent: %v", err)
	}

	t.Logf("✓ %d shards stored and replayed", len(records))
}
