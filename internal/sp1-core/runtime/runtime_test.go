package runtime

import (
	"crypto/sha256"
	"testing"

	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/memtable"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

func TestNewDefaults(t *testing.T) {
	rt, err := New(nil, basicSyscallMap(), nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if rt.CurrentShard() != 1 {
		t.Errorf("first shard = %d, want 1", rt.CurrentShard())
	}
	if rt.Config().ShardSize != utils.DefaultConfig().ShardSize {
		t.Errorf("should fall back to the default config")
	}

	if _, err := New(utils.DefaultConfig().WithShardSize(100), basicSyscallMap(), nil, nil); err == nil {
		t.Errorf("New should reject a shard size that is not a power of two")
	}
}

func TestInitMemory(t *testing.T) {
	rt := newTestRuntime(t, nil, nil, nil)
	if err := rt.InitMemory(map[uint32]uint32{0x10: 1}); err != nil {
		t.Fatalf("InitMemory failed: %v", err)
	}
	if err := rt.InitMemory(map[uint32]uint32{0x11: 1}); err == nil {
		t.Errorf("InitMemory should reject unaligned addresses")
	}
	image := rt.InitialMemory()
	image[0x10] = 5
	if rt.InitialMemory()[0x10] != 1 {
		t.Errorf("InitialMemory should return a copy")
	}
}

func TestLoadStoreRecords(t *testing.T) {
	rt := newTestRuntime(t, nil, nil, nil)
	if err := rt.InitMemory(map[uint32]uint32{0x20: 7}); err != nil {
		t.Fatalf("InitMemory failed: %v", err)
	}

	v, err := rt.LoadWord(0x20)
	if err != nil || v != 7 {
		t.Fatalf("LoadWord = %d, %v; want 7", v, err)
	}
	if err := rt.StoreWord(0x20, 8); err != nil {
		t.Fatalf("StoreWord failed: %v", err)
	}

	accesses := rt.Record().MemoryAccesses
	if len(accesses) != 2 {
		t.Fatalf("got %d accesses, want 2", len(accesses))
	}
	read, write := accesses[0], accesses[1]
	if read.Kind != record.Read || read.Timestamp != 0 || read.PrevTimestamp != 0 || read.PrevShard != 0 {
		t.Errorf("unexpected read %+v", read)
	}
	if write.Kind != record.Write || write.Value != 8 || write.PrevValue != 7 {
		t.Errorf("unexpected write %+v", write)
	}
	if write.PrevShard != 1 || write.PrevTimestamp != 0 || write.Timestamp != 1 {
		t.Errorf("write should point at the read: %+v", write)
	}

	if _, err := rt.LoadWord(0x21); err == nil {
		t.Errorf("unaligned LoadWord should fault")
	}
}

func TestX0IsHardwired(t *testing.T) {
	rt := newTestRuntime(t, nil, nil, nil)
	rt.SetRegister(X0, 5)
	if rt.Register(X0) != 0 {
		t.Errorf("x0 = %d, want 0", rt.Register(X0))
	}
}

func TestShardRollover(t *testing.T) {
	config := utils.DefaultConfig().WithShardSize(16)
	rt := newTestRuntime(t, config, nil, nil)

	for i := 0; i < 20; i++ {
		if err := rt.StoreWord(uint32(i%4)*4, uint32(i)); err != nil {
			t.Fatalf("StoreWord failed: %v", err)
		}
		if err := rt.Retire(rt.PC()+4, 0); err != nil {
			t.Fatalf("Retire failed: %v", err)
		}
	}
	if err := rt.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	// Each instruction takes two ticks, so a shard holds eight of them.
	if got := len(rt.sink.Records); got != 3 {
		t.Fatalf("emitted %d shards, want 3", got)
	}
	for i, rec := range rt.sink.Records {
		if rec.Shard != uint32(i+1) {
			t.Errorf("record %d has shard %d", i, rec.Shard)
		}
		if len(rec.Commitment) == 0 {
			t.Errorf("shard %d was not committed", rec.Shard)
		}
	}
	if rt.CurrentShard() != 4 {
		t.Errorf("current shard = %d, want 4", rt.CurrentShard())
	}

	if err := memtable.Check(rt.sink.Records, rt.InitialMemory()); err != nil {
		t.Errorf("memory log inconsistent: %v", err)
	}
}

func TestFinishSkipsEmptyShard(t *testing.T) {
	rt := newTestRuntime(t, nil, nil, nil)
	if err := rt.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if len(rt.sink.Records) != 0 {
		t.Errorf("empty shard should not be emitted")
	}
}

func TestCommitShardsDisabled(t *testing.T) {
	rt := newTestRuntime(t, utils.DefaultConfig().WithCommitShards(false), nil, nil)
	if err := rt.StoreWord(0, 1); err != nil {
		t.Fatalf("StoreWord failed: %v", err)
	}
	if err := rt.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if rt.sink.Records[0].Commitment != nil {
		t.Errorf("commitment should be empty when disabled")
	}
}

func TestMaxCycles(t *testing.T) {
	rt := newTestRuntime(t, utils.DefaultConfig().WithMaxCycles(2), nil, nil)
	for i := 0; i < 2; i++ {
		if err := rt.Retire(0, 0); err != nil {
			t.Fatalf("Retire %d failed: %v", i, err)
		}
	}
	err := rt.Retire(0, 0)
	if !errors.Is(err, ErrCycleLimitExceeded) {
		t.Fatalf("expected ErrCycleLimitExceeded, got %v", err)
	}
}

func TestOutputDigest(t *testing.T) {
	rt := newTestRuntime(t, nil, nil, nil)
	if err := rt.InitMemory(map[uint32]uint32{0: 0x48, 4: 0x49}); err != nil {
		t.Fatalf("InitMemory failed: %v", err)
	}
	rt.mustTrap(t, SysWrite, 0, 2)

	got, err := rt.OutputDigest()
	if err != nil {
		t.Fatalf("OutputDigest failed: %v", err)
	}
	want := sha256.Sum256(utils.WordsToBytesLE([]uint32{0x48, 0x49}))
	if string(got) != string(want[:]) {
		t.Errorf("digest = %x, want %x", got, want)
	}
}
