package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

func openTestStore(t *testing.T, cacheSize int) *ShardStore {
	t.Helper()
	s, err := Open("", Options{CacheSize: cacheSize, InMemory: true})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(shard uint32) *record.ExecutionRecord {
	rec := record.New(shard)
	rec.AddAccess(record.MemoryAccess{Kind: record.Write, Addr: 0x10, Value: 5, Shard: shard, Timestamp: 1})
	ret := uint32(7)
	rec.SyscallEvents = append(rec.SyscallEvents, record.SyscallEvent{Code: 1, Shard: shard, Return: &ret})
	rec.Output = []uint32{0x48}
	rec.Cycles = 12
	rec.Commitment = []byte{1, 2, 3}
	return rec
}

func TestStoreRoundTrip(t *testing.T) {
	for _, cacheSize := range []int{0, 4} {
		s := openTestStore(t, cacheSize)
		want := sampleRecord(3)
		if err := s.EmitShard(want); err != nil {
			t.Fatalf("EmitShard failed: %v", err)
		}

		got, err := s.Get(3)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("cache %d: record mismatch (-want +got):\n%s", cacheSize, diff)
		}
	}
}

func TestStoreMissingShard(t *testing.T) {
	s := openTestStore(t, 2)
	_, err := s.Get(9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListsShardsInOrder(t *testing.T) {
	s := openTestStore(t, 0)
	for _, shard := range []uint32{12, 1, 3, 100} {
		if err := s.EmitShard(sampleRecord(shard)); err != nil {
			t.Fatalf("EmitShard failed: %v", err)
		}
	}

	shards, err := s.Shards()
	if err != nil {
		t.Fatalf("Shards failed: %v", err)
	}
	if diff := cmp.Diff([]uint32{1, 3, 12, 100}, shards); diff != "" {
		t.Errorf("shards mismatch (-want +got):\n%s", diff)
	}

	records, err := s.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 4 || records[2].Shard != 12 {
		t.Errorf("unexpected records %v", records)
	}
}
