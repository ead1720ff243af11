package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadAccessCarriesValueAsPrev(t *testing.T) {
	a := ReadAccess(0x40, MemoryReadRecord{Value: 3, Shard: 2, Timestamp: 7, PrevShard: 1, PrevTimestamp: 9})
	want := MemoryAccess{Kind: Read, Addr: 0x40, Value: 3, PrevValue: 3, Shard: 2, Timestamp: 7, PrevShard: 1, PrevTimestamp: 9}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("ReadAccess mismatch (-want +got):\n%s", diff)
	}
}

func TestBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b MemoryAccess
		want bool
	}{
		{"earlier shard", MemoryAccess{Shard: 1, Timestamp: 50}, MemoryAccess{Shard: 2, Timestamp: 0}, true},
		{"same shard earlier clock", MemoryAccess{Shard: 1, Timestamp: 1}, MemoryAccess{Shard: 1, Timestamp: 2}, true},
		{"equal", MemoryAccess{Shard: 1, Timestamp: 1}, MemoryAccess{Shard: 1, Timestamp: 1}, false},
		{"later", MemoryAccess{Shard: 3}, MemoryAccess{Shard: 2, Timestamp: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(tt.b); got != tt.want {
				t.Errorf("Before = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddSyscallEventInterleaves(t *testing.T) {
	rec := New(1)
	ev := SyscallEvent{
		Code: 0x00_80_01_00,
		Reads: []MemoryAccess{
			{Kind: Read, Addr: 0, Shard: 1, Timestamp: 0},
			{Kind: Read, Addr: 4, Shard: 1, Timestamp: 2},
			{Kind: Read, Addr: 8, Shard: 1, Timestamp: 3},
		},
		Writes: []MemoryAccess{
			{Kind: Write, Addr: 12, Shard: 1, Timestamp: 1},
			{Kind: Write, Addr: 16, Shard: 1, Timestamp: 4},
		},
	}
	rec.AddSyscallEvent(ev)

	var stamps []uint32
	for _, a := range rec.MemoryAccesses {
		stamps = append(stamps, a.Timestamp)
	}
	if diff := cmp.Diff([]uint32{0, 1, 2, 3, 4}, stamps); diff != "" {
		t.Errorf("log order mismatch (-want +got):\n%s", diff)
	}
	if rec.Reads() != 3 || rec.Writes() != 2 {
		t.Errorf("reads/writes = %d/%d, want 3/2", rec.Reads(), rec.Writes())
	}
	if len(rec.SyscallEvents) != 1 {
		t.Errorf("event should be kept")
	}
}

func TestAccessKindString(t *testing.T) {
	if Read.String() != "read" || Write.String() != "write" {
		t.Errorf("unexpected names %q %q", Read, Write)
	}
	if got := AccessKind(7).String(); got != "AccessKind(7)" {
		t.Errorf("String() = %q", got)
	}
}
