package memtable

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

func TestCheck(t *testing.T) {
	initial := map[uint32]uint32{0x20: 9}

	tests := []struct {
		name    string
		mutate  func(rec *record.ExecutionRecord)
		wantErr string
	}{
		{
			name: "consistent",
		},
		{
			name:    "stale read",
			mutate:  func(rec *record.ExecutionRecord) { rec.MemoryAccesses[2].Value = 4 },
			wantErr: "most recent value is 0x5",
		},
		{
			name:    "wrong predecessor",
			mutate:  func(rec *record.ExecutionRecord) { rec.MemoryAccesses[2].PrevTimestamp = 1 },
			wantErr: "does not match last access",
		},
		{
			name:    "timestamps out of order",
			mutate:  func(rec *record.ExecutionRecord) { rec.MemoryAccesses[1].Timestamp = 0 },
			wantErr: "timestamp does not increase",
		},
		{
			name:    "foreign shard",
			mutate:  func(rec *record.ExecutionRecord) { rec.MemoryAccesses[0].Shard = 2 },
			wantErr: "belongs to shard 2",
		},
		{
			name:    "write with wrong previous value",
			mutate:  func(rec *record.ExecutionRecord) { rec.MemoryAccesses[0].PrevValue = 1 },
			wantErr: "write replaces 0x1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			if tt.mutate != nil {
				tt.mutate(rec)
			}
			err := Check([]*record.ExecutionRecord{rec}, initial)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			var cerr *ConsistencyError
			if !errors.As(err, &cerr) {
				t.Errorf("error should be a *ConsistencyError")
			}
		})
	}
}

func TestCheckAcrossShards(t *testing.T) {
	first := record.New(1)
	first.AddAccess(write(0x10, 5, 0, 1, 3, 0, 0))
	second := record.New(2)
	second.AddAccess(read(0x10, 5, 2, 0, 1, 3))

	if err := Check([]*record.ExecutionRecord{first, second}, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
