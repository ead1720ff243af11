package memtable

import (
	"fmt"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

// stamp is the (shard, timestamp) ordering key of an access.
type stamp struct {
	shard, timestamp uint32
}

func (s stamp) less(o stamp) bool {
	if s.shard != o.shard {
		return s.shard < o.shard
	}
	return s.timestamp < o.timestamp
}

// ConsistencyError pinpoints the first access that breaks the argument.
type ConsistencyError struct {
	Index  int
	Access record.MemoryAccess
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("memory access %d (%s at %#x, shard %d, clk %d): %s",
		e.Index, e.Access.Kind, e.Access.Addr, e.Access.Shard, e.Access.Timestamp, e.Reason)
}

// Check replays the memory logs of consecutive shard records against the
// initial memory image and verifies what the memory-consistency argument
// relies on:
//   - within each record, timestamps strictly increase and the shard matches
//   - every access names the previous access to its address as its predecessor
//   - a read returns, and a write replaces, the most recently written value
//     (or the initial image, or zero for untouched memory)
func Check(records []*record.ExecutionRecord, initial map[uint32]uint32) error {
	values := make(map[uint32]uint32, len(initial))
	for addr, v := range initial {
		values[addr] = v
	}
	stamps := make(map[uint32]stamp)

	index := 0
	for _, rec := range records {
		var last *stamp
		for _, a := range rec.MemoryAccesses {
			fail := func(format string, args ...interface{}) error {
				return &ConsistencyError{Index: index, Access: a, Reason: fmt.Sprintf(format, args...)}
			}

			cur := stamp{a.Shard, a.Timestamp}
			if a.Shard != rec.Shard {
				return fail("access belongs to shard %d, record is shard %d", a.Shard, rec.Shard)
			}
			if last != nil && !last.less(cur) {
				return fail("timestamp does not increase (previous %d)", last.timestamp)
			}
			last = &cur

			prev := stamps[a.Addr]
			if a.PrevShard != prev.shard || a.PrevTimestamp != prev.timestamp {
				return fail("predecessor (%d, %d) does not match last access (%d, %d)",
					a.PrevShard, a.PrevTimestamp, prev.shard, prev.timestamp)
			}
			if !prev.less(cur) {
				return fail("access is not after its predecessor")
			}

			want := values[a.Addr]
			switch a.Kind {
			case record.Read:
				if a.Value != want {
					return fail("read %#x, most recent value is %#x", a.Value, want)
				}
			case record.Write:
				if a.PrevValue != want {
					return fail("write replaces %#x, most recent value is %#x", a.PrevValue, want)
				}
				values[a.Addr] = a.Value
			default:
				return fail("unknown access kind")
			}
			stamps[a.Addr] = cur
			index++
		}
	}
	return nil
}
