package runtime

import "github.com/rlyzurjf57/sp1/internal/sp1-core/record"

// RecordSink receives each shard record once the shard is finalized. The
// record is not touched by the runtime afterwards.
type RecordSink interface {
	EmitShard(rec *record.ExecutionRecord) error
}

// MemorySink keeps finalized shard records in memory, in emission order.
type MemorySink struct {
	Records []*record.ExecutionRecord
}

// EmitShard appends rec.
func (s *MemorySink) EmitShard(rec *record.ExecutionRecord) error {
	s.Records = append(s.Records, rec)
	return nil
}
