// Package store persists finalized shard records in a pebble database.
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/log"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

const (
	keyPrefix = "shard/"
	// keyLimit sorts right after every key under keyPrefix.
	keyLimit = "shard0"
)

// ErrNotFound is returned by Get for a shard that was never stored.
var ErrNotFound = errors.New("shard record not found")

// Options configures a ShardStore.
type Options struct {
	// CacheSize is the number of decoded records kept in memory. Zero
	// disables the cache.
	CacheSize int

	// InMemory keeps the database off disk.
	InMemory bool
}

// ShardStore is a runtime.RecordSink that writes each shard record under
// its shard number. It is safe for concurrent readers.
type ShardStore struct {
	db    *pebble.DB
	cache *lru.ARCCache
}

// Open opens or creates the store at dir.
func Open(dir string, opts Options) (*ShardStore, error) {
	pebbleOpts := &pebble.Options{}
	if opts.InMemory {
		pebbleOpts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(dir, pebbleOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "open shard store %q", dir)
	}

	s := &ShardStore{db: db}
	if opts.CacheSize > 0 {
		s.cache, err = lru.NewARC(opts.CacheSize)
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "create record cache")
		}
	}
	return s, nil
}

func shardKey(shard uint32) []byte {
	return []byte(fmt.Sprintf("%s%08d", keyPrefix, shard))
}

// EmitShard stores rec, replacing any record stored for the same shard.
func (s *ShardStore) EmitShard(rec *record.ExecutionRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encode shard %d", rec.Shard)
	}
	if err := s.db.Set(shardKey(rec.Shard), value, pebble.Sync); err != nil {
		return errors.Wrapf(err, "store shard %d", rec.Shard)
	}
	if s.cache != nil {
		s.cache.Add(rec.Shard, rec)
	}
	log.L.Trace("shard stored", "shard", rec.Shard, "bytes", len(value))
	return nil
}

// Get returns the record of shard.
func (s *ShardStore) Get(shard uint32) (*record.ExecutionRecord, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(shard); ok {
			return v.(*record.ExecutionRecord), nil
		}
	}

	value, closer, err := s.db.Get(shardKey(shard))
	if err == pebble.ErrNotFound {
		return nil, errors.Wrapf(ErrNotFound, "shard %d", shard)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load shard %d", shard)
	}
	defer closer.Close()

	rec := &record.ExecutionRecord{}
	if err := json.Unmarshal(value, rec); err != nil {
		return nil, errors.Wrapf(err, "decode shard %d", shard)
	}
	if s.cache != nil {
		s.cache.Add(shard, rec)
	}
	return rec, nil
}

// Shards lists the stored shard numbers in ascending order.
func (s *ShardStore) Shards() ([]uint32, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyLimit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate shard store")
	}
	defer iter.Close()

	var shards []uint32
	for iter.First(); iter.Valid(); iter.Next() {
		n, err := strconv.ParseUint(strings.TrimPrefix(string(iter.Key()), keyPrefix), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed key %q", iter.Key())
		}
		shards = append(shards, uint32(n))
	}
	return shards, iter.Error()
}

// Records loads every stored record in shard order.
func (s *ShardStore) Records() ([]*record.ExecutionRecord, error) {
	shards, err := s.Shards()
	if err != nil {
		return nil, err
	}
	records := make([]*record.ExecutionRecord, 0, len(shards))
	for _, shard := range shards {
		rec, err := s.Get(shard)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close closes the database.
func (s *ShardStore) Close() error {
	return s.db.Close()
}
