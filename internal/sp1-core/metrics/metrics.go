// Package metrics defines the runtime's counters.
// Defined metrics:
//
//	sp1_runtime_syscalls_total{code}
//	sp1_runtime_faults_total{kind}
//	sp1_runtime_memory_accesses_total{kind}
//	sp1_runtime_shards_finalized_total
//	sp1_runtime_global_cycles
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Syscalls counts dispatched syscalls by code name.
	Syscalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sp1",
		Subsystem: "runtime",
		Name:      "syscalls_total",
		Help:      "Syscalls dispatched, by code.",
	}, []string{"code"})

	// Faults counts fatal runtime faults by kind.
	Faults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sp1",
		Subsystem: "runtime",
		Name:      "faults_total",
		Help:      "Fatal faults raised while servicing traps, by kind.",
	}, []string{"kind"})

	// MemoryAccesses counts traced memory accesses by kind.
	MemoryAccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sp1",
		Subsystem: "runtime",
		Name:      "memory_accesses_total",
		Help:      "Traced memory accesses, by kind.",
	}, []string{"kind"})

	// ShardsFinalized counts shard records handed to a sink.
	ShardsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sp1",
		Subsystem: "runtime",
		Name:      "shards_finalized_total",
		Help:      "Shard records emitted to the record sink.",
	})

	// GlobalCycles tracks the global cycle count of the most recent runtime.
	GlobalCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sp1",
		Subsystem: "runtime",
		Name:      "global_cycles",
		Help:      "Global cycle count, extra syscall cycles included.",
	})
)
