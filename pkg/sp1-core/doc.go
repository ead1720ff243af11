// Package sp1core is the host-side syscall layer of the SP1 zkVM.
//
// A guest program asks the host for services by placing a syscall code in
// t0, its arguments in a0 and a1, and executing ecall. The layer decodes
// the code, runs the matching implementation and makes sure every memory
// access it performs is recorded, stamped with the current shard and a
// clock that advances per access. Those records are what the
// memory-consistency argument of the prover consumes.
//
// # Quick Start
//
//	m, err := sp1core.NewMachine(sp1core.DefaultConfig(), nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := m.LoadMemory(map[uint32]uint32{0x100: 'H', 0x104: 'I', 0x108: '!'}); err != nil {
//		log.Fatal(err)
//	}
//
//	// WRITE three words from 0x100 to the committed output
//	if _, err := m.Trap(zkvm.Write, 0x100, 3); err != nil {
//		log.Fatal(err)
//	}
//	if _, err := m.Trap(zkvm.Halt, 0, 0); err != nil {
//		log.Fatal(err)
//	}
//	if err := m.Finish(); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// - pkg/sp1-core/: public API (this package) and guest constants (zkvm)
// - internal/sp1-core/: runtime, records, precompiles, storage
package sp1core
