// Package syscalls assembles the default syscall map: the basic
// control syscalls from the runtime and every precompile.
package syscalls

import (
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/blake3"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/edwards"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/keccak256"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/sha256"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles/weierstrass"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

// DefaultSyscallMap returns a fresh map with one implementation for every
// assigned code.
func DefaultSyscallMap() runtime.SyscallMap {
	m := make(runtime.SyscallMap, len(runtime.AllSyscallCodes()))

	m.Insert(runtime.SysHalt, runtime.NewSyscallHalt())
	m.Insert(runtime.SysLWA, runtime.NewSyscallLWA())
	m.Insert(runtime.SysWrite, runtime.NewSyscallWrite())
	m.Insert(runtime.SysEnterUnconstrained, runtime.NewSyscallEnterUnconstrained())
	m.Insert(runtime.SysExitUnconstrained, runtime.NewSyscallExitUnconstrained())

	m.Insert(runtime.SysShaExtend, sha256.NewExtendChip())
	m.Insert(runtime.SysShaCompress, sha256.NewCompressChip())
	m.Insert(runtime.SysEdAdd, edwards.NewAddChip())
	m.Insert(runtime.SysEdDecompress, edwards.NewDecompressChip())
	m.Insert(runtime.SysKeccakPermute, keccak256.NewPermuteChip())
	m.Insert(runtime.SysSecp256k1Add, weierstrass.NewAddChip())
	m.Insert(runtime.SysSecp256k1Double, weierstrass.NewDoubleChip())
	m.Insert(runtime.SysSecp256k1Decompress, weierstrass.NewDecompressChip())
	m.Insert(runtime.SysBlake3CompressInner, blake3.NewCompressInnerChip())

	return m
}
