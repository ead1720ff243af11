package runtime

import (
	"github.com/rlyzurjf57/sp1/internal/sp1-core/log"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/metrics"
)

// Ecall services the trap at the current pc. The code is taken from t0 and
// the arguments from a0 and a1. The implementation's return value, or the
// code itself when there is none, is written back to t0; then the
// instruction retires at the pc the syscall chose, charging the extra
// cycles its code advertises.
//
// A returned *Fault is fatal: the runtime refuses further traps.
func (rt *Runtime) Ecall() (err error) {
	if rt.faulted != nil {
		return rt.faulted
	}
	if rt.state.Halted {
		return &Fault{Kind: FaultProtocolMisuse, Message: "trap after halt"}
	}

	nextPC, extraCycles := rt.dispatch(&err)
	if err != nil {
		return err
	}
	return rt.retire(nextPC, extraCycles)
}

func (rt *Runtime) dispatch(err *error) (nextPC uint32, extraCycles uint32) {
	defer rt.recoverFault(err)

	raw := rt.state.Registers[RegisterSyscallCode]
	code := SyscallCodeFromUint32(raw)
	impl, ok := rt.syscalls.Get(code)
	if !ok {
		malformedCode("no implementation registered for %s", code)
	}
	arg1 := rt.state.Registers[RegisterArg1]
	arg2 := rt.state.Registers[RegisterArg2]

	log.L.Trace("syscall",
		"code", code.String(),
		"arg1", arg1,
		"arg2", arg2,
		"shard", rt.state.CurrentShard,
		"clk", rt.state.Clk,
		"unconstrained", rt.unconstrained)
	metrics.Syscalls.WithLabelValues(code.String()).Inc()

	// Enter and exit swap the shard record; neither they nor anything in
	// between may land in the real one.
	wasUnconstrained := rt.unconstrained

	ctx := newSyscallContext(rt)
	value, hasValue := impl.Execute(ctx, arg1, arg2)
	ctx.release()

	if !wasUnconstrained && !rt.unconstrained {
		ev := ctx.event(code, arg1, arg2)
		if hasValue {
			v := value
			ev.Return = &v
		}
		rt.record.AddSyscallEvent(ev)
	}

	if hasValue {
		rt.SetRegister(RegisterReturn, value)
	} else {
		rt.SetRegister(RegisterReturn, raw)
	}

	return ctx.nextPC, code.ExtraCyclesHint()
}
