package runtime

// The methods in this file observe machine state without producing a
// record. A value obtained here is outside the memory-consistency argument:
// use them only where the value is already constrained by another record
// (for example the previous value carried by a write record) or is meant to
// be unconstrained. Misuse is not detected here; it yields an unsound trace.

// ReadRegisterUntraced returns the current value of reg.
func (ctx *SyscallContext) ReadRegisterUntraced(reg Register) uint32 {
	return ctx.runtime().Register(reg)
}

// ReadByteUntraced returns the byte at addr.
func (ctx *SyscallContext) ReadByteUntraced(addr uint32) byte {
	return ctx.runtime().byteAt(addr)
}

// ReadWordUntraced returns the word at addr.
func (ctx *SyscallContext) ReadWordUntraced(addr uint32) uint32 {
	return ctx.runtime().wordAt(addr)
}

// ReadWordsUntraced returns n consecutive words starting at addr.
func (ctx *SyscallContext) ReadWordsUntraced(addr uint32, n int) []uint32 {
	rt := ctx.runtime()
	checkSpan(addr, n)
	values := make([]uint32, n)
	for i := range values {
		values[i] = rt.wordAt(addr + uint32(i)*WordSize)
	}
	return values
}
