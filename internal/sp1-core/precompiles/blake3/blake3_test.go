package blake3

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime/runtimetest"
)

const (
	statePtr = 0x3000
	msgPtr   = 0x3100

	flagChunkStart = 1 << 0
	flagChunkEnd   = 1 << 1
	flagRoot       = 1 << 3
)

func TestCompressInnerHashesEmptyInput(t *testing.T) {
	// The empty input is a single root chunk with an empty block.
	state := make([]uint32, StateWords)
	copy(state, IV[:])
	copy(state[8:], IV[:4])
	state[12], state[13] = 0, 0
	state[14] = 0
	state[15] = flagChunkStart | flagChunkEnd | flagRoot

	image := runtimetest.Merge(
		runtimetest.Image(statePtr, state),
		runtimetest.Image(msgPtr, make([]uint32, MessageWords)),
	)
	rt := runtimetest.Run(t, runtime.SysBlake3CompressInner, NewCompressInnerChip(), image, statePtr, msgPtr)

	out := runtimetest.Words(rt, statePtr, StateWords)
	digest := make([]byte, 0, 32)
	for i := 0; i < 8; i++ {
		digest = binary.LittleEndian.AppendUint32(digest, out[i]^out[i+8])
	}

	want := "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if got := hex.EncodeToString(digest); got != want {
		t.Errorf("blake3(\"\") = %s, want %s", got, want)
	}
}

func TestCompressInnerLeavesMessageUntouched(t *testing.T) {
	msg := make([]uint32, MessageWords)
	for i := range msg {
		msg[i] = uint32(i) * 0x01010101
	}
	image := runtimetest.Merge(
		runtimetest.Image(statePtr, make([]uint32, StateWords)),
		runtimetest.Image(msgPtr, msg),
	)
	rt := runtimetest.Run(t, runtime.SysBlake3CompressInner, NewCompressInnerChip(), image, statePtr, msgPtr)

	for i, w := range runtimetest.Words(rt, msgPtr, MessageWords) {
		if w != msg[i] {
			t.Errorf("message word %d = %#x, want %#x", i, w, msg[i])
		}
	}

	ev := runtimetest.LastEvent(t, rt)
	if len(ev.Reads) != StateWords+MessageWords {
		t.Errorf("reads = %d, want %d", len(ev.Reads), StateWords+MessageWords)
	}
	if len(ev.Writes) != StateWords {
		t.Errorf("writes = %d, want %d", len(ev.Writes), StateWords)
	}
	for _, w := range ev.Writes {
		if w.Addr >= msgPtr {
			t.Errorf("unexpected write to message at %#x", w.Addr)
		}
	}
}
