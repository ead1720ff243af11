package runtime

import (
	"fmt"

	"github.com/pkg/errors"
)

// FaultKind classifies a fatal condition raised while servicing a trap.
type FaultKind int

const (
	// FaultMalformedCode means the guest trapped with a code outside the
	// assigned syscall set, or with a code nothing is registered for.
	FaultMalformedCode FaultKind = iota + 1

	// FaultProtocolMisuse covers unpaired unconstrained toggles, unaligned
	// memory access, an exhausted witness channel and misuse of a syscall
	// context (a second live context, or use after the syscall returned).
	FaultProtocolMisuse
)

func (k FaultKind) String() string {
	switch k {
	case FaultMalformedCode:
		return "malformed-code"
	case FaultProtocolMisuse:
		return "protocol-misuse"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is fatal to the execution that raised it. It is raised with panic
// inside the runtime and surfaces as the error returned by Ecall; a
// capability never gets a chance to recover from it.
type Fault struct {
	Kind    FaultKind
	Message string
	Cause   error
}

// Error returns the error message
func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("runtime fault [%s]: %s (caused by: %v)", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("runtime fault [%s]: %s", f.Kind, f.Message)
}

// Unwrap returns the cause of the fault
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is matches faults by kind, so errors.Is(err, &Fault{Kind: FaultProtocolMisuse}) works.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	return f.Kind == t.Kind
}

// ErrCycleLimitExceeded is returned once the global cycle count passes the
// configured limit.
var ErrCycleLimitExceeded = errors.New("execution exceeded maximum cycles")

func malformedCode(format string, args ...interface{}) {
	panic(&Fault{Kind: FaultMalformedCode, Message: fmt.Sprintf(format, args...)})
}

func protocolMisuse(format string, args ...interface{}) {
	panic(&Fault{Kind: FaultProtocolMisuse, Message: fmt.Sprintf(format, args...)})
}

func protocolMisuseCause(cause error, format string, args ...interface{}) {
	panic(&Fault{Kind: FaultProtocolMisuse, Message: fmt.Sprintf(format, args...), Cause: cause})
}

// AsFault extracts a *Fault from err, if there is one in its chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Misuse aborts the syscall in progress with a protocol-misuse fault. It is
// meant for capabilities handed operands they cannot process, such as a
// point that is not on the curve. It does not return.
func Misuse(cause error, format string, args ...interface{}) {
	protocolMisuseCause(cause, format, args...)
}
