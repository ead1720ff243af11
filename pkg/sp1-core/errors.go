package sp1core

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

// ErrorCode represents an SP1 core error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrInvalidInput represents invalid memory images or arguments
	ErrInvalidInput

	// ErrMalformedSyscall means the guest trapped with a code that is not
	// assigned or not registered
	ErrMalformedSyscall

	// ErrProtocolMisuse covers unpaired unconstrained blocks, unaligned
	// access, an exhausted witness and invalid precompile operands
	ErrProtocolMisuse

	// ErrCycleLimit means execution ran past the configured cycle limit
	ErrCycleLimit

	// ErrExecution represents any other execution failure
	ErrExecution

	// ErrStorage represents a failure persisting shard records
	ErrStorage
)

var codeNames = map[ErrorCode]string{
	ErrUnknown:          "unknown",
	ErrInvalidConfig:    "invalid-config",
	ErrInvalidInput:     "invalid-input",
	ErrMalformedSyscall: "malformed-syscall",
	ErrProtocolMisuse:   "protocol-misuse",
	ErrCycleLimit:       "cycle-limit",
	ErrExecution:        "execution",
	ErrStorage:          "storage",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// VMError represents an SP1 core error
type VMError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *VMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sp1-core error [%s]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("sp1-core error [%s]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *VMError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// executionError classifies an error coming out of the runtime.
func executionError(message string, err error) *VMError {
	code := ErrExecution
	if f, ok := runtime.AsFault(err); ok {
		switch f.Kind {
		case runtime.FaultMalformedCode:
			code = ErrMalformedSyscall
		case runtime.FaultProtocolMisuse:
			code = ErrProtocolMisuse
		}
	} else if errors.Is(err, runtime.ErrCycleLimitExceeded) {
		code = ErrCycleLimit
	}
	return &VMError{Code: code, Message: message, Cause: err}
}
