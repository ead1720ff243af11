package runtime

import (
	"strings"
	"testing"
)

func TestSyscallMapInsertReplaces(t *testing.T) {
	m := SyscallMap{}
	first := NewSyscallWrite()
	second := NewSyscallWrite()
	m.Insert(SysWrite, first)
	m.Insert(SysWrite, second)

	if len(m) != 1 {
		t.Fatalf("len = %d, want 1", len(m))
	}
	got, ok := m.Get(SysWrite)
	if !ok || got != second {
		t.Errorf("Get should return the last inserted implementation")
	}
	if _, ok := m.Get(SysLWA); ok {
		t.Errorf("Get(LWA) should miss")
	}
}

func TestSyscallMapCodesSorted(t *testing.T) {
	codes := basicSyscallMap().Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not ascending: %v", codes)
		}
	}
}

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name    string
		m       SyscallMap
		wantErr string
	}{
		{
			name: "basic map",
			m:    basicSyscallMap(),
		},
		{
			name: "precompile declaring no extra cycles",
			m: SyscallMap{
				SysShaExtend: funcSyscall{extra: 0},
			},
			wantErr: "SHA_EXTEND: declares 0 extra cycles, code encodes 128",
		},
		{
			name: "basic syscall declaring extra cycles",
			m: SyscallMap{
				SysWrite: funcSyscall{extra: 128},
			},
			wantErr: "WRITE: declares 128 extra cycles, code encodes 0",
		},
		{
			name: "unassigned code",
			m: SyscallMap{
				SyscallCode(0x42): funcSyscall{},
			},
			wantErr: "unassigned code",
		},
		{
			name: "nil implementation",
			m: SyscallMap{
				SysLWA: nil,
			},
			wantErr: "LWA: nil implementation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.CheckConsistency()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInconsistentMap(t *testing.T) {
	_, err := New(nil, SyscallMap{SysShaCompress: funcSyscall{extra: 1}}, nil, nil)
	if err == nil {
		t.Fatal("New should reject a map whose cycles disagree with the codes")
	}
}
