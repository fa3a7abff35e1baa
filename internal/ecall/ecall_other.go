//go:build !zkvm || !riscv64

package ecall

import "unsafe"

// Available reports whether Call traps into a real host.
const Available = false

// Call panics: there is no host to trap into on this target.
func Call(id uint32, arg0, arg1 unsafe.Pointer) {
	panic(ErrUnavailable)
}
