//go:build zkvm && riscv64

package ecall

import "unsafe"

// Available reports whether Call traps into a real host.
const Available = true

// Call traps into the host with id in t0, arg0 in a0 and arg1 in a1.
//
//go:noescape
func Call(id uint32, arg0, arg1 unsafe.Pointer)
