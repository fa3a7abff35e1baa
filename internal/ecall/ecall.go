// Package ecall is the only place in this module that hands control to the
// zkVM host. Everything above it talks to the host through the
// syscall.Dispatcher interface.
//
// The transport is a single RISC-V ECALL with the operation identifier in t0
// and the two operand words in a0 and a1. The host performs the operation,
// writes its results through the operand addresses, and resumes the guest at
// the instruction after the trap. Nothing is returned in registers.
//
// The real trap is only compiled with the zkvm build tag on riscv64. On every
// other target Available is false and Call panics with ErrUnavailable.
package ecall

import "github.com/pkg/errors"

// ErrUnavailable is the panic value of Call on targets without a zkVM host.
var ErrUnavailable = errors.New("ecall: native dispatch requires a zkvm riscv64 build")
