// Package syscall defines the dispatch contract between a zkVM guest and the
// host that accelerates selected operations for it.
//
// A dispatch is a single, blocking hand-off: one 32-bit operation identifier
// and two operand words go to the host, the host applies the operation to the
// memory the operands point to, and control comes back to the caller. There is
// no return value and no error path. Operand validity is entirely the caller's
// responsibility.
//
// # Identifiers
//
// Every identifier carries a domain prefix in its upper three bytes and an
// operation code in its low byte:
//
//	0x00_00_01_30   MEMCPY_32          domain 0x00000100, code 0x30
//	0x00_01_01_80   BN254_SCALAR_MUL   domain 0x00010100, code 0x80
//
// The BN254 scalar operations went through a renumbering on the host side, so
// two numberings exist: NumberingCurrent and NumberingLegacy. Both are kept as
// named constants, but exactly one is active in a build. Build with the
// sp1_legacy_ids tag to target a host that still uses the old numbers.
//
// # Calling convention
//
//	t0  operation identifier
//	a0  first operand address
//	a1  second operand address, or the address of a two-element address array
//	    for operations with three operands (see Dispatch3)
//
// # Backends
//
// Entry points in the bn254 and memory packages depend on the Dispatcher
// interface only. Native returns the ECALL backend, which only works in a zkvm
// build. The emulator package provides a software host for tests and tooling:
//
//	host, err := emulator.New()
//	if err != nil {
//	    return err
//	}
//	bn254.New(host).Mul(&p, &q)
//
// The package name matches the host concept it models and shadows the
// standard library syscall package. Code that needs both imports this one
// under another name, for example sp1syscall.
package syscall
