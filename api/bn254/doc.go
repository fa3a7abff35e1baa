// Package bn254 exposes the host-accelerated BN254 scalar field operations.
//
// The host implements two operations on elements of the BN254 scalar field
// (the field of integers modulo the group order r):
//
//  1. BN254_SCALAR_MUL – p = p * q
//  2. BN254_SCALAR_MAC – ret = ret + a * b
//
// Both work in place: the first operand is overwritten with the result and
// the remaining operands are only read. Operands are Fr values, eight
// little-endian 32-bit words holding the canonical (non-Montgomery) value.
//
// # Quick start
//
//	p := bn254.FrFromUint64(6)
//	q := bn254.FrFromUint64(7)
//	bn254.ScalarMul(&p, &q) // p == 42
//
// The package level functions dispatch to the native host and only work in a
// zkvm build. Use New with another syscall.Dispatcher (for example the
// emulator) to run the same code elsewhere:
//
//	host, err := emulator.New()
//	if err != nil {
//	    return err
//	}
//	s := bn254.New(host)
//	s.Mul(&p, &q)
//
// # Safety
//
// None of the entry points check their operands. Every pointer must address
// a live, aligned, 32-byte field element for the whole call, and the operands
// of one call must not overlap. Violations are undefined behaviour.
package bn254
