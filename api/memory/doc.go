// Package memory exposes the host-accelerated fixed-size block copies.
//
// MEMCPY_32 and MEMCPY_64 copy exactly 32 or 64 bytes from a source address
// to a destination address. The regions may overlap, including the trivial
// case where source and destination are the same address. Note the operand
// order: source first, destination second, as the host expects them.
//
// A copy runs under one of two strategies, chosen at build time:
//
//   - ModeNative hands the copy to the host through a syscall.Dispatcher.
//   - ModeLocal moves the bytes in-process.
//
// Both produce identical memory for every valid input. DefaultMode is native
// in zkvm builds and local otherwise; the sp1_memcpy_local build tag forces
// the local strategy in zkvm builds too. Code that needs a specific strategy
// takes a Copier from NewCopier instead of using the package functions.
//
// If the copied bytes hold values that must have a single owner (for example
// a struct containing pointers that the program frees), keeping both the
// source and the destination in use afterwards can break that ownership.
// That is the caller's concern; this package copies bits.
package memory
