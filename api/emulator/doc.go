// Package emulator is a software implementation of the zkVM host.
//
// A Host answers the same operation identifiers a real host does and applies
// them to the operand memory of the calling process, so code written against
// syscall.Dispatcher can run and be tested on any machine:
//
//	host, err := emulator.New(emulator.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	s := bn254.New(host)
//	s.Mul(&p, &q)
//
// The BN254 scalar arithmetic uses gnark-crypto. Block copies use memmove
// semantics.
//
// A real host has undefined behaviour for an identifier it does not know. The
// emulator logs it and panics with an *UnknownIDError instead.
//
// Every dispatch increments the sp1_emulator_dispatch_total counter (label
// op) when a prometheus.Registerer is supplied with WithRegisterer.
package emulator
