// Package conformance checks that a host answers every accelerated operation
// correctly and that different hosts and copy strategies agree.
//
// Vectors returns a fixed set of cases. Each case is a small memory image,
// the operation to run, the word offsets of its operands inside the image,
// and the image expected afterwards. A Runner executes the cases on several
// backends at once, each backend working on its own copy of the image, and
// reports wrong results as well as backends that disagree with each other.
//
//	host, _ := emulator.New()
//	native, _ := conformance.NewBackend("emulator/native", host, host.Table(), memory.ModeNative)
//	local, _ := conformance.NewBackend("emulator/local", host, host.Table(), memory.ModeLocal)
//	runner, _ := conformance.NewRunner(logger, native, local)
//	report, err := runner.Run(ctx, conformance.Vectors())
//
// This package is intended for tests and tooling only.
package conformance
