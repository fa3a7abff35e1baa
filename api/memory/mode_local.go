//go:build !zkvm || !riscv64 || sp1_memcpy_local

package memory

// DefaultMode is the strategy used by the package level functions.
const DefaultMode = ModeLocal
