//go:build sp1_legacy_ids

package syscall

// ActiveNumbering is the identifier space compiled into this build.
const ActiveNumbering = NumberingLegacy

// Active BN254 scalar identifiers.
const (
	BN254ScalarMul = IDBN254ScalarMulLegacy
	BN254ScalarMac = IDBN254ScalarMacLegacy
)
