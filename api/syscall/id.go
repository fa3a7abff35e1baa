package syscall

import "fmt"

// ID is an operation identifier understood by the host.
type ID uint32

const (
	domainMask ID = 0xFFFF_FF00
	codeMask   ID = 0x0000_00FF
)

// Identifier domains.
const (
	DomainMemory      ID = 0x00_00_01_00
	DomainBN254Scalar ID = 0x00_01_01_00
)

// Domain returns the upper three bytes of id.
func (id ID) Domain() ID { return id & domainMask }

// Code returns the operation code within the domain.
func (id ID) Code() uint8 { return uint8(id & codeMask) }

// String renders id in hex, followed by its operation name when id belongs
// to the active numbering.
func (id ID) String() string {
	if op, ok := activeOp(id); ok {
		return fmt.Sprintf("0x%08x(%s)", uint32(id), op)
	}
	return fmt.Sprintf("0x%08x", uint32(id))
}

// DomainName returns a short name for a domain prefix.
func DomainName(domain ID) string {
	switch domain {
	case DomainMemory:
		return "memory"
	case DomainBN254Scalar:
		return "bn254-scalar"
	default:
		return "unknown"
	}
}
