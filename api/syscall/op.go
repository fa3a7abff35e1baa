package syscall

import "github.com/pkg/errors"

// Op names an accelerated operation independently of its numeric identifier.
type Op uint8

const (
	OpMemcpy32 Op = iota
	OpMemcpy64
	OpBN254ScalarMul
	OpBN254ScalarMac

	numOps
)

var opNames = [numOps]string{
	OpMemcpy32:       "MEMCPY_32",
	OpMemcpy64:       "MEMCPY_64",
	OpBN254ScalarMul: "BN254_SCALAR_MUL",
	OpBN254ScalarMac: "BN254_SCALAR_MAC",
}

func (op Op) String() string {
	if op < numOps {
		return opNames[op]
	}
	return "UNKNOWN_OP"
}

// Ops returns every logical operation in declaration order.
func Ops() []Op {
	ops := make([]Op, 0, numOps)
	for op := Op(0); op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOp is the inverse of Op.String.
func ParseOp(name string) (Op, error) {
	for op, n := range opNames {
		if n == name {
			return Op(op), nil
		}
	}
	return 0, errors.Errorf("unknown operation %q", name)
}
