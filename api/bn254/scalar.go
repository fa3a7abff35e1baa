package bn254

import (
	"unsafe"

	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// Scalar dispatches the scalar field operations to one host using the
// identifiers of one numbering.
type Scalar struct {
	d   syscall.Dispatcher
	mul syscall.ID
	mac syscall.ID
}

// New returns a Scalar that uses the active numbering.
func New(d syscall.Dispatcher) *Scalar {
	return NewWithTable(d, syscall.ActiveTable())
}

// NewWithTable returns a Scalar that uses the identifiers of t. It is meant
// for emulated hosts and tooling that target a specific numbering. The native
// host only answers syscall.ActiveNumbering, so pairing syscall.Native with
// any other table panics.
func NewWithTable(d syscall.Dispatcher, t *syscall.Table) *Scalar {
	if err := syscall.CheckNumbering(d, t); err != nil {
		panic(err)
	}
	return &Scalar{
		d:   d,
		mul: t.ID(syscall.OpBN254ScalarMul),
		mac: t.ID(syscall.OpBN254ScalarMac),
	}
}

// Mul computes p = p * q in place. See MulPtr for the operand contract.
func (s *Scalar) Mul(p, q *Fr) {
	s.MulPtr(unsafe.Pointer(p), unsafe.Pointer(q))
}

// MulPtr computes p = p * q in place.
//
// p must be valid for writes of an Fr and stay valid while q is read. q must
// be valid for reads of an Fr. Both must be aligned and must not overlap.
func (s *Scalar) MulPtr(p, q unsafe.Pointer) {
	s.d.Dispatch(s.mul, p, q)
}

// Mac computes ret = ret + a * b in place. See MacPtr for the operand
// contract.
func (s *Scalar) Mac(ret, a, b *Fr) {
	s.MacPtr(unsafe.Pointer(ret), unsafe.Pointer(a), unsafe.Pointer(b))
}

// MacPtr computes ret = ret + a * b in place.
//
// ret must be valid for writes of an Fr and stay valid while a and b are
// read. a and b must be valid for reads of an Fr. All three must be aligned
// and pairwise non-overlapping.
func (s *Scalar) MacPtr(ret, a, b unsafe.Pointer) {
	syscall.Dispatch3(s.d, s.mac, ret, a, b)
}

// ScalarMul computes p = p * q on the native host.
func ScalarMul(p, q *Fr) {
	ScalarMulPtr(unsafe.Pointer(p), unsafe.Pointer(q))
}

// ScalarMulPtr is ScalarMul for operands the caller lays out itself. The
// contract of Scalar.MulPtr applies.
func ScalarMulPtr(p, q unsafe.Pointer) {
	syscall.Native().Dispatch(syscall.BN254ScalarMul, p, q)
}

// ScalarMac computes ret = ret + a * b on the native host.
func ScalarMac(ret, a, b *Fr) {
	ScalarMacPtr(unsafe.Pointer(ret), unsafe.Pointer(a), unsafe.Pointer(b))
}

// ScalarMacPtr is ScalarMac for operands the caller lays out itself. The
// contract of Scalar.MacPtr applies.
func ScalarMacPtr(ret, a, b unsafe.Pointer) {
	syscall.Dispatch3(syscall.Native(), syscall.BN254ScalarMac, ret, a, b)
}
