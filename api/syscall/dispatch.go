package syscall

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/scroll-tech/sp1-intrinsics/internal/ecall"
)

// Dispatcher hands one operation to the host and returns once the host has
// applied it to the operand memory.
//
// Implementations must not validate id or the operands. A call with an
// identifier the host does not know, or with invalid operand memory, has
// undefined behaviour.
type Dispatcher interface {
	Dispatch(id ID, arg0, arg1 unsafe.Pointer)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(id ID, arg0, arg1 unsafe.Pointer)

// Dispatch calls f(id, arg0, arg1).
func (f DispatcherFunc) Dispatch(id ID, arg0, arg1 unsafe.Pointer) { f(id, arg0, arg1) }

// NativeAvailable reports whether Native reaches a real host in this build.
const NativeAvailable = ecall.Available

// ErrNativeUnavailable is the panic value of the native dispatcher on targets
// built without the zkvm tag.
var ErrNativeUnavailable = ecall.ErrUnavailable

type native struct{}

func (native) Dispatch(id ID, arg0, arg1 unsafe.Pointer) {
	ecall.Call(uint32(id), arg0, arg1)
}

// Native returns the ECALL dispatcher.
func Native() Dispatcher { return native{} }

// IsNative reports whether d is the ECALL dispatcher.
func IsNative(d Dispatcher) bool {
	_, ok := d.(native)
	return ok
}

// CheckNumbering returns an error if t would send identifiers of a
// numbering other than ActiveNumbering through the native dispatcher. Any
// table is fine for other dispatchers.
func CheckNumbering(d Dispatcher, t *Table) error {
	if IsNative(d) && t.Numbering() != ActiveNumbering {
		return errors.Errorf("native host uses the %s numbering, table is %s", ActiveNumbering, t.Numbering())
	}
	return nil
}

// Dispatch3 sends a three-operand operation through the two operand slots:
// ret goes in the first slot and the address of the pair {a, b} in the
// second.
//
// The pair is two pointer-sized words, a first. On riscv64, the only target
// with a native host, the host must read it as two 64-bit little-endian
// addresses; a host that expects two 32-bit guest words is not compatible.
func Dispatch3(d Dispatcher, id ID, ret, a, b unsafe.Pointer) {
	operands := [2]unsafe.Pointer{a, b}
	d.Dispatch(id, ret, unsafe.Pointer(&operands))
}

// Operands unpacks the second slot of a Dispatch3 call. It is meant for host
// implementations.
func Operands(arg1 unsafe.Pointer) (a, b unsafe.Pointer) {
	pair := (*[2]unsafe.Pointer)(arg1)
	return pair[0], pair[1]
}
