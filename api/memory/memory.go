package memory

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// Block sizes in bytes.
const (
	Size32 = 32
	Size64 = 64
)

// Block32 is a 32-byte block of words.
type Block32 [Size32 / 4]uint32

// Block64 is a 64-byte block of words.
type Block64 [Size64 / 4]uint32

// Mode selects where a block copy executes.
type Mode int

const (
	ModeNative Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	case ModeLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "native":
		return ModeNative, nil
	case "local":
		return ModeLocal, nil
	default:
		return 0, errors.Errorf("unknown memcpy mode %q", s)
	}
}

// Copier performs the fixed-size copies. Operands follow the host order,
// source first.
//
// src must be valid for reads of the block size and stay valid while dst is
// written; dst must be valid for writes of the block size and stay valid
// while src is read. Both must be aligned. They may overlap.
type Copier interface {
	Copy32(src, dst unsafe.Pointer)
	Copy64(src, dst unsafe.Pointer)
}

// NewCopier returns the Copier for mode. d is only used by ModeNative.
func NewCopier(mode Mode, d syscall.Dispatcher) (Copier, error) {
	switch mode {
	case ModeNative:
		if d == nil {
			return nil, errors.New("native memcpy needs a dispatcher")
		}
		return nativeCopier{d: d}, nil
	case ModeLocal:
		return localCopier{}, nil
	default:
		return nil, errors.Errorf("unknown memcpy mode %d", int(mode))
	}
}

// Local returns the in-process Copier.
func Local() Copier { return localCopier{} }

type nativeCopier struct {
	d syscall.Dispatcher
}

func (c nativeCopier) Copy32(src, dst unsafe.Pointer) {
	c.d.Dispatch(syscall.Memcpy32, src, dst)
}

func (c nativeCopier) Copy64(src, dst unsafe.Pointer) {
	c.d.Dispatch(syscall.Memcpy64, src, dst)
}

type localCopier struct{}

func (localCopier) Copy32(src, dst unsafe.Pointer) { move(dst, src, Size32) }

func (localCopier) Copy64(src, dst unsafe.Pointer) { move(dst, src, Size64) }

// move copies n bytes with memmove semantics; the builtin copy handles
// overlapping slices.
func move(dst, src unsafe.Pointer, n int) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}

// Default returns the Copier of DefaultMode. The branch is on a constant and
// is resolved at compile time.
func Default() Copier {
	if DefaultMode == ModeNative {
		return nativeCopier{d: syscall.Native()}
	}
	return localCopier{}
}

// Memcpy32 copies 32 bytes from src to dst with the default strategy. The
// regions may overlap.
func Memcpy32(src, dst *Block32) {
	Default().Copy32(unsafe.Pointer(src), unsafe.Pointer(dst))
}

// Memcpy64 copies 64 bytes from src to dst with the default strategy. The
// regions may overlap.
func Memcpy64(src, dst *Block64) {
	Default().Copy64(unsafe.Pointer(src), unsafe.Pointer(dst))
}

// Memcpy64Of copies 64 bytes from src to dst with the default strategy.
//
// The copy is always 64 bytes, whatever the size of T. A T smaller than 64
// bytes means the copy reads and writes past the values; a larger T is only
// partly copied. Callers must only instantiate it with types whose first 64
// bytes are what they mean to move.
func Memcpy64Of[T any](src, dst *T) {
	Default().Copy64(unsafe.Pointer(src), unsafe.Pointer(dst))
}
