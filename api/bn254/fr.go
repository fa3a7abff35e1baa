package bn254

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// FrWords is the number of 32-bit words in an Fr.
const FrWords = 8

// FrSize is the byte size of an Fr.
const FrSize = 4 * FrWords

// Fr is an element of the BN254 scalar field in the layout the host reads
// and writes: little-endian 32-bit words, least significant word first.
type Fr [FrWords]uint32

// FrFromUint64 returns v as a field element.
func FrFromUint64(v uint64) Fr {
	return Fr{uint32(v), uint32(v >> 32)}
}

// FrFromBytes decodes a big-endian encoding of at most FrSize bytes. The
// value must be smaller than the field modulus.
func FrFromBytes(be []byte) (Fr, error) {
	if len(be) > FrSize {
		return Fr{}, errors.Errorf("field element encoding is %d bytes, want at most %d", len(be), FrSize)
	}
	if new(big.Int).SetBytes(be).Cmp(fr.Modulus()) >= 0 {
		return Fr{}, errors.New("field element is not reduced modulo r")
	}
	var buf [FrSize]byte
	copy(buf[FrSize-len(be):], be)
	return frFromArray(&buf), nil
}

// FrFromElement converts a gnark-crypto element.
func FrFromElement(e *fr.Element) Fr {
	buf := e.Bytes()
	return frFromArray(&buf)
}

func frFromArray(be *[FrSize]byte) Fr {
	var f Fr
	for i := range f {
		off := FrSize - 4*(i+1)
		f[i] = binary.BigEndian.Uint32(be[off : off+4])
	}
	return f
}

// Bytes returns the big-endian encoding of f.
func (f *Fr) Bytes() [FrSize]byte {
	var be [FrSize]byte
	for i, w := range f {
		off := FrSize - 4*(i+1)
		binary.BigEndian.PutUint32(be[off:off+4], w)
	}
	return be
}

// Element converts f to a gnark-crypto element, reducing it if needed.
func (f *Fr) Element() fr.Element {
	be := f.Bytes()
	var e fr.Element
	e.SetBytes(be[:])
	return e
}

// Equal returns true if f and g hold the same words.
// Returns false if either is nil.
func (f *Fr) Equal(g *Fr) bool {
	if f == nil || g == nil {
		return false
	}
	return *f == *g
}

func (f *Fr) String() string {
	if f == nil {
		return "<nil fr>"
	}
	be := f.Bytes()
	return fmt.Sprintf("Fr(%x)", be[:])
}
