package conformance

import (
	"math/big"
	"slices"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/scroll-tech/sp1-intrinsics/api/bn254"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// Case is one conformance vector.
type Case struct {
	Name string
	Op   syscall.Op
	// Mem is the memory image before the operation, in words.
	Mem []uint32
	// Args are word offsets into Mem: src, dst for the copies; p, q for
	// BN254_SCALAR_MUL; ret, a, b for BN254_SCALAR_MAC.
	Args []int
	// Want is the memory image after the operation.
	Want []uint32
}

func words(n int, f func(i int) uint32) []uint32 {
	w := make([]uint32, n)
	for i := range w {
		w[i] = f(i)
	}
	return w
}

func counting(n int) []uint32 {
	return words(n, func(i int) uint32 { return 0x01010101 * uint32(i+1) })
}

// copyCase builds a copy vector over a counting image; the expected image
// is a memmove of the source words onto the destination words.
func copyCase(name string, op syscall.Op, size, memWords, src, dst int) Case {
	mem := counting(memWords)
	want := slices.Clone(mem)
	n := size / 4
	copy(want[dst:dst+n], mem[src:src+n])
	return Case{Name: name, Op: op, Mem: mem, Args: []int{src, dst}, Want: want}
}

func frWords(f bn254.Fr) []uint32 { return f[:] }

func frOfBig(v *big.Int) bn254.Fr {
	var e fr.Element
	e.SetBigInt(v)
	return bn254.FrFromElement(&e)
}

// fieldImage lays out the operands back to back, one Fr each.
func fieldImage(operands ...bn254.Fr) ([]uint32, []int) {
	mem := make([]uint32, 0, len(operands)*bn254.FrWords)
	args := make([]int, 0, len(operands))
	for _, f := range operands {
		args = append(args, len(mem))
		mem = append(mem, frWords(f)...)
	}
	return mem, args
}

func mulCase(name string, p, q bn254.Fr) Case {
	mem, args := fieldImage(p, q)
	x, y := p.Element(), q.Element()
	x.Mul(&x, &y)
	want, _ := fieldImage(bn254.FrFromElement(&x), q)
	return Case{Name: name, Op: syscall.OpBN254ScalarMul, Mem: mem, Args: args, Want: want}
}

func macCase(name string, ret, a, b bn254.Fr) Case {
	mem, args := fieldImage(ret, a, b)
	acc, x, y := ret.Element(), a.Element(), b.Element()
	x.Mul(&x, &y)
	acc.Add(&acc, &x)
	want, _ := fieldImage(bn254.FrFromElement(&acc), a, b)
	return Case{Name: name, Op: syscall.OpBN254ScalarMac, Mem: mem, Args: args, Want: want}
}

// Vectors returns the conformance cases for every operation.
func Vectors() []Case {
	rMinus1 := frOfBig(new(big.Int).Sub(fr.Modulus(), big.NewInt(1)))
	halfR := frOfBig(new(big.Int).Rsh(fr.Modulus(), 1))
	one := bn254.FrFromUint64(1)

	aa := func(i int) uint32 { return 0xAAAAAAAA }
	zero := func(i int) uint32 { return 0 }
	aaDisjoint := Case{
		Name: "memcpy64/0xaa_into_zero",
		Op:   syscall.OpMemcpy64,
		Mem:  append(words(16, aa), words(16, zero)...),
		Args: []int{0, 16},
		Want: words(32, aa),
	}

	return []Case{
		aaDisjoint,
		copyCase("memcpy32/disjoint", syscall.OpMemcpy32, memory.Size32, 16, 0, 8),
		copyCase("memcpy32/self", syscall.OpMemcpy32, memory.Size32, 8, 0, 0),
		copyCase("memcpy32/forward_overlap", syscall.OpMemcpy32, memory.Size32, 12, 0, 3),
		copyCase("memcpy32/backward_overlap", syscall.OpMemcpy32, memory.Size32, 12, 3, 0),
		copyCase("memcpy64/disjoint", syscall.OpMemcpy64, memory.Size64, 40, 2, 20),
		copyCase("memcpy64/self", syscall.OpMemcpy64, memory.Size64, 16, 0, 0),
		copyCase("memcpy64/forward_overlap", syscall.OpMemcpy64, memory.Size64, 24, 0, 4),
		copyCase("memcpy64/backward_overlap", syscall.OpMemcpy64, memory.Size64, 24, 4, 0),
		copyCase("memcpy64/overlap_by_one_word", syscall.OpMemcpy64, memory.Size64, 17, 0, 1),

		mulCase("bn254_mul/small", bn254.FrFromUint64(6), bn254.FrFromUint64(7)),
		mulCase("bn254_mul/by_zero", halfR, bn254.Fr{}),
		mulCase("bn254_mul/by_one", halfR, one),
		mulCase("bn254_mul/minus_one_squared", rMinus1, rMinus1),
		mulCase("bn254_mul/wide", halfR, halfR),

		macCase("bn254_mac/small", one, bn254.FrFromUint64(6), bn254.FrFromUint64(7)),
		macCase("bn254_mac/wraps_to_zero", rMinus1, one, one),
		macCase("bn254_mac/zero_product", halfR, bn254.Fr{}, rMinus1),
		macCase("bn254_mac/wide", halfR, halfR, rMinus1),
	}
}
