package emulator

import (
	"math/big"
	"testing"
	"unsafe"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/scroll-tech/sp1-intrinsics/api/bn254"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

func newHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	h, err := New(opts...)
	require.NoError(t, err)
	return h
}

func rMinus(t *testing.T, k int64) bn254.Fr {
	t.Helper()
	v := new(big.Int).Sub(fr.Modulus(), big.NewInt(k))
	f, err := bn254.FrFromBytes(v.Bytes())
	require.NoError(t, err)
	return f
}

func randomFr(t *testing.T) bn254.Fr {
	t.Helper()
	var e fr.Element
	_, err := e.SetRandom()
	require.NoError(t, err)
	return bn254.FrFromElement(&e)
}

func catchPanic(f func()) (v any) {
	defer func() { v = recover() }()
	f()
	return nil
}

func TestScalarMul(t *testing.T) {
	h := newHost(t)

	t.Run("small", func(t *testing.T) {
		p, q := bn254.FrFromUint64(6), bn254.FrFromUint64(7)
		h.Dispatch(syscall.BN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))
		assert.Equal(t, bn254.FrFromUint64(42), p)
		assert.Equal(t, bn254.FrFromUint64(7), q, "q must be unchanged")
	})

	t.Run("wraps_modulo_r", func(t *testing.T) {
		// (r-1)^2 = 1 mod r
		p, q := rMinus(t, 1), rMinus(t, 1)
		h.Dispatch(syscall.BN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))
		assert.Equal(t, bn254.FrFromUint64(1), p)
	})

	t.Run("by_zero", func(t *testing.T) {
		p, q := randomFr(t), bn254.Fr{}
		h.Dispatch(syscall.BN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))
		assert.Equal(t, bn254.Fr{}, p)
	})

	t.Run("random_against_gnark", func(t *testing.T) {
		for i := 0; i < 16; i++ {
			p, q := randomFr(t), randomFr(t)
			x, y := p.Element(), q.Element()
			var want fr.Element
			want.Mul(&x, &y)

			origQ := q
			h.Dispatch(syscall.BN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))
			assert.Equal(t, bn254.FrFromElement(&want), p, "round %d", i)
			assert.Equal(t, origQ, q)
		}
	})
}

func TestScalarMac(t *testing.T) {
	h := newHost(t)

	t.Run("small", func(t *testing.T) {
		ret, a, b := bn254.FrFromUint64(1), bn254.FrFromUint64(6), bn254.FrFromUint64(7)
		syscall.Dispatch3(h, syscall.BN254ScalarMac, unsafe.Pointer(&ret), unsafe.Pointer(&a), unsafe.Pointer(&b))
		assert.Equal(t, bn254.FrFromUint64(43), ret)
		assert.Equal(t, bn254.FrFromUint64(6), a)
		assert.Equal(t, bn254.FrFromUint64(7), b)
	})

	t.Run("wraps_modulo_r", func(t *testing.T) {
		ret, one := rMinus(t, 1), bn254.FrFromUint64(1)
		a, b := one, one
		syscall.Dispatch3(h, syscall.BN254ScalarMac, unsafe.Pointer(&ret), unsafe.Pointer(&a), unsafe.Pointer(&b))
		assert.Equal(t, bn254.Fr{}, ret)
	})

	t.Run("random_against_gnark", func(t *testing.T) {
		for i := 0; i < 16; i++ {
			ret, a, b := randomFr(t), randomFr(t), randomFr(t)
			acc, x, y := ret.Element(), a.Element(), b.Element()
			var want fr.Element
			want.Mul(&x, &y)
			want.Add(&want, &acc)

			syscall.Dispatch3(h, syscall.BN254ScalarMac, unsafe.Pointer(&ret), unsafe.Pointer(&a), unsafe.Pointer(&b))
			assert.Equal(t, bn254.FrFromElement(&want), ret, "round %d", i)
		}
	})
}

func TestMemcpy(t *testing.T) {
	h := newHost(t)

	t.Run("copy64_disjoint", func(t *testing.T) {
		var src, dst memory.Block64
		for i := range src {
			src[i] = 0xAAAAAAAA
		}
		orig := src
		h.Dispatch(syscall.Memcpy64, unsafe.Pointer(&src), unsafe.Pointer(&dst))
		assert.Equal(t, orig, dst)
		assert.Equal(t, orig, src)
	})

	t.Run("copy32_overlap", func(t *testing.T) {
		buf := [12]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
		h.Dispatch(syscall.Memcpy32, unsafe.Pointer(&buf[0]), unsafe.Pointer(&buf[2]))
		assert.Equal(t, [12]uint32{1, 2, 1, 2, 3, 4, 5, 6, 7, 8, 11, 12}, buf)
	})
}

func TestLegacyNumbering(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := newHost(t, WithNumbering(syscall.NumberingLegacy), WithLogger(zap.New(core)))
	assert.Equal(t, syscall.NumberingLegacy, h.Table().Numbering())

	p, q := bn254.FrFromUint64(3), bn254.FrFromUint64(5)
	h.Dispatch(syscall.IDBN254ScalarMulLegacy, unsafe.Pointer(&p), unsafe.Pointer(&q))
	assert.Equal(t, bn254.FrFromUint64(15), p)

	v := catchPanic(func() {
		h.Dispatch(syscall.IDBN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))
	})
	require.IsType(t, &UnknownIDError{}, v)
	err := v.(*UnknownIDError)
	assert.Equal(t, syscall.IDBN254ScalarMul, err.ID)
	assert.Contains(t, err.Error(), "legacy")
	assert.Equal(t, bn254.FrFromUint64(15), p, "an unknown id must not touch memory")

	entries := logs.FilterMessage("unknown operation identifier").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "legacy", entries[0].ContextMap()["numbering"])
}

func TestUnknownNumbering(t *testing.T) {
	_, err := New(WithNumbering(syscall.Numbering(42)))
	assert.ErrorIs(t, err, syscall.ErrUnknownNumbering)
}

func TestCountsAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newHost(t, WithRegisterer(reg))

	var src, dst memory.Block32
	for i := 0; i < 3; i++ {
		h.Dispatch(syscall.Memcpy32, unsafe.Pointer(&src), unsafe.Pointer(&dst))
	}
	p, q := bn254.FrFromUint64(2), bn254.FrFromUint64(2)
	h.Dispatch(syscall.BN254ScalarMul, unsafe.Pointer(&p), unsafe.Pointer(&q))

	assert.Equal(t, uint64(3), h.Count(syscall.OpMemcpy32))
	assert.Equal(t, uint64(1), h.Count(syscall.OpBN254ScalarMul))
	assert.Equal(t, uint64(0), h.Count(syscall.OpBN254ScalarMac))
	assert.Equal(t, uint64(0), h.Count(syscall.Op(99)))

	assert.Equal(t, float64(3), testutil.ToFloat64(h.dispatches.WithLabelValues("MEMCPY_32")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.dispatches.WithLabelValues("BN254_SCALAR_MUL")))

	_, err := New(WithRegisterer(reg))
	assert.Error(t, err, "registering the same collector twice must fail")
}

func TestDebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHost(t, WithLogger(zap.New(core)))

	var src, dst memory.Block64
	h.Dispatch(syscall.Memcpy64, unsafe.Pointer(&src), unsafe.Pointer(&dst))

	entries := logs.FilterMessage("dispatch").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "MEMCPY_64", entries[0].ContextMap()["op"])
}
