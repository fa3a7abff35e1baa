package conformance

import (
	"context"
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/scroll-tech/sp1-intrinsics/api/emulator"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

func emulatorBackends(t *testing.T, n syscall.Numbering) []Backend {
	t.Helper()
	host, err := emulator.New(emulator.WithNumbering(n))
	require.NoError(t, err)

	native, err := NewBackend("emulator/native", host, host.Table(), memory.ModeNative)
	require.NoError(t, err)
	local, err := NewBackend("emulator/local", host, host.Table(), memory.ModeLocal)
	require.NoError(t, err)
	return []Backend{native, local}
}

func TestVectorsPassOnEmulator(t *testing.T) {
	for _, n := range []syscall.Numbering{syscall.NumberingCurrent, syscall.NumberingLegacy} {
		t.Run(n.String(), func(t *testing.T) {
			runner, err := NewRunner(zap.NewNop(), emulatorBackends(t, n)...)
			require.NoError(t, err)

			report, err := runner.Run(context.Background(), Vectors())
			require.NoError(t, err)
			assert.Empty(t, report.Failures())
			assert.Empty(t, report.Mismatches)
			assert.False(t, report.Failed())
			assert.Len(t, report.Results, 2*len(Vectors()))
		})
	}
}

func TestVectorsCoverEveryOperation(t *testing.T) {
	seen := make(map[syscall.Op]bool)
	names := make(map[string]bool)
	for _, c := range Vectors() {
		require.NoError(t, c.validate(), c.Name)
		assert.False(t, names[c.Name], "duplicate case name %s", c.Name)
		names[c.Name] = true
		seen[c.Op] = true
	}
	for _, op := range syscall.Ops() {
		assert.True(t, seen[op], "no vector for %s", op)
	}
}

func TestVectorScenarios(t *testing.T) {
	byName := make(map[string]Case)
	for _, c := range Vectors() {
		byName[c.Name] = c
	}

	t.Run("aa_into_zero", func(t *testing.T) {
		c := byName["memcpy64/0xaa_into_zero"]
		for i := 0; i < 16; i++ {
			assert.Equal(t, uint32(0xAAAAAAAA), c.Mem[i])
			assert.Equal(t, uint32(0), c.Mem[16+i])
		}
		assert.Equal(t, c.Mem[:16], c.Want[:16], "source must be unchanged")
		assert.Equal(t, c.Mem[:16], c.Want[16:], "destination must equal the source")
	})

	t.Run("self_overlap_is_noop", func(t *testing.T) {
		for _, name := range []string{"memcpy32/self", "memcpy64/self"} {
			c := byName[name]
			assert.Equal(t, c.Mem, c.Want, name)
		}
	})

	t.Run("mul_small", func(t *testing.T) {
		c := byName["bn254_mul/small"]
		assert.Equal(t, uint32(42), c.Want[0])
		assert.Equal(t, c.Mem[8:], c.Want[8:], "q must be unchanged")
	})

	t.Run("mac_small", func(t *testing.T) {
		c := byName["bn254_mac/small"]
		assert.Equal(t, uint32(43), c.Want[0])
	})

	t.Run("mac_wraps", func(t *testing.T) {
		c := byName["bn254_mac/wraps_to_zero"]
		assert.Equal(t, make([]uint32, 8), c.Want[:8])
	})
}

func TestRunnerReportsBrokenBackend(t *testing.T) {
	host, err := emulator.New()
	require.NoError(t, err)

	// A host that silently ignores the multiply-accumulate.
	broken := syscall.DispatcherFunc(func(id syscall.ID, arg0, arg1 unsafe.Pointer) {
		if id == syscall.BN254ScalarMac {
			return
		}
		host.Dispatch(id, arg0, arg1)
	})

	good, err := NewBackend("good", host, host.Table(), memory.ModeLocal)
	require.NoError(t, err)
	bad, err := NewBackend("bad", broken, syscall.ActiveTable(), memory.ModeNative)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	runner, err := NewRunner(zap.New(core), good, bad)
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), Vectors())
	require.NoError(t, err)
	require.True(t, report.Failed())

	for _, f := range report.Failures() {
		assert.Equal(t, "bad", f.Backend)
		assert.True(t, strings.HasPrefix(f.Case, "bn254_mac/"), f.Case)
	}
	assert.NotEmpty(t, report.Mismatches)
	for _, m := range report.Mismatches {
		assert.Equal(t, [2]string{"good", "bad"}, m.Backends)
	}
	assert.Equal(t, len(report.Failures()), logs.FilterMessage("case failed").Len())
}

func TestRunnerRecoversPanics(t *testing.T) {
	host, err := emulator.New(emulator.WithNumbering(syscall.NumberingLegacy))
	require.NoError(t, err)

	current, err := syscall.NewTable(syscall.NumberingCurrent)
	require.NoError(t, err)

	// Current ids against a legacy host: the BN254 cases must panic inside
	// the emulator and come back as failed results.
	b, err := NewBackend("mismatched", host, current, memory.ModeNative)
	require.NoError(t, err)
	runner, err := NewRunner(nil, b)
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), Vectors())
	require.NoError(t, err)

	for _, res := range report.Results {
		if strings.HasPrefix(res.Case, "bn254_") {
			require.Error(t, res.Err, res.Case)
			assert.Contains(t, res.Err.Error(), "panicked")
		} else {
			assert.NoError(t, res.Err, res.Case)
		}
	}
}

func TestRunnerCancelled(t *testing.T) {
	runner, err := NewRunner(nil, emulatorBackends(t, syscall.ActiveNumbering)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx, Vectors())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerErrors(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)

	backends := emulatorBackends(t, syscall.ActiveNumbering)
	_, err = NewRunner(nil, backends[0], backends[0])
	assert.Error(t, err)
}

func TestNewBackendErrors(t *testing.T) {
	host, err := emulator.New()
	require.NoError(t, err)

	_, err = NewBackend("", host, host.Table(), memory.ModeLocal)
	assert.Error(t, err)
	_, err = NewBackend("nil-table", host, nil, memory.ModeLocal)
	assert.Error(t, err)
	_, err = NewBackend("bad-mode", host, host.Table(), memory.Mode(5))
	assert.Error(t, err)

	inactive := syscall.NumberingLegacy
	if syscall.ActiveNumbering == syscall.NumberingLegacy {
		inactive = syscall.NumberingCurrent
	}
	other, err := syscall.NewTable(inactive)
	require.NoError(t, err)
	_, err = NewBackend("native-inactive", syscall.Native(), other, memory.ModeLocal)
	assert.Error(t, err, "the native host only answers the active numbering")
}

func TestCaseValidate(t *testing.T) {
	good := Vectors()[0]

	t.Run("operand_out_of_range", func(t *testing.T) {
		c := good
		c.Args = []int{0, 20}
		assert.Error(t, c.validate())
	})

	t.Run("wrong_arity", func(t *testing.T) {
		c := good
		c.Args = []int{0}
		assert.Error(t, c.validate())
	})

	t.Run("want_length", func(t *testing.T) {
		c := good
		c.Want = slices.Clone(c.Want[:4])
		assert.Error(t, c.validate())
	})

	t.Run("unknown_op", func(t *testing.T) {
		c := good
		c.Op = syscall.Op(77)
		assert.Error(t, c.validate())
	})
}
