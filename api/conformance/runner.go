package conformance

import (
	"context"
	"slices"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scroll-tech/sp1-intrinsics/api/bn254"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// Backend is one host plus one copy strategy under test.
type Backend struct {
	Name   string
	scalar *bn254.Scalar
	copier memory.Copier
}

// NewBackend binds d, using the identifiers of t, and the copy strategy mode.
func NewBackend(name string, d syscall.Dispatcher, t *syscall.Table, mode memory.Mode) (Backend, error) {
	if name == "" {
		return Backend{}, errors.New("backend name is empty")
	}
	if d == nil || t == nil {
		return Backend{}, errors.Errorf("backend %s: dispatcher and table are required", name)
	}
	if err := syscall.CheckNumbering(d, t); err != nil {
		return Backend{}, errors.Wrapf(err, "backend %s", name)
	}
	copier, err := memory.NewCopier(mode, d)
	if err != nil {
		return Backend{}, errors.Wrapf(err, "backend %s", name)
	}
	return Backend{Name: name, scalar: bn254.NewWithTable(d, t), copier: copier}, nil
}

func operandWords(op syscall.Op) []int {
	switch op {
	case syscall.OpMemcpy32:
		return []int{memory.Size32 / 4, memory.Size32 / 4}
	case syscall.OpMemcpy64:
		return []int{memory.Size64 / 4, memory.Size64 / 4}
	case syscall.OpBN254ScalarMul:
		return []int{bn254.FrWords, bn254.FrWords}
	case syscall.OpBN254ScalarMac:
		return []int{bn254.FrWords, bn254.FrWords, bn254.FrWords}
	default:
		return nil
	}
}

func (c Case) validate() error {
	sizes := operandWords(c.Op)
	if sizes == nil {
		return errors.Errorf("case %s: unsupported operation %s", c.Name, c.Op)
	}
	if len(c.Args) != len(sizes) {
		return errors.Errorf("case %s: %s takes %d operands, got %d", c.Name, c.Op, len(sizes), len(c.Args))
	}
	for i, off := range c.Args {
		if off < 0 || off+sizes[i] > len(c.Mem) {
			return errors.Errorf("case %s: operand %d at word %d does not fit in %d words", c.Name, i, off, len(c.Mem))
		}
	}
	if len(c.Want) != len(c.Mem) {
		return errors.Errorf("case %s: expected image has %d words, memory has %d", c.Name, len(c.Want), len(c.Mem))
	}
	return nil
}

func (b Backend) execute(c Case) (mem []uint32, err error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			mem, err = nil, errors.Errorf("%s panicked: %v", c.Op, r)
		}
	}()

	mem = slices.Clone(c.Mem)
	at := func(i int) unsafe.Pointer { return unsafe.Pointer(&mem[c.Args[i]]) }
	switch c.Op {
	case syscall.OpMemcpy32:
		b.copier.Copy32(at(0), at(1))
	case syscall.OpMemcpy64:
		b.copier.Copy64(at(0), at(1))
	case syscall.OpBN254ScalarMul:
		b.scalar.MulPtr(at(0), at(1))
	case syscall.OpBN254ScalarMac:
		b.scalar.MacPtr(at(0), at(1), at(2))
	}
	return mem, nil
}

// Result is the outcome of one case on one backend. Err is nil on success.
type Result struct {
	Backend string
	Case    string
	Err     error
}

// Mismatch records two backends leaving different memory for the same case.
type Mismatch struct {
	Case     string
	Backends [2]string
	Word     int
}

// Report collects the results of a run.
type Report struct {
	Results    []Result
	Mismatches []Mismatch
}

// Failures returns the results with an error.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Failed reports whether any case failed or any backends disagreed.
func (r *Report) Failed() bool {
	return len(r.Failures()) > 0 || len(r.Mismatches) > 0
}

// Runner executes cases on a fixed set of backends.
type Runner struct {
	backends []Backend
	logger   *zap.Logger
}

// NewRunner returns a Runner over backends. Backend names must be unique.
func NewRunner(logger *zap.Logger, backends ...Backend) (*Runner, error) {
	if len(backends) == 0 {
		return nil, errors.New("conformance runner needs at least one backend")
	}
	seen := make(map[string]bool, len(backends))
	for _, b := range backends {
		if seen[b.Name] {
			return nil, errors.Errorf("duplicate backend name %q", b.Name)
		}
		seen[b.Name] = true
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{backends: backends, logger: logger}, nil
}

func firstDiff(a, b []uint32) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

// Run executes every case on every backend. Backends run concurrently, each
// on private copies of the case memory; cases within a backend run in order.
// The returned error is only set when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	outs := make([][][]uint32, len(r.backends))
	results := make([][]Result, len(r.backends))

	g, ctx := errgroup.WithContext(ctx)
	for i, b := range r.backends {
		i, b := i, b
		outs[i] = make([][]uint32, len(cases))
		results[i] = make([]Result, len(cases))
		g.Go(func() error {
			log := r.logger.With(zap.String("backend", b.Name))
			for j, c := range cases {
				if err := ctx.Err(); err != nil {
					return err
				}
				mem, err := b.execute(c)
				if err == nil {
					if k := firstDiff(mem, c.Want); k >= 0 {
						err = errors.Errorf("word %d is 0x%08x, want 0x%08x", k, mem[k], c.Want[k])
					}
				}
				outs[i][j] = mem
				results[i][j] = Result{Backend: b.Name, Case: c.Name, Err: err}
				if err != nil {
					log.Warn("case failed", zap.String("case", c.Name), zap.Error(err))
				} else {
					log.Debug("case passed", zap.String("case", c.Name))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "conformance run interrupted")
	}

	report := &Report{}
	for i := range r.backends {
		report.Results = append(report.Results, results[i]...)
	}
	for j, c := range cases {
		for i := 1; i < len(r.backends); i++ {
			a, b := outs[0][j], outs[i][j]
			if a == nil || b == nil {
				continue
			}
			if k := firstDiff(a, b); k >= 0 {
				report.Mismatches = append(report.Mismatches, Mismatch{
					Case:     c.Name,
					Backends: [2]string{r.backends[0].Name, r.backends[i].Name},
					Word:     k,
				})
			}
		}
	}
	r.logger.Info("conformance run finished",
		zap.Int("backends", len(r.backends)),
		zap.Int("cases", len(cases)),
		zap.Int("failures", len(report.Failures())),
		zap.Int("mismatches", len(report.Mismatches)))
	return report, nil
}
