package emulator

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/scroll-tech/sp1-intrinsics/api/bn254"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// UnknownIDError is the panic value for an identifier outside the host's
// numbering.
type UnknownIDError struct {
	ID        syscall.ID
	Numbering syscall.Numbering
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("emulator: %s is not an operation of the %s numbering", e.ID, e.Numbering)
}

// Host is a software zkVM host. It is safe to share between goroutines as
// long as concurrent dispatches do not touch the same operand memory.
type Host struct {
	numbering  syscall.Numbering
	table      *syscall.Table
	logger     *zap.Logger
	registerer prometheus.Registerer
	dispatches *prometheus.CounterVec
	counts     map[syscall.Op]*atomic.Uint64
}

// Option configures a Host.
type Option func(*Host)

// WithNumbering selects the identifier space the host answers.
// The default is syscall.ActiveNumbering.
func WithNumbering(n syscall.Numbering) Option {
	return func(h *Host) { h.numbering = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithRegisterer registers the dispatch counter with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(h *Host) { h.registerer = r }
}

// New returns a Host.
func New(opts ...Option) (*Host, error) {
	h := &Host{
		numbering: syscall.ActiveNumbering,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	table, err := syscall.NewTable(h.numbering)
	if err != nil {
		return nil, errors.Wrap(err, "emulator")
	}
	h.table = table

	h.dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sp1",
		Subsystem: "emulator",
		Name:      "dispatch_total",
		Help:      "Operations dispatched to the emulated host.",
	}, []string{"op"})
	if h.registerer != nil {
		if err := h.registerer.Register(h.dispatches); err != nil {
			return nil, errors.Wrap(err, "registering emulator metrics")
		}
	}

	h.counts = make(map[syscall.Op]*atomic.Uint64, len(syscall.Ops()))
	for _, op := range syscall.Ops() {
		h.counts[op] = new(atomic.Uint64)
	}
	return h, nil
}

// Table returns the identifier table the host answers.
func (h *Host) Table() *syscall.Table { return h.table }

// Count reports how many times op was dispatched.
func (h *Host) Count(op syscall.Op) uint64 {
	c, ok := h.counts[op]
	if !ok {
		return 0
	}
	return c.Load()
}

// Dispatch implements syscall.Dispatcher.
func (h *Host) Dispatch(id syscall.ID, arg0, arg1 unsafe.Pointer) {
	op, ok := h.table.Op(id)
	if !ok {
		err := &UnknownIDError{ID: id, Numbering: h.numbering}
		h.logger.Error("unknown operation identifier",
			zap.Stringer("id", id),
			zap.Stringer("numbering", h.numbering))
		panic(err)
	}

	h.logger.Debug("dispatch",
		zap.Stringer("op", op),
		zap.Uintptr("arg0", uintptr(arg0)),
		zap.Uintptr("arg1", uintptr(arg1)))

	switch op {
	case syscall.OpMemcpy32:
		memory.Local().Copy32(arg0, arg1)
	case syscall.OpMemcpy64:
		memory.Local().Copy64(arg0, arg1)
	case syscall.OpBN254ScalarMul:
		scalarMul((*bn254.Fr)(arg0), (*bn254.Fr)(arg1))
	case syscall.OpBN254ScalarMac:
		a, b := syscall.Operands(arg1)
		scalarMac((*bn254.Fr)(arg0), (*bn254.Fr)(a), (*bn254.Fr)(b))
	}

	h.counts[op].Add(1)
	h.dispatches.WithLabelValues(op.String()).Inc()
}

func scalarMul(p, q *bn254.Fr) {
	x, y := p.Element(), q.Element()
	x.Mul(&x, &y)
	*p = bn254.FrFromElement(&x)
}

func scalarMac(ret, a, b *bn254.Fr) {
	acc, x, y := ret.Element(), a.Element(), b.Element()
	x.Mul(&x, &y)
	acc.Add(&acc, &x)
	*ret = bn254.FrFromElement(&acc)
}
