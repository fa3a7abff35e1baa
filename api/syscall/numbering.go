package syscall

import (
	"sort"

	"github.com/pkg/errors"
)

// Memory block copy identifiers. They are the same in every numbering.
const (
	IDMemcpy32 ID = 0x00_00_01_30
	IDMemcpy64 ID = 0x00_00_01_31
)

// BN254 scalar field identifiers of the current host numbering.
const (
	IDBN254ScalarMul ID = 0x00_01_01_80
	IDBN254ScalarMac ID = 0x00_01_01_81
)

// BN254 scalar field identifiers of the legacy host numbering.
const (
	IDBN254ScalarMulLegacy ID = 0x00_01_01_20
	IDBN254ScalarMacLegacy ID = 0x00_01_01_21
)

// Active memory identifiers.
const (
	Memcpy32 = IDMemcpy32
	Memcpy64 = IDMemcpy64
)

var (
	ErrUnknownNumbering = errors.New("unknown identifier numbering")
	ErrDuplicateID      = errors.New("duplicate operation identifier")
)

// Numbering selects one of the host's identifier spaces.
type Numbering int

const (
	NumberingCurrent Numbering = iota
	NumberingLegacy
)

func (n Numbering) String() string {
	switch n {
	case NumberingCurrent:
		return "current"
	case NumberingLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseNumbering accepts the names produced by Numbering.String.
func ParseNumbering(s string) (Numbering, error) {
	switch s {
	case "current":
		return NumberingCurrent, nil
	case "legacy":
		return NumberingLegacy, nil
	default:
		return 0, errors.Wrapf(ErrUnknownNumbering, "%q", s)
	}
}

var numberings = map[Numbering][numOps]ID{
	NumberingCurrent: {
		OpMemcpy32:       IDMemcpy32,
		OpMemcpy64:       IDMemcpy64,
		OpBN254ScalarMul: IDBN254ScalarMul,
		OpBN254ScalarMac: IDBN254ScalarMac,
	},
	NumberingLegacy: {
		OpMemcpy32:       IDMemcpy32,
		OpMemcpy64:       IDMemcpy64,
		OpBN254ScalarMul: IDBN254ScalarMulLegacy,
		OpBN254ScalarMac: IDBN254ScalarMacLegacy,
	},
}

// Table maps logical operations to the identifiers of one numbering.
// A Table is immutable once built.
type Table struct {
	numbering Numbering
	ids       [numOps]ID
	ops       map[ID]Op
}

// Entry is one row of a Table.
type Entry struct {
	Op Op
	ID ID
}

// NewTable builds the table for n.
func NewTable(n Numbering) (*Table, error) {
	ids, ok := numberings[n]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNumbering, "%d", int(n))
	}
	return newTable(n, ids)
}

func newTable(n Numbering, ids [numOps]ID) (*Table, error) {
	t := &Table{numbering: n, ids: ids, ops: make(map[ID]Op, numOps)}
	for op, id := range ids {
		if prev, dup := t.ops[id]; dup {
			return nil, errors.Wrapf(ErrDuplicateID, "%s numbering: 0x%08x used by %s and %s",
				n, uint32(id), prev, Op(op))
		}
		t.ops[id] = Op(op)
	}
	return t, nil
}

// Numbering reports which identifier space t describes.
func (t *Table) Numbering() Numbering { return t.numbering }

// ID returns the identifier of op. It panics on an op outside Ops().
func (t *Table) ID(op Op) ID { return t.ids[op] }

// Op resolves id back to its logical operation.
func (t *Table) Op(id ID) (Op, bool) {
	op, ok := t.ops[id]
	return op, ok
}

// Entries lists the table ordered by identifier.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, numOps)
	for op, id := range t.ids {
		entries = append(entries, Entry{Op: Op(op), ID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

var activeTable = mustTable(ActiveNumbering)

func mustTable(n Numbering) *Table {
	t, err := NewTable(n)
	if err != nil {
		panic(err)
	}
	return t
}

// ActiveTable returns the table of the numbering compiled into this build.
func ActiveTable() *Table { return activeTable }

// activeOp resolves an identifier of the active numbering. The cases are
// constants, so a duplicate identifier does not compile.
func activeOp(id ID) (Op, bool) {
	switch id {
	case Memcpy32:
		return OpMemcpy32, true
	case Memcpy64:
		return OpMemcpy64, true
	case BN254ScalarMul:
		return OpBN254ScalarMul, true
	case BN254ScalarMac:
		return OpBN254ScalarMac, true
	}
	return 0, false
}
