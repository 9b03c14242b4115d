package plan

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BuiltRef identifies a committed stroke in the built store.
type BuiltRef uuid.UUID

// NewBuiltRef returns a fresh random reference.
func NewBuiltRef() BuiltRef {
	return BuiltRef(uuid.New())
}

// ParseBuiltRef parses the canonical UUID form of a reference.
func ParseBuiltRef(s string) (BuiltRef, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return BuiltRef{}, fmt.Errorf("invalid built stroke reference %q: %w", s, err)
	}
	return BuiltRef(id), nil
}

// String returns the canonical UUID form.
func (r BuiltRef) String() string {
	return uuid.UUID(r).String()
}

// MarshalText implements encoding.TextMarshaler so refs can key JSON objects.
func (r BuiltRef) MarshalText() ([]byte, error) {
	return uuid.UUID(r).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *BuiltRef) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(r).UnmarshalText(data)
}

// Less orders refs by their bytes.
func (r BuiltRef) Less(other BuiltRef) bool {
	return bytes.Compare(r[:], other[:]) < 0
}

// RefKind tells which collection a StrokeRef points into.
type RefKind int

const (
	// RefNew points into PlanDelta.NewStrokes by index.
	RefNew RefKind = iota

	// RefBuilt points into the committed BuiltStrokes.
	RefBuilt
)

// StrokeRef references either a stroke authored in the current plan or a
// committed one. StrokeRef is comparable and may be used as a map key.
type StrokeRef struct {
	Kind  RefKind
	Index int
	Built BuiltRef
}

// NewStrokeRef references the plan's new stroke at index.
func NewStrokeRef(index int) StrokeRef {
	return StrokeRef{Kind: RefNew, Index: index}
}

// BuiltStrokeRef references a committed stroke.
func BuiltStrokeRef(ref BuiltRef) StrokeRef {
	return StrokeRef{Kind: RefBuilt, Built: ref}
}

// IsNew reports whether the ref points at a newly authored stroke.
func (r StrokeRef) IsNew() bool {
	return r.Kind == RefNew
}

// Less orders new strokes before built ones, then by index or UUID.
func (r StrokeRef) Less(other StrokeRef) bool {
	if r.Kind != other.Kind {
		return r.Kind < other.Kind
	}
	if r.Kind == RefNew {
		return r.Index < other.Index
	}
	return r.Built.Less(other.Built)
}

// String renders new refs as "new:<index>" and built refs as their UUID.
func (r StrokeRef) String() string {
	if r.Kind == RefNew {
		return "new:" + strconv.Itoa(r.Index)
	}
	return r.Built.String()
}

// ParseStrokeRef is the inverse of StrokeRef.String. A bare integer is
// accepted as a new stroke index.
func ParseStrokeRef(s string) (StrokeRef, error) {
	idx := strings.TrimPrefix(s, "new:")
	if n, err := strconv.Atoi(idx); err == nil {
		if n < 0 {
			return StrokeRef{}, fmt.Errorf("invalid stroke index %d", n)
		}
		return NewStrokeRef(n), nil
	}
	built, err := ParseBuiltRef(s)
	if err != nil {
		return StrokeRef{}, err
	}
	return BuiltStrokeRef(built), nil
}

// SortRefs sorts refs in place using StrokeRef.Less.
func SortRefs(refs []StrokeRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
}
