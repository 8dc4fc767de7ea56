// Package selection holds the caller-owned set of chosen identifiers and the
// pure operations that derive a new set from an old one.
package selection

import (
	"fmt"
	"slices"
)

// Kind is the shape a Selection holds
type Kind int

const (
	KindEmpty Kind = iota
	KindSingle
	KindMany
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSingle:
		return "single"
	case KindMany:
		return "many"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Selection is an ordered, duplicate-free collection of identifiers.
//
// Single-select forms store a bare identifier, multi-select forms store a
// sequence; both shapes are accepted by every operation. The zero value is
// an empty selection. A Selection is never modified after construction.
type Selection[ID comparable] struct {
	kind   Kind
	single ID
	many   []ID
}

// Empty returns a selection with nothing chosen
func Empty[ID comparable]() Selection[ID] {
	return Selection[ID]{}
}

// Single returns the bare-identifier form used by single-select forms
func Single[ID comparable](id ID) Selection[ID] {
	return Selection[ID]{kind: KindSingle, single: id}
}

// Many returns the sequence form. Duplicate ids keep their first position.
func Many[ID comparable](ids ...ID) Selection[ID] {
	return Selection[ID]{kind: KindMany, many: dedupe(ids)}
}

// Kind reports which shape the selection holds
func (s Selection[ID]) Kind() Kind {
	return s.kind
}

// Len returns the number of chosen identifiers
func (s Selection[ID]) Len() int {
	switch s.kind {
	case KindSingle:
		return 1
	case KindMany:
		return len(s.many)
	default:
		return 0
	}
}

// IsEmpty returns true if nothing is chosen
func (s Selection[ID]) IsEmpty() bool {
	return s.Len() == 0
}

// IDs returns the chosen identifiers in order. The slice is always a fresh
// copy and never nil.
func (s Selection[ID]) IDs() []ID {
	return s.appendTo(make([]ID, 0, s.Len()))
}

// Has is the method form of IsSelected
func (s Selection[ID]) Has(id ID) bool {
	return IsSelected(s, id)
}

func (s Selection[ID]) String() string {
	return fmt.Sprintf("%s%v", s.kind, s.IDs())
}

func (s Selection[ID]) appendTo(dst []ID) []ID {
	switch s.kind {
	case KindSingle:
		return append(dst, s.single)
	case KindMany:
		return append(dst, s.many...)
	default:
		return dst
	}
}

// IsSelected reports whether id is part of s.
func IsSelected[ID comparable](s Selection[ID], id ID) bool {
	switch s.kind {
	case KindSingle:
		return s.single == id
	case KindMany:
		return len(s.many) > 0 && slices.Contains(s.many, id)
	default:
		return false
	}
}

// Add appends ids after the existing ones and drops repeats, keeping the
// first occurrence of each identifier. The result is always the sequence
// form; s is left untouched.
func Add[ID comparable](s Selection[ID], ids ...ID) Selection[ID] {
	merged := s.appendTo(make([]ID, 0, s.Len()+len(ids)))
	merged = append(merged, ids...)
	return Selection[ID]{kind: KindMany, many: dedupe(merged)}
}

// Remove returns the identifiers of s that are not in ids, in their original
// order. Ids that are not selected are ignored.
func Remove[ID comparable](s Selection[ID], ids ...ID) Selection[ID] {
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]ID, 0, s.Len())
	for _, id := range s.appendTo(nil) {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	return Selection[ID]{kind: KindMany, many: kept}
}

// Equal compares the chosen identifiers in order, regardless of shape.
// Empty, Many() and Remove(Single(x), x) are all equal.
func Equal[ID comparable](a, b Selection[ID]) bool {
	return slices.Equal(a.IDs(), b.IDs())
}

// dedupe keeps the first occurrence of each id. The result never aliases ids.
func dedupe[ID comparable](ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
