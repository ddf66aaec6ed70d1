package types

import (
	"fmt"
	"iter"
)

// MillennialYear is the conversion-year threshold used by
// AllMillennialVampires.
const MillennialYear = 1980

// Vampire is one node in a lineage tree.
//
// Offspring are owned by their creator and kept in creation order. The
// creator link is a plain back-pointer used only for upward walks.
type Vampire struct {
	ID            string // UUID v7 when assigned by a loader; optional.
	Name          string // Unique by convention, not enforced.
	YearConverted int

	creator   *Vampire
	offspring []*Vampire
}

// NewVampire returns an unattached vampire with no creator and no offspring.
func NewVampire(name string, yearConverted int) *Vampire {
	return &Vampire{
		Name:          name,
		YearConverted: yearConverted,
		offspring:     make([]*Vampire, 0),
	}
}

// String returns "Name (YearConverted)".
func (v *Vampire) String() string {
	return fmt.Sprintf("%s (%d)", v.Name, v.YearConverted)
}

// Creator returns the vampire that created v, or nil for the original.
func (v *Vampire) Creator() *Vampire {
	return v.creator
}

// Offspring returns a copy of v's offspring in creation order.
func (v *Vampire) Offspring() []*Vampire {
	out := make([]*Vampire, len(v.offspring))
	copy(out, v.offspring)
	return out
}

// IsOriginal reports whether v has no creator.
func (v *Vampire) IsOriginal() bool {
	return v.creator == nil
}

// Original returns the root of v's lineage.
func (v *Vampire) Original() *Vampire {
	cur := v
	for cur.creator != nil {
		cur = cur.creator
	}
	return cur
}

// AddOffspring appends child to v's offspring and sets v as its creator.
//
// A vampire is created once. Returns ErrInvalidOperation if child is nil,
// already has a creator, or is v or one of v's ancestors. Neither vampire is
// modified on error.
func (v *Vampire) AddOffspring(child *Vampire) error {
	if child == nil {
		return fmt.Errorf("%w: nil offspring", ErrInvalidOperation)
	}
	if child.creator != nil {
		return fmt.Errorf("%w: %s was already created by %s",
			ErrInvalidOperation, child.Name, child.creator.Name)
	}
	for a := range v.Ancestors() {
		if a == child {
			return fmt.Errorf("%w: %s cannot create its own ancestor %s",
				ErrInvalidOperation, v.Name, child.Name)
		}
	}
	v.offspring = append(v.offspring, child)
	child.creator = v
	return nil
}

// NumberOfOffspring returns the number of vampires v created directly.
func (v *Vampire) NumberOfOffspring() int {
	return len(v.offspring)
}

// GenerationsFromOriginal returns the number of creator hops between v and
// the original vampire. The original is 0.
func (v *Vampire) GenerationsFromOriginal() int {
	n := 0
	for cur := v.creator; cur != nil; cur = cur.creator {
		n++
	}
	return n
}

// IsMoreSeniorThan reports whether v is strictly closer to the original than
// other. Vampires of the same generation are never more senior than each
// other.
func (v *Vampire) IsMoreSeniorThan(other *Vampire) bool {
	return v.GenerationsFromOriginal() < other.GenerationsFromOriginal()
}

// Ancestors yields v, then its creator, and so on up to the original.
func (v *Vampire) Ancestors() iter.Seq[*Vampire] {
	return func(yield func(*Vampire) bool) {
		for cur := v; cur != nil; cur = cur.creator {
			if !yield(cur) {
				return
			}
		}
	}
}

// Lineage yields v and every descendant in pre-order: a vampire before its
// offspring, offspring in creation order. The walk uses an explicit stack.
func (v *Vampire) Lineage() iter.Seq[*Vampire] {
	return func(yield func(*Vampire) bool) {
		stack := []*Vampire{v}
		for len(stack) > 0 {
			last := len(stack) - 1
			cur := stack[last]
			stack = stack[:last]
			if !yield(cur) {
				return
			}
			for i := len(cur.offspring) - 1; i >= 0; i-- {
				stack = append(stack, cur.offspring[i])
			}
		}
	}
}

// TotalDescendants returns the number of vampires below v, v excluded.
func (v *Vampire) TotalDescendants() int {
	n := 0
	for range v.Lineage() {
		n++
	}
	return n - 1
}

// VampireWithName returns the first vampire named name in v's lineage,
// searched in pre-order starting with v. Returns ErrNotFound if there is none.
func (v *Vampire) VampireWithName(name string) (*Vampire, error) {
	for cur := range v.Lineage() {
		if cur.Name == name {
			return cur, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// ConvertedAfter returns every vampire in v's lineage, v included, converted
// strictly after year. Results are in pre-order. The slice is empty, not nil,
// when nothing matches.
func (v *Vampire) ConvertedAfter(year int) []*Vampire {
	out := make([]*Vampire, 0)
	for cur := range v.Lineage() {
		if cur.YearConverted > year {
			out = append(out, cur)
		}
	}
	return out
}

// AllMillennialVampires returns the vampires in v's lineage converted after
// MillennialYear.
func (v *Vampire) AllMillennialVampires() []*Vampire {
	return v.ConvertedAfter(MillennialYear)
}

// ClosestCommonAncestor returns the deepest vampire that is an ancestor of,
// or the same as, both v and other. If one is a direct ancestor of the other,
// that ancestor is returned. Returns ErrNotFound when the two vampires belong
// to different lineages.
func (v *Vampire) ClosestCommonAncestor(other *Vampire) (*Vampire, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil vampire", ErrNotFound)
	}
	seen := make(map[*Vampire]struct{})
	for a := range v.Ancestors() {
		seen[a] = struct{}{}
	}
	for a := range other.Ancestors() {
		if _, ok := seen[a]; ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s and %s share no ancestor", ErrNotFound, v.Name, other.Name)
}
