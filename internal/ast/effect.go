package ast

import (
	"fmt"
	"sort"
	"strings"
)

// EffectKind discriminates the effect atoms plus effect variables.
type EffectKind int

const (
	// EffectIO covers file, network and console interaction.
	EffectIO EffectKind = iota
	// EffectMut is local mutation.
	EffectMut
	// EffectRand is dependence on a random source.
	EffectRand
	// EffectDiv is possible non-termination.
	EffectDiv
	// EffectExn may raise an exception; Tag names the exception type.
	EffectExn
	// EffectFFI calls foreign code; Tag names the lifetime.
	EffectFFI
	// EffectCustom is a user-declared effect atom; Tag names it.
	EffectCustom
	// EffectVar is an effect variable standing for an unknown row, used
	// by effect-polymorphic declarations; Tag names the variable.
	EffectVar
)

// Effect is one element of an effect row: an atom or a variable.
// Purity is the absence of elements, so there is no Pure atom here.
type Effect struct {
	Kind EffectKind
	Tag  string
}

// IO, Mut, Rand and Div are the tag-less atoms.
var (
	IO   = Effect{Kind: EffectIO}
	Mut  = Effect{Kind: EffectMut}
	Rand = Effect{Kind: EffectRand}
	Div  = Effect{Kind: EffectDiv}
)

// Exn builds an exception effect for the given exception type name.
func Exn(tag string) Effect { return Effect{Kind: EffectExn, Tag: tag} }

// FFI builds a foreign-call effect for the given lifetime name.
func FFI(tag string) Effect { return Effect{Kind: EffectFFI, Tag: tag} }

// CustomEffect builds a user-declared effect atom.
func CustomEffect(name string) Effect { return Effect{Kind: EffectCustom, Tag: name} }

// EffVar builds an effect variable.
func EffVar(name string) Effect { return Effect{Kind: EffectVar, Tag: name} }

// String renders the effect marker in glyph form.
func (e Effect) String() string {
	switch e.Kind {
	case EffectIO:
		return "◇io"
	case EffectMut:
		return "◇mut"
	case EffectRand:
		return "◇rand"
	case EffectDiv:
		return "◇div"
	case EffectExn:
		return "◇exn⟨" + e.Tag + "⟩"
	case EffectFFI:
		return "◇ffi⟨'" + e.Tag + "⟩"
	case EffectCustom:
		return "◇" + e.Tag
	case EffectVar:
		return "ε" + e.Tag
	default:
		return fmt.Sprintf("Effect(%d)", int(e.Kind))
	}
}

// Effects is an effect row: a set of atoms and variables under the
// join semilattice whose bottom is the empty (pure) row and whose join
// is set union. The element slice is kept sorted and deduplicated;
// rows are immutable after construction.
type Effects struct {
	elems []Effect
}

// Pure returns the empty row, the lattice bottom.
func Pure() Effects { return Effects{} }

// NewEffects builds a row from the given elements.
func NewEffects(es ...Effect) Effects {
	if len(es) == 0 {
		return Effects{}
	}
	elems := make([]Effect, len(es))
	copy(elems, es)
	sortEffects(elems)
	return Effects{elems: dedupEffects(elems)}
}

func sortEffects(es []Effect) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].Kind != es[j].Kind {
			return es[i].Kind < es[j].Kind
		}
		return es[i].Tag < es[j].Tag
	})
}

func dedupEffects(es []Effect) []Effect {
	out := es[:0]
	for i, e := range es {
		if i == 0 || e != es[i-1] {
			out = append(out, e)
		}
	}
	return out
}

// IsPure reports whether the row is empty.
func (r Effects) IsPure() bool { return len(r.elems) == 0 }

// Len returns the number of elements in the row.
func (r Effects) Len() int { return len(r.elems) }

// Elems returns the row elements in canonical order. The slice is a
// copy; mutating it does not affect the row.
func (r Effects) Elems() []Effect {
	out := make([]Effect, len(r.elems))
	copy(out, r.elems)
	return out
}

// Contains reports whether the row contains the given element.
func (r Effects) Contains(e Effect) bool {
	for _, x := range r.elems {
		if x == e {
			return true
		}
	}
	return false
}

// IsSubset reports whether every element of r is in other. This is the
// effect-inclusion ordering of the lattice.
func (r Effects) IsSubset(other Effects) bool {
	for _, x := range r.elems {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// Union returns the lattice join of the two rows.
func (r Effects) Union(other Effects) Effects {
	if r.IsPure() {
		return other
	}
	if other.IsPure() {
		return r
	}
	merged := make([]Effect, 0, len(r.elems)+len(other.elems))
	merged = append(merged, r.elems...)
	merged = append(merged, other.elems...)
	sortEffects(merged)
	return Effects{elems: dedupEffects(merged)}
}

// With returns a row extended by one element.
func (r Effects) With(e Effect) Effects {
	return r.Union(NewEffects(e))
}

// Equal reports whether two rows contain the same elements.
func (r Effects) Equal(other Effects) bool {
	if len(r.elems) != len(other.elems) {
		return false
	}
	for i := range r.elems {
		if r.elems[i] != other.elems[i] {
			return false
		}
	}
	return true
}

// String renders the row: □ when pure, otherwise elements joined
// with ∪.
func (r Effects) String() string {
	if r.IsPure() {
		return "□"
	}
	parts := make([]string, len(r.elems))
	for i, e := range r.elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ∪ ")
}
