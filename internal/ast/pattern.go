package ast

// Pattern is the interface implemented by every pattern node. The
// constructor vocabulary is closed; user-extensible constructor sets
// are a future decision and are not represented here.
type Pattern interface {
	patternNode()
	// Bindings returns the number of binder positions this pattern
	// introduces, counted left-to-right.
	Bindings() int
	// Irrefutable reports whether the pattern matches every value of
	// its type.
	Irrefutable() bool
}

// PWildcard matches anything and binds nothing.
type PWildcard struct{}

// PVar matches anything and introduces exactly one binder. Name is a
// presentation hint only; it carries no binding semantics.
type PVar struct {
	Name string
}

// PLit matches a literal constant.
type PLit struct {
	Value Literal
}

// PArray matches a rank-1 tensor of exactly len(Elems) elements.
type PArray struct {
	Elems []Pattern
}

// PArraySplit matches a tensor with at least len(Head) elements,
// binding the remainder to Tail: [h₀, h₁ | t].
type PArraySplit struct {
	Head []Pattern
	Tail Pattern
}

// PTuple matches a tuple position-wise.
type PTuple struct {
	Elems []Pattern
}

// PVariant matches a tagged variant. Payload is nil for nullary
// constructors.
type PVariant struct {
	Ctor    string
	Payload Pattern
}

// PTyped annotates a pattern with a type: p : T.
type PTyped struct {
	Pat  Pattern
	Type Type
}

// POr matches when either branch matches. Both branches are expected
// to introduce the same bindings; Bindings is the maximum of the two.
type POr struct {
	A Pattern
	B Pattern
}

// PGuard matches when Pat matches and Cond holds. Cond is evaluated
// with Pat's bindings in scope.
type PGuard struct {
	Pat  Pattern
	Cond Expr
}

func (*PWildcard) patternNode()   {}
func (*PVar) patternNode()        {}
func (*PLit) patternNode()        {}
func (*PArray) patternNode()      {}
func (*PArraySplit) patternNode() {}
func (*PTuple) patternNode()      {}
func (*PVariant) patternNode()    {}
func (*PTyped) patternNode()      {}
func (*POr) patternNode()         {}
func (*PGuard) patternNode()      {}

func sumBindings(ps []Pattern) int {
	n := 0
	for _, p := range ps {
		n += p.Bindings()
	}
	return n
}

func (*PWildcard) Bindings() int { return 0 }
func (*PVar) Bindings() int      { return 1 }
func (*PLit) Bindings() int      { return 0 }

func (p *PArray) Bindings() int { return sumBindings(p.Elems) }

func (p *PArraySplit) Bindings() int {
	return sumBindings(p.Head) + p.Tail.Bindings()
}

func (p *PTuple) Bindings() int { return sumBindings(p.Elems) }

func (p *PVariant) Bindings() int {
	if p.Payload == nil {
		return 0
	}
	return p.Payload.Bindings()
}

func (p *PTyped) Bindings() int { return p.Pat.Bindings() }

func (p *POr) Bindings() int {
	a, b := p.A.Bindings(), p.B.Bindings()
	if a > b {
		return a
	}
	return b
}

func (p *PGuard) Bindings() int { return p.Pat.Bindings() }

func (*PWildcard) Irrefutable() bool { return true }
func (*PVar) Irrefutable() bool      { return true }
func (*PLit) Irrefutable() bool      { return false }

// Array patterns constrain length, so they can always fail.
func (*PArray) Irrefutable() bool      { return false }
func (*PArraySplit) Irrefutable() bool { return false }

func (p *PTuple) Irrefutable() bool {
	for _, e := range p.Elems {
		if !e.Irrefutable() {
			return false
		}
	}
	return true
}

func (*PVariant) Irrefutable() bool { return false }

func (p *PTyped) Irrefutable() bool { return p.Pat.Irrefutable() }

func (p *POr) Irrefutable() bool { return p.A.Irrefutable() || p.B.Irrefutable() }

func (*PGuard) Irrefutable() bool { return false }

// Wildcard builds the wildcard pattern.
func Wildcard() Pattern { return &PWildcard{} }

// BindVar builds a single-binder pattern with a name hint.
func BindVar(name string) Pattern { return &PVar{Name: name} }

// LitPat builds a literal pattern.
func LitPat(l Literal) Pattern { return &PLit{Value: l} }

// VariantPat builds a constructor pattern; payload may be nil.
func VariantPat(ctor string, payload Pattern) Pattern {
	return &PVariant{Ctor: ctor, Payload: payload}
}

// TuplePat builds a tuple pattern.
func TuplePat(elems ...Pattern) Pattern { return &PTuple{Elems: elems} }
