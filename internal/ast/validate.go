package ast

import "fmt"

// DefectKind classifies the structural defects Validate can report.
type DefectKind int

const (
	// DefectUnboundIndex is an index at or above the binder depth in
	// effect at its position.
	DefectUnboundIndex DefectKind = iota
	// DefectUnknownNameRef is a reference to a declaration absent from
	// the module table.
	DefectUnknownNameRef
)

// String names the defect kind.
func (k DefectKind) String() string {
	switch k {
	case DefectUnboundIndex:
		return "UnboundIndex"
	case DefectUnknownNameRef:
		return "UnknownNameRef"
	default:
		return fmt.Sprintf("Defect(%d)", int(k))
	}
}

// Defect is one structural problem found by validation. Validation
// reports defects; it never repairs a tree.
type Defect struct {
	Kind  DefectKind
	Level int    // the offending index level, for DefectUnboundIndex
	Depth int    // the binder depth in effect at the index's position
	Name  string // the unresolved identifier, for DefectUnknownNameRef
}

// Error implements the error interface.
func (d Defect) Error() string {
	switch d.Kind {
	case DefectUnboundIndex:
		return fmt.Sprintf("unbound index %d at binder depth %d", d.Level, d.Depth)
	case DefectUnknownNameRef:
		return fmt.Sprintf("reference to undeclared name %q", d.Name)
	default:
		return d.Kind.String()
	}
}

// ValidateExpr traverses e and reports every index whose level is not
// strictly below the binder depth at its position, starting from
// initialDepth binders already in scope. Name references are not
// checked here; they need a module table, see Module.Validate.
func ValidateExpr(e Expr, initialDepth int) []Defect {
	v := &validator{}
	v.expr(e, initialDepth)
	return v.defects
}

// Validate checks every declaration body against the binder-depth
// invariant and every name reference against the module's declaration
// table. Function contract clauses run with the signature's curried
// parameters in scope; refinement predicates run one binder deep over
// the value they refine.
func (m *Module) Validate() []Defect {
	v := &validator{table: m.DeclTable()}
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *FnDecl:
			arity := Arity(d.Signature)
			v.typ(d.Signature, 0)
			for _, pre := range d.Preconds {
				v.expr(pre, arity)
			}
			for _, post := range d.Postconds {
				v.expr(post, arity)
			}
			v.expr(d.Body, 0)
		case *TypeDecl:
			v.typ(d.Definition, 0)
		case *LetDecl:
			if d.Type != nil {
				v.typ(d.Type, 0)
			}
			v.expr(d.Value, 0)
		}
	}
	return v.defects
}

type validator struct {
	table   map[string]Decl // nil when validating a bare expression
	defects []Defect
}

func (v *validator) report(d Defect) { v.defects = append(v.defects, d) }

func (v *validator) expr(e Expr, depth int) {
	switch e := e.(type) {
	case *Lit:
	case *Idx:
		if e.Level < 0 || e.Level >= depth {
			v.report(Defect{Kind: DefectUnboundIndex, Level: e.Level, Depth: depth})
		}
	case *Name:
		if v.table != nil {
			if _, ok := v.table[e.Ident]; !ok {
				v.report(Defect{Kind: DefectUnknownNameRef, Name: e.Ident})
			}
		}
	case *Lambda:
		v.expr(e.Body, depth+1)
	case *App:
		v.expr(e.Fn, depth)
		v.expr(e.Arg, depth)
	case *If:
		v.expr(e.Cond, depth)
		v.expr(e.Then, depth)
		v.expr(e.Else, depth)
	case *BinExpr:
		v.expr(e.L, depth)
		v.expr(e.R, depth)
	case *UnExpr:
		v.expr(e.X, depth)
	case *Let:
		v.expr(e.Value, depth)
		v.pattern(e.Pat, depth, 0)
		v.expr(e.Body, depth+e.Pat.Bindings())
	case *Match:
		v.expr(e.Scrutinee, depth)
		for _, arm := range e.Arms {
			v.pattern(arm.Pat, depth, 0)
			v.expr(arm.Body, depth+arm.Pat.Bindings())
		}
	case *TupleE:
		for _, x := range e.Elems {
			v.expr(x, depth)
		}
	case *ArrayE:
		for _, x := range e.Elems {
			v.expr(x, depth)
		}
	case *VariantE:
		if e.Payload != nil {
			v.expr(e.Payload, depth)
		}
	case *Proj:
		v.expr(e.Tuple, depth)
	case *MapE:
		v.expr(e.Over, depth)
		v.expr(e.Fn, depth)
	case *FilterE:
		v.expr(e.Over, depth)
		v.expr(e.Fn, depth)
	case *BindE:
		v.expr(e.Over, depth)
		v.expr(e.Fn, depth)
	case *ZipWithE:
		v.expr(e.A, depth)
		v.expr(e.B, depth)
		v.expr(e.Fn, depth)
	case *ConcatE:
		v.expr(e.A, depth)
		v.expr(e.B, depth)
	case *SumE:
		v.expr(e.X, depth)
	case *ProductE:
		v.expr(e.X, depth)
	case *ComposeE:
		v.expr(e.F, depth)
		v.expr(e.G, depth)
	case *Precond:
		v.expr(e.Cond, depth)
		v.expr(e.Body, depth)
	case *Postcond:
		v.expr(e.Cond, depth)
		v.expr(e.Body, depth)
	}
}

// pattern validates embedded expressions; before counts the binders
// introduced by sub-patterns to the left. The return value is the
// number of binders this pattern introduces.
func (v *validator) pattern(p Pattern, depth, before int) int {
	switch p := p.(type) {
	case *PWildcard, *PLit:
		return 0
	case *PVar:
		return 1
	case *PArray:
		return v.patterns(p.Elems, depth, before)
	case *PArraySplit:
		n := v.patterns(p.Head, depth, before)
		return n + v.pattern(p.Tail, depth, before+n)
	case *PTuple:
		return v.patterns(p.Elems, depth, before)
	case *PVariant:
		if p.Payload == nil {
			return 0
		}
		return v.pattern(p.Payload, depth, before)
	case *PTyped:
		n := v.pattern(p.Pat, depth, before)
		v.typ(p.Type, depth+before)
		return n
	case *POr:
		a := v.pattern(p.A, depth, before)
		b := v.pattern(p.B, depth, before)
		if b > a {
			return b
		}
		return a
	case *PGuard:
		n := v.pattern(p.Pat, depth, before)
		v.expr(p.Cond, depth+before+n)
		return n
	default:
		return 0
	}
}

func (v *validator) patterns(ps []Pattern, depth, before int) int {
	n := 0
	for _, p := range ps {
		n += v.pattern(p, depth, before+n)
	}
	return n
}

func (v *validator) typ(t Type, depth int) {
	switch t := t.(type) {
	case *Prim:
	case *Named:
		if v.table != nil {
			if _, ok := v.table[t.Ident]; !ok {
				v.report(Defect{Kind: DefectUnknownNameRef, Name: t.Ident})
			}
		}
	case *Tensor:
		v.typ(t.Elem, depth)
	case *Func:
		v.typ(t.Param, depth)
		v.typ(t.Result, depth)
	case *TupleT:
		for _, e := range t.Elems {
			v.typ(e, depth)
		}
	case *Refined:
		v.typ(t.Base, depth)
		if t.Pred != nil {
			v.expr(t.Pred, depth+1)
		}
	}
}
