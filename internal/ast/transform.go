package ast

// Shift returns a copy of e in which every free index at or above
// cutoff is moved up by delta, as required when e is relocated beneath
// delta additional binders. Indices below cutoff are bound locally and
// are left untouched. The result shares every unchanged subtree with
// the input; e itself is never mutated.
func Shift(e Expr, cutoff, delta int) Expr {
	return mapIndices(e, cutoff, func(k, depth int) Expr {
		if k >= depth {
			return &Idx{Level: k + delta}
		}
		return nil
	})
}

// Substitute replaces index 0 in e with value and moves every
// remaining free index down by one, the structural half of beta
// reduction. At each substitution site the value is shifted to the
// local binder depth, so its own free indices keep referring to the
// bindings they referred to at the substitution root.
func Substitute(e Expr, value Expr) Expr {
	return SubstituteAt(e, 0, value)
}

// SubstituteAt replaces the index bound `level` binders out, shifts
// the value to each site's depth, and decrements the indices that
// pointed past the removed binder. SubstituteAt undoes Shift:
// SubstituteAt(Shift(e, d, 1), d, v) == e for every d and v.
func SubstituteAt(e Expr, level int, value Expr) Expr {
	return mapIndices(e, level, func(k, depth int) Expr {
		switch {
		case k == depth:
			return Shift(value, 0, depth-level)
		case k > depth:
			return &Idx{Level: k - 1}
		default:
			return nil
		}
	})
}

// indexRewrite maps an index level and the number of binders crossed
// since the traversal root to a replacement expression, or nil to keep
// the node unchanged.
type indexRewrite func(level, depth int) Expr

// mapIndices drives both Shift and Substitute: a structural recursion
// that tracks crossed binders and rewrites Idx leaves through f.
func mapIndices(e Expr, depth int, f indexRewrite) Expr {
	switch e := e.(type) {
	case *Lit, *Name:
		return e
	case *Idx:
		if r := f(e.Level, depth); r != nil {
			return r
		}
		return e
	case *Lambda:
		body := mapIndices(e.Body, depth+1, f)
		if body == e.Body {
			return e
		}
		return &Lambda{Body: body}
	case *App:
		fn := mapIndices(e.Fn, depth, f)
		arg := mapIndices(e.Arg, depth, f)
		if fn == e.Fn && arg == e.Arg {
			return e
		}
		return &App{Fn: fn, Arg: arg}
	case *If:
		c := mapIndices(e.Cond, depth, f)
		t := mapIndices(e.Then, depth, f)
		el := mapIndices(e.Else, depth, f)
		if c == e.Cond && t == e.Then && el == e.Else {
			return e
		}
		return &If{Cond: c, Then: t, Else: el}
	case *BinExpr:
		l := mapIndices(e.L, depth, f)
		r := mapIndices(e.R, depth, f)
		if l == e.L && r == e.R {
			return e
		}
		return &BinExpr{Op: e.Op, L: l, R: r}
	case *UnExpr:
		x := mapIndices(e.X, depth, f)
		if x == e.X {
			return e
		}
		return &UnExpr{Op: e.Op, X: x}
	case *Let:
		value := mapIndices(e.Value, depth, f)
		pat := mapPatternIndices(e.Pat, depth, f)
		body := mapIndices(e.Body, depth+e.Pat.Bindings(), f)
		if value == e.Value && pat == e.Pat && body == e.Body {
			return e
		}
		return &Let{Pat: pat, Value: value, Body: body}
	case *Match:
		scrut := mapIndices(e.Scrutinee, depth, f)
		changed := scrut != e.Scrutinee
		arms := make([]Arm, len(e.Arms))
		for i, arm := range e.Arms {
			pat := mapPatternIndices(arm.Pat, depth, f)
			body := mapIndices(arm.Body, depth+arm.Pat.Bindings(), f)
			arms[i] = Arm{Pat: pat, Body: body}
			if pat != arm.Pat || body != arm.Body {
				changed = true
			}
		}
		if !changed {
			return e
		}
		return &Match{Scrutinee: scrut, Arms: arms}
	case *TupleE:
		elems, changed := mapExprSlice(e.Elems, depth, f)
		if !changed {
			return e
		}
		return &TupleE{Elems: elems}
	case *ArrayE:
		elems, changed := mapExprSlice(e.Elems, depth, f)
		if !changed {
			return e
		}
		return &ArrayE{Elems: elems}
	case *VariantE:
		if e.Payload == nil {
			return e
		}
		payload := mapIndices(e.Payload, depth, f)
		if payload == e.Payload {
			return e
		}
		return &VariantE{Ctor: e.Ctor, Payload: payload}
	case *Proj:
		tuple := mapIndices(e.Tuple, depth, f)
		if tuple == e.Tuple {
			return e
		}
		return &Proj{Tuple: tuple, Field: e.Field}
	case *MapE:
		over := mapIndices(e.Over, depth, f)
		fn := mapIndices(e.Fn, depth, f)
		if over == e.Over && fn == e.Fn {
			return e
		}
		return &MapE{Over: over, Fn: fn}
	case *FilterE:
		over := mapIndices(e.Over, depth, f)
		fn := mapIndices(e.Fn, depth, f)
		if over == e.Over && fn == e.Fn {
			return e
		}
		return &FilterE{Over: over, Fn: fn}
	case *BindE:
		over := mapIndices(e.Over, depth, f)
		fn := mapIndices(e.Fn, depth, f)
		if over == e.Over && fn == e.Fn {
			return e
		}
		return &BindE{Over: over, Fn: fn}
	case *ZipWithE:
		a := mapIndices(e.A, depth, f)
		b := mapIndices(e.B, depth, f)
		fn := mapIndices(e.Fn, depth, f)
		if a == e.A && b == e.B && fn == e.Fn {
			return e
		}
		return &ZipWithE{A: a, B: b, Fn: fn}
	case *ConcatE:
		a := mapIndices(e.A, depth, f)
		b := mapIndices(e.B, depth, f)
		if a == e.A && b == e.B {
			return e
		}
		return &ConcatE{A: a, B: b}
	case *SumE:
		x := mapIndices(e.X, depth, f)
		if x == e.X {
			return e
		}
		return &SumE{X: x}
	case *ProductE:
		x := mapIndices(e.X, depth, f)
		if x == e.X {
			return e
		}
		return &ProductE{X: x}
	case *ComposeE:
		fe := mapIndices(e.F, depth, f)
		g := mapIndices(e.G, depth, f)
		if fe == e.F && g == e.G {
			return e
		}
		return &ComposeE{F: fe, G: g}
	case *Precond:
		cond := mapIndices(e.Cond, depth, f)
		body := mapIndices(e.Body, depth, f)
		if cond == e.Cond && body == e.Body {
			return e
		}
		return &Precond{Cond: cond, Body: body}
	case *Postcond:
		cond := mapIndices(e.Cond, depth, f)
		body := mapIndices(e.Body, depth, f)
		if cond == e.Cond && body == e.Body {
			return e
		}
		return &Postcond{Cond: cond, Body: body}
	default:
		return e
	}
}

func mapExprSlice(es []Expr, depth int, f indexRewrite) ([]Expr, bool) {
	changed := false
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = mapIndices(e, depth, f)
		if out[i] != e {
			changed = true
		}
	}
	return out, changed
}

// mapPatternIndices rewrites the expressions embedded in a pattern:
// guard conditions, which run under the binders introduced to their
// left plus their own sub-pattern's, and refinement predicates in type
// annotations, which run one binder deeper for the refined value.
func mapPatternIndices(p Pattern, depth int, f indexRewrite) Pattern {
	q, _ := mapPatternAt(p, depth, 0, f)
	return q
}

func mapPatternAt(p Pattern, depth, before int, f indexRewrite) (Pattern, int) {
	switch p := p.(type) {
	case *PWildcard, *PLit:
		return p, 0
	case *PVar:
		return p, 1
	case *PArray:
		elems, n, changed := mapPatternSlice(p.Elems, depth, before, f)
		if !changed {
			return p, n
		}
		return &PArray{Elems: elems}, n
	case *PArraySplit:
		head, n, changed := mapPatternSlice(p.Head, depth, before, f)
		tail, tn := mapPatternAt(p.Tail, depth, before+n, f)
		if !changed && tail == p.Tail {
			return p, n + tn
		}
		return &PArraySplit{Head: head, Tail: tail}, n + tn
	case *PTuple:
		elems, n, changed := mapPatternSlice(p.Elems, depth, before, f)
		if !changed {
			return p, n
		}
		return &PTuple{Elems: elems}, n
	case *PVariant:
		if p.Payload == nil {
			return p, 0
		}
		payload, n := mapPatternAt(p.Payload, depth, before, f)
		if payload == p.Payload {
			return p, n
		}
		return &PVariant{Ctor: p.Ctor, Payload: payload}, n
	case *PTyped:
		pat, n := mapPatternAt(p.Pat, depth, before, f)
		ty := mapTypePredicates(p.Type, depth+before, f)
		if pat == p.Pat && ty == p.Type {
			return p, n
		}
		return &PTyped{Pat: pat, Type: ty}, n
	case *POr:
		a, an := mapPatternAt(p.A, depth, before, f)
		b, bn := mapPatternAt(p.B, depth, before, f)
		n := an
		if bn > n {
			n = bn
		}
		if a == p.A && b == p.B {
			return p, n
		}
		return &POr{A: a, B: b}, n
	case *PGuard:
		pat, n := mapPatternAt(p.Pat, depth, before, f)
		cond := mapIndices(p.Cond, depth+before+n, f)
		if pat == p.Pat && cond == p.Cond {
			return p, n
		}
		return &PGuard{Pat: pat, Cond: cond}, n
	default:
		return p, 0
	}
}

func mapPatternSlice(ps []Pattern, depth, before int, f indexRewrite) ([]Pattern, int, bool) {
	changed := false
	n := 0
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		q, pn := mapPatternAt(p, depth, before+n, f)
		out[i] = q
		n += pn
		if q != p {
			changed = true
		}
	}
	return out, n, changed
}

// mapTypePredicates rewrites refinement predicates inside a type. A
// predicate runs one binder deeper than its surrounding scope, the
// implicit binder for the value being refined.
func mapTypePredicates(t Type, depth int, f indexRewrite) Type {
	switch t := t.(type) {
	case *Prim, *Named:
		return t
	case *Tensor:
		elem := mapTypePredicates(t.Elem, depth, f)
		if elem == t.Elem {
			return t
		}
		return &Tensor{Shape: t.Shape, Elem: elem}
	case *Func:
		param := mapTypePredicates(t.Param, depth, f)
		result := mapTypePredicates(t.Result, depth, f)
		if param == t.Param && result == t.Result {
			return t
		}
		return &Func{Param: param, Result: result, Effects: t.Effects}
	case *TupleT:
		changed := false
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = mapTypePredicates(e, depth, f)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &TupleT{Elems: elems}
	case *Refined:
		base := mapTypePredicates(t.Base, depth, f)
		pred := t.Pred
		if pred != nil {
			pred = mapIndices(pred, depth+1, f)
		}
		if base == t.Base && pred == t.Pred {
			return t
		}
		return &Refined{Base: base, Interval: t.Interval, Pred: pred}
	default:
		return t
	}
}
