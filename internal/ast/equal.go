package ast

// EqualExpr reports node-for-node structural equality. Because binding
// is positional, structural equality is semantic equality; there is no
// separate alpha-equivalence.
func EqualExpr(a, b Expr) bool {
	switch a := a.(type) {
	case *Lit:
		b, ok := b.(*Lit)
		return ok && a.Value == b.Value
	case *Idx:
		b, ok := b.(*Idx)
		return ok && a.Level == b.Level
	case *Name:
		b, ok := b.(*Name)
		return ok && a.Ident == b.Ident
	case *Lambda:
		b, ok := b.(*Lambda)
		return ok && EqualExpr(a.Body, b.Body)
	case *App:
		b, ok := b.(*App)
		return ok && EqualExpr(a.Fn, b.Fn) && EqualExpr(a.Arg, b.Arg)
	case *If:
		b, ok := b.(*If)
		return ok && EqualExpr(a.Cond, b.Cond) && EqualExpr(a.Then, b.Then) && EqualExpr(a.Else, b.Else)
	case *BinExpr:
		b, ok := b.(*BinExpr)
		return ok && a.Op == b.Op && EqualExpr(a.L, b.L) && EqualExpr(a.R, b.R)
	case *UnExpr:
		b, ok := b.(*UnExpr)
		return ok && a.Op == b.Op && EqualExpr(a.X, b.X)
	case *Let:
		b, ok := b.(*Let)
		return ok && EqualPattern(a.Pat, b.Pat) && EqualExpr(a.Value, b.Value) && EqualExpr(a.Body, b.Body)
	case *Match:
		b, ok := b.(*Match)
		if !ok || !EqualExpr(a.Scrutinee, b.Scrutinee) || len(a.Arms) != len(b.Arms) {
			return false
		}
		for i := range a.Arms {
			if !EqualPattern(a.Arms[i].Pat, b.Arms[i].Pat) || !EqualExpr(a.Arms[i].Body, b.Arms[i].Body) {
				return false
			}
		}
		return true
	case *TupleE:
		b, ok := b.(*TupleE)
		return ok && equalExprs(a.Elems, b.Elems)
	case *ArrayE:
		b, ok := b.(*ArrayE)
		return ok && equalExprs(a.Elems, b.Elems)
	case *VariantE:
		b, ok := b.(*VariantE)
		if !ok || a.Ctor != b.Ctor || (a.Payload == nil) != (b.Payload == nil) {
			return false
		}
		return a.Payload == nil || EqualExpr(a.Payload, b.Payload)
	case *Proj:
		b, ok := b.(*Proj)
		return ok && a.Field == b.Field && EqualExpr(a.Tuple, b.Tuple)
	case *MapE:
		b, ok := b.(*MapE)
		return ok && EqualExpr(a.Over, b.Over) && EqualExpr(a.Fn, b.Fn)
	case *FilterE:
		b, ok := b.(*FilterE)
		return ok && EqualExpr(a.Over, b.Over) && EqualExpr(a.Fn, b.Fn)
	case *BindE:
		b, ok := b.(*BindE)
		return ok && EqualExpr(a.Over, b.Over) && EqualExpr(a.Fn, b.Fn)
	case *ZipWithE:
		b, ok := b.(*ZipWithE)
		return ok && EqualExpr(a.A, b.A) && EqualExpr(a.B, b.B) && EqualExpr(a.Fn, b.Fn)
	case *ConcatE:
		b, ok := b.(*ConcatE)
		return ok && EqualExpr(a.A, b.A) && EqualExpr(a.B, b.B)
	case *SumE:
		b, ok := b.(*SumE)
		return ok && EqualExpr(a.X, b.X)
	case *ProductE:
		b, ok := b.(*ProductE)
		return ok && EqualExpr(a.X, b.X)
	case *ComposeE:
		b, ok := b.(*ComposeE)
		return ok && EqualExpr(a.F, b.F) && EqualExpr(a.G, b.G)
	case *Precond:
		b, ok := b.(*Precond)
		return ok && EqualExpr(a.Cond, b.Cond) && EqualExpr(a.Body, b.Body)
	case *Postcond:
		b, ok := b.(*Postcond)
		return ok && EqualExpr(a.Cond, b.Cond) && EqualExpr(a.Body, b.Body)
	default:
		return false
	}
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualPattern reports structural equality of two patterns. PVar name
// hints are presentation only and are ignored.
func EqualPattern(a, b Pattern) bool {
	switch a := a.(type) {
	case *PWildcard:
		_, ok := b.(*PWildcard)
		return ok
	case *PVar:
		_, ok := b.(*PVar)
		return ok
	case *PLit:
		b, ok := b.(*PLit)
		return ok && a.Value == b.Value
	case *PArray:
		b, ok := b.(*PArray)
		return ok && equalPatterns(a.Elems, b.Elems)
	case *PArraySplit:
		b, ok := b.(*PArraySplit)
		return ok && equalPatterns(a.Head, b.Head) && EqualPattern(a.Tail, b.Tail)
	case *PTuple:
		b, ok := b.(*PTuple)
		return ok && equalPatterns(a.Elems, b.Elems)
	case *PVariant:
		b, ok := b.(*PVariant)
		if !ok || a.Ctor != b.Ctor || (a.Payload == nil) != (b.Payload == nil) {
			return false
		}
		return a.Payload == nil || EqualPattern(a.Payload, b.Payload)
	case *PTyped:
		b, ok := b.(*PTyped)
		return ok && EqualPattern(a.Pat, b.Pat) && EqualType(a.Type, b.Type)
	case *POr:
		b, ok := b.(*POr)
		return ok && EqualPattern(a.A, b.A) && EqualPattern(a.B, b.B)
	case *PGuard:
		b, ok := b.(*PGuard)
		return ok && EqualPattern(a.Pat, b.Pat) && EqualExpr(a.Cond, b.Cond)
	default:
		return false
	}
}

func equalPatterns(a, b []Pattern) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualPattern(a[i], b[i]) {
			return false
		}
	}
	return true
}
