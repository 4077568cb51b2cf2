package ast

// Walk calls f for e and then, if f returns true, for each child
// expression in syntactic order. Guard conditions and refinement
// predicates embedded in patterns and types are visited too, since
// they are expressions like any other. Walk never mutates the tree;
// consumers that need per-node facts attach them in their own maps
// keyed by node.
func Walk(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	switch e := e.(type) {
	case *Lit, *Idx, *Name:
	case *Lambda:
		Walk(e.Body, f)
	case *App:
		Walk(e.Fn, f)
		Walk(e.Arg, f)
	case *If:
		Walk(e.Cond, f)
		Walk(e.Then, f)
		Walk(e.Else, f)
	case *BinExpr:
		Walk(e.L, f)
		Walk(e.R, f)
	case *UnExpr:
		Walk(e.X, f)
	case *Let:
		walkPattern(e.Pat, f)
		Walk(e.Value, f)
		Walk(e.Body, f)
	case *Match:
		Walk(e.Scrutinee, f)
		for _, arm := range e.Arms {
			walkPattern(arm.Pat, f)
			Walk(arm.Body, f)
		}
	case *TupleE:
		for _, x := range e.Elems {
			Walk(x, f)
		}
	case *ArrayE:
		for _, x := range e.Elems {
			Walk(x, f)
		}
	case *VariantE:
		if e.Payload != nil {
			Walk(e.Payload, f)
		}
	case *Proj:
		Walk(e.Tuple, f)
	case *MapE:
		Walk(e.Over, f)
		Walk(e.Fn, f)
	case *FilterE:
		Walk(e.Over, f)
		Walk(e.Fn, f)
	case *BindE:
		Walk(e.Over, f)
		Walk(e.Fn, f)
	case *ZipWithE:
		Walk(e.A, f)
		Walk(e.B, f)
		Walk(e.Fn, f)
	case *ConcatE:
		Walk(e.A, f)
		Walk(e.B, f)
	case *SumE:
		Walk(e.X, f)
	case *ProductE:
		Walk(e.X, f)
	case *ComposeE:
		Walk(e.F, f)
		Walk(e.G, f)
	case *Precond:
		Walk(e.Cond, f)
		Walk(e.Body, f)
	case *Postcond:
		Walk(e.Cond, f)
		Walk(e.Body, f)
	}
}

func walkPattern(p Pattern, f func(Expr) bool) {
	switch p := p.(type) {
	case *PArray:
		for _, q := range p.Elems {
			walkPattern(q, f)
		}
	case *PArraySplit:
		for _, q := range p.Head {
			walkPattern(q, f)
		}
		walkPattern(p.Tail, f)
	case *PTuple:
		for _, q := range p.Elems {
			walkPattern(q, f)
		}
	case *PVariant:
		if p.Payload != nil {
			walkPattern(p.Payload, f)
		}
	case *PTyped:
		walkPattern(p.Pat, f)
		walkTypePreds(p.Type, f)
	case *POr:
		walkPattern(p.A, f)
		walkPattern(p.B, f)
	case *PGuard:
		walkPattern(p.Pat, f)
		Walk(p.Cond, f)
	}
}

func walkTypePreds(t Type, f func(Expr) bool) {
	switch t := t.(type) {
	case *Tensor:
		walkTypePreds(t.Elem, f)
	case *Func:
		walkTypePreds(t.Param, f)
		walkTypePreds(t.Result, f)
	case *TupleT:
		for _, e := range t.Elems {
			walkTypePreds(e, f)
		}
	case *Refined:
		walkTypePreds(t.Base, f)
		if t.Pred != nil {
			Walk(t.Pred, f)
		}
	}
}
