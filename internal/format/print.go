package format

import (
	"strconv"

	"github.com/goth-lang/goth/internal/ast"
)

// Precedence levels, loosest first. The same table decides
// parenthesization for every rendering mode.
const (
	precLowest     = iota // λ, let, if, match, ⊢, ⊨
	precOr                // ∨
	precAnd               // ∧
	precCompare           // = ≠ < ≤ > ≥, non-associative
	precCombinator        // ↦ ▸ ⤇
	precAdd               // + - ⊕
	precMul               // × ÷ %
	precPow               // ^, right-associative
	precUnary             // − ¬ ⌊ ⌈ √ Σ Π
	precCompose           // ∘
	precApp               // juxtaposition
	precAtom
)

type assoc int

const (
	assocLeft assoc = iota
	assocRight
	assocNone
)

func binPrec(op ast.Op) (int, assoc) {
	switch op {
	case ast.OpAdd, ast.OpSub:
		return precAdd, assocLeft
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return precMul, assocLeft
	case ast.OpPow:
		return precPow, assocRight
	case ast.OpAnd:
		return precAnd, assocLeft
	case ast.OpOr:
		return precOr, assocLeft
	default: // the comparison family
		return precCompare, assocNone
	}
}

func (p *printer) module(m *ast.Module) {
	if m.Name != "" {
		p.write("module ")
		p.write(m.Name)
		p.write("\n\n")
	}
	for i, d := range m.Decls {
		if i > 0 {
			p.write("\n")
		}
		p.decl(d)
	}
}

func (p *printer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FnDecl:
		p.pick("╭─ ", "/- ")
		p.write(d.Name)
		p.write(" : ")
		p.typ(d.Signature, false)
		p.write("\n")
		for _, pre := range d.Preconds {
			p.pick("│  ", "|  ")
			p.op(ast.OpPrecond)
			p.write(" ")
			p.expr(pre, precLowest)
			p.write("\n")
		}
		for _, post := range d.Postconds {
			p.pick("│  ", "|  ")
			p.op(ast.OpPostcond)
			p.write(" ")
			p.expr(post, precLowest)
			p.write("\n")
		}
		p.pick("╰─ ", "\\- ")
		p.expr(d.Body, precLowest)
		p.write("\n")
	case *ast.TypeDecl:
		p.write(d.Name)
		p.pick(" ≡ ", " == ")
		p.typ(d.Definition, false)
		p.write("\n")
	case *ast.LetDecl:
		p.write("let ")
		p.write(d.Name)
		if d.Type != nil {
			p.write(" : ")
			p.typ(d.Type, false)
		}
		p.pick(" ← ", " <- ")
		p.expr(d.Value, precLowest)
		p.write("\n")
	}
}

func (p *printer) expr(e ast.Expr, min int) {
	prec := exprPrec(e)
	if prec < min {
		p.write("(")
		p.expr(e, precLowest)
		p.write(")")
		return
	}
	switch e := e.(type) {
	case *ast.Lit:
		p.write(e.Value.String())
	case *ast.Idx:
		p.index(e.Level)
	case *ast.Name:
		p.write(e.Ident)
	case *ast.Lambda:
		p.op(ast.OpLambda)
		p.write(" ")
		p.expr(e.Body, precLowest)
	case *ast.App:
		p.expr(e.Fn, precApp)
		p.write(" ")
		p.expr(e.Arg, precAtom)
	case *ast.If:
		p.write("if ")
		p.expr(e.Cond, precLowest)
		p.write(" then ")
		p.expr(e.Then, precLowest)
		p.write(" else ")
		p.expr(e.Else, precLowest)
	case *ast.BinExpr:
		bp, as := binPrec(e.Op)
		lmin, rmin := bp, bp+1
		switch as {
		case assocRight:
			lmin, rmin = bp+1, bp
		case assocNone:
			lmin, rmin = bp+1, bp+1
		}
		p.expr(e.L, lmin)
		p.write(" ")
		p.op(e.Op)
		p.write(" ")
		p.expr(e.R, rmin)
	case *ast.UnExpr:
		p.op(e.Op)
		p.expr(e.X, precUnary)
	case *ast.Let:
		p.write("let ")
		p.pattern(e.Pat)
		p.pick(" ← ", " <- ")
		p.expr(e.Value, precOr)
		p.write(" in ")
		p.expr(e.Body, precLowest)
	case *ast.Match:
		p.write("match ")
		p.expr(e.Scrutinee, precOr)
		p.write(" with")
		for _, arm := range e.Arms {
			p.write(" | ")
			p.pattern(arm.Pat)
			p.pick(" → ", " -> ")
			p.expr(arm.Body, precOr)
		}
	case *ast.TupleE:
		p.pick("⟨", "(")
		for i, x := range e.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.expr(x, precLowest)
		}
		p.pick("⟩", ")")
	case *ast.ArrayE:
		p.write("[")
		for i, x := range e.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.expr(x, precLowest)
		}
		p.write("]")
	case *ast.VariantE:
		p.write(e.Ctor)
		if e.Payload != nil {
			p.write(" ")
			p.expr(e.Payload, precAtom)
		}
	case *ast.Proj:
		p.expr(e.Tuple, precAtom)
		p.write(".")
		p.write(strconv.Itoa(e.Field))
	case *ast.MapE:
		p.combinator(ast.OpMap, e.Over, e.Fn)
	case *ast.FilterE:
		p.combinator(ast.OpFilter, e.Over, e.Fn)
	case *ast.BindE:
		p.combinator(ast.OpBind, e.Over, e.Fn)
	case *ast.ZipWithE:
		p.op(ast.OpZipWith)
		p.write("(")
		p.expr(e.A, precLowest)
		p.write(", ")
		p.expr(e.B, precLowest)
		p.write(", ")
		p.expr(e.Fn, precLowest)
		p.write(")")
	case *ast.ConcatE:
		p.expr(e.A, precAdd)
		p.write(" ")
		p.op(ast.OpConcat)
		p.write(" ")
		p.expr(e.B, precAdd+1)
	case *ast.SumE:
		p.op(ast.OpSum)
		p.write(" ")
		p.expr(e.X, precUnary)
	case *ast.ProductE:
		p.op(ast.OpProduct)
		p.write(" ")
		p.expr(e.X, precUnary)
	case *ast.ComposeE:
		p.expr(e.F, precCompose)
		p.write(" ")
		p.op(ast.OpCompose)
		p.write(" ")
		p.expr(e.G, precCompose+1)
	case *ast.Precond:
		p.expr(e.Cond, precOr)
		p.write(" ")
		p.op(ast.OpPrecond)
		p.write(" ")
		p.expr(e.Body, precLowest)
	case *ast.Postcond:
		p.expr(e.Cond, precOr)
		p.write(" ")
		p.op(ast.OpPostcond)
		p.write(" ")
		p.expr(e.Body, precLowest)
	}
}

func (p *printer) combinator(op ast.Op, over, fn ast.Expr) {
	p.expr(over, precCombinator)
	p.write(" ")
	p.op(op)
	p.write(" ")
	p.expr(fn, precCombinator+1)
}

func exprPrec(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.Lit, *ast.Idx, *ast.Name, *ast.TupleE, *ast.ArrayE, *ast.ZipWithE:
		return precAtom
	case *ast.Proj:
		return precAtom
	case *ast.App:
		return precApp
	case *ast.VariantE:
		if e.Payload == nil {
			return precAtom
		}
		return precApp
	case *ast.ComposeE:
		return precCompose
	case *ast.UnExpr, *ast.SumE, *ast.ProductE:
		return precUnary
	case *ast.BinExpr:
		bp, _ := binPrec(e.Op)
		return bp
	case *ast.MapE, *ast.FilterE, *ast.BindE:
		return precCombinator
	case *ast.ConcatE:
		return precAdd
	default: // λ, let, if, match, ⊢, ⊨
		return precLowest
	}
}

func (p *printer) pattern(pat ast.Pattern) {
	switch pat := pat.(type) {
	case *ast.PWildcard:
		p.write("_")
	case *ast.PVar:
		if pat.Name == "" {
			p.write("_")
		} else {
			p.write(pat.Name)
		}
	case *ast.PLit:
		p.write(pat.Value.String())
	case *ast.PArray:
		p.write("[")
		for i, q := range pat.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.pattern(q)
		}
		p.write("]")
	case *ast.PArraySplit:
		p.write("[")
		for i, q := range pat.Head {
			if i > 0 {
				p.write(", ")
			}
			p.pattern(q)
		}
		p.write(" | ")
		p.pattern(pat.Tail)
		p.write("]")
	case *ast.PTuple:
		p.pick("⟨", "(")
		for i, q := range pat.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.pattern(q)
		}
		p.pick("⟩", ")")
	case *ast.PVariant:
		p.write(pat.Ctor)
		if pat.Payload != nil {
			p.write(" ")
			p.pattern(pat.Payload)
		}
	case *ast.PTyped:
		p.pattern(pat.Pat)
		p.write(" : ")
		p.typ(pat.Type, false)
	case *ast.POr:
		p.pattern(pat.A)
		p.write(" | ")
		p.pattern(pat.B)
	case *ast.PGuard:
		p.pattern(pat.Pat)
		p.write(" if ")
		p.expr(pat.Cond, precOr)
	}
}

// typ renders a type; wrapFunc requests parentheses around function
// types, used on arrow and tensor-element left-hand sides.
func (p *printer) typ(t ast.Type, wrapFunc bool) {
	switch t := t.(type) {
	case *ast.Prim:
		p.write(t.Kind.String())
	case *ast.Named:
		p.write(t.Ident)
	case *ast.Tensor:
		p.shape(t.Shape)
		p.typ(t.Elem, true)
	case *ast.Func:
		if wrapFunc {
			p.write("(")
			p.typ(t, false)
			p.write(")")
			return
		}
		p.typ(t.Param, true)
		if t.Effects.IsPure() {
			p.pick(" → ", " -> ")
		} else {
			p.pick(" →{", " ->{")
			p.effects(t.Effects)
			p.write("} ")
		}
		p.typ(t.Result, false)
	case *ast.TupleT:
		p.pick("⟨", "(")
		for i, e := range t.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.typ(e, false)
		}
		p.pick("⟩", ")")
	case *ast.Refined:
		p.typ(t.Base, true)
		p.op(ast.OpPrecond)
		if t.Interval != nil {
			p.interval(*t.Interval)
		}
		if t.Pred != nil {
			p.write("{")
			p.expr(t.Pred, precLowest)
			p.write("}")
		}
	}
}

func (p *printer) shape(s ast.Shape) {
	p.write("[")
	for i, d := range s {
		if i > 0 {
			p.write(" ")
		}
		p.dim(d)
	}
	p.write("]")
}

func (p *printer) dim(d ast.Dim) {
	switch d := d.(type) {
	case *ast.DimConst:
		p.write(strconv.FormatUint(d.N, 10))
	case *ast.DimVar:
		p.write(d.Name)
	case *ast.DimExpr:
		p.write("(")
		p.dim(d.L)
		switch d.Op {
		case ast.DimAdd:
			p.write(" + ")
		case ast.DimSub:
			p.write(" - ")
		case ast.DimMul:
			p.pick(" × ", " * ")
		case ast.DimDiv:
			p.write(" / ")
		}
		p.dim(d.R)
		p.write(")")
	}
}

func (p *printer) effects(r ast.Effects) {
	if r.IsPure() {
		p.pick("□", "[]")
		return
	}
	for i, e := range r.Elems() {
		if i > 0 {
			p.pick(" ∪ ", " + ")
		}
		p.effect(e)
	}
}

func (p *printer) effect(e ast.Effect) {
	if p.opts.Unicode {
		p.write(e.String())
		return
	}
	switch e.Kind {
	case ast.EffectIO:
		p.write("<io>")
	case ast.EffectMut:
		p.write("<mut>")
	case ast.EffectRand:
		p.write("<rand>")
	case ast.EffectDiv:
		p.write("<div>")
	case ast.EffectExn:
		p.write("<exn:" + e.Tag + ">")
	case ast.EffectFFI:
		p.write("<ffi:'" + e.Tag + ">")
	case ast.EffectCustom:
		p.write("<" + e.Tag + ">")
	case ast.EffectVar:
		p.write("'" + e.Tag)
	}
}

func (p *printer) interval(iv ast.Interval) {
	if iv.LoKind == ast.Inclusive {
		p.write("[")
	} else {
		p.write("(")
	}
	p.bound(iv.Lo)
	p.write("..")
	p.bound(iv.Hi)
	if iv.HiKind == ast.Inclusive {
		p.write("]")
	} else {
		p.write(")")
	}
}

func (p *printer) bound(b ast.Bound) {
	switch b.Sort {
	case ast.BoundNegInf:
		p.pick("-∞", "-inf")
	case ast.BoundPosInf:
		p.pick("∞", "inf")
	case ast.BoundConst:
		p.write(strconv.FormatFloat(b.Value, 'g', -1, 64))
	case ast.BoundVar:
		p.write(b.Name)
	}
}
