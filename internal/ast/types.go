package ast

import "fmt"

// PrimKind enumerates the primitive type constants.
type PrimKind int

const (
	I64 PrimKind = iota
	F64
	BoolT
	UnitT
)

// String returns the type constant's name.
func (k PrimKind) String() string {
	switch k {
	case I64:
		return "I64"
	case F64:
		return "F64"
	case BoolT:
		return "Bool"
	case UnitT:
		return "Unit"
	default:
		return fmt.Sprintf("Prim(%d)", int(k))
	}
}

// Type is the interface implemented by every type node. The set of
// implementations is closed.
type Type interface {
	typeNode()
}

// Prim is a primitive type.
type Prim struct {
	Kind PrimKind
}

// Named refers to a type declaration by identifier, resolved in the
// module's declaration table.
type Named struct {
	Ident string
}

// Tensor is a multidimensional array type with element type Elem.
type Tensor struct {
	Shape Shape
	Elem  Type
}

// Func is a single-argument function type. Effects is the row required
// to apply the function; multi-argument functions are curried chains
// of Func where only the final arrow carries a non-pure row.
type Func struct {
	Param   Type
	Result  Type
	Effects Effects
}

// TupleT is a product of types; the empty product is Unit's structural
// cousin and is kept distinct from Prim{UnitT}.
type TupleT struct {
	Elems []Type
}

// Refined narrows Base by a numeric interval, a boolean predicate, or
// both. In Pred, Idx 0 denotes the value being refined; the predicate
// body therefore starts one binder deep.
type Refined struct {
	Base     Type
	Interval *Interval
	Pred     Expr
}

func (*Prim) typeNode()    {}
func (*Named) typeNode()   {}
func (*Tensor) typeNode()  {}
func (*Func) typeNode()    {}
func (*TupleT) typeNode()  {}
func (*Refined) typeNode() {}

// PrimType builds a primitive type.
func PrimType(k PrimKind) Type { return &Prim{Kind: k} }

// NamedType builds a reference to a declared type.
func NamedType(ident string) Type { return &Named{Ident: ident} }

// TensorOf builds a tensor type.
func TensorOf(shape Shape, elem Type) Type { return &Tensor{Shape: shape, Elem: elem} }

// VectorOf builds the rank-1 tensor type [n]elem.
func VectorOf(n Dim, elem Type) Type { return TensorOf(Vector(n), elem) }

// FuncType builds a single-argument pure function type.
func FuncType(param, result Type) Type {
	return &Func{Param: param, Result: result, Effects: Pure()}
}

// FuncTypeE builds a single-argument function type with an effect row.
func FuncTypeE(param, result Type, effects Effects) Type {
	return &Func{Param: param, Result: result, Effects: effects}
}

// FuncN builds the curried chain p₀ → p₁ → … → result. Only the final
// arrow carries the effect row; the partial applications before it are
// pure. An empty parameter list yields a thunk over Unit.
func FuncN(params []Type, result Type, effects Effects) Type {
	if len(params) == 0 {
		return FuncTypeE(PrimType(UnitT), result, effects)
	}
	t := FuncTypeE(params[len(params)-1], result, effects)
	for i := len(params) - 2; i >= 0; i-- {
		t = FuncType(params[i], t)
	}
	return t
}

// TupleType builds a product type.
func TupleType(elems ...Type) Type { return &TupleT{Elems: elems} }

// RefinedType narrows base by an optional interval and optional
// predicate; passing a zero Interval pointer and nil predicate is a
// caller bug, not checked here.
func RefinedType(base Type, interval *Interval, pred Expr) Type {
	return &Refined{Base: base, Interval: interval, Pred: pred}
}

// EqualType reports structural equality. Symbolic shape dimensions
// compare by binding identity per Shape.Equal; refinement predicates
// compare node-for-node, which is semantic equality under positional
// binding.
func EqualType(a, b Type) bool {
	switch a := a.(type) {
	case *Prim:
		b, ok := b.(*Prim)
		return ok && a.Kind == b.Kind
	case *Named:
		b, ok := b.(*Named)
		return ok && a.Ident == b.Ident
	case *Tensor:
		b, ok := b.(*Tensor)
		return ok && a.Shape.Equal(b.Shape) && EqualType(a.Elem, b.Elem)
	case *Func:
		b, ok := b.(*Func)
		return ok && EqualType(a.Param, b.Param) && EqualType(a.Result, b.Result) &&
			a.Effects.Equal(b.Effects)
	case *TupleT:
		b, ok := b.(*TupleT)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !EqualType(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *Refined:
		b, ok := b.(*Refined)
		if !ok || !EqualType(a.Base, b.Base) {
			return false
		}
		if (a.Interval == nil) != (b.Interval == nil) {
			return false
		}
		if a.Interval != nil && !a.Interval.Equal(*b.Interval) {
			return false
		}
		if (a.Pred == nil) != (b.Pred == nil) {
			return false
		}
		return a.Pred == nil || EqualExpr(a.Pred, b.Pred)
	default:
		return false
	}
}

// SubstShapeVar replaces the symbolic dimension name with repl
// throughout a type, instantiating one shape variable of a
// shape-polymorphic signature. Unchanged subtrees are shared.
func SubstShapeVar(t Type, name string, repl Dim) Type {
	switch t := t.(type) {
	case *Prim, *Named:
		return t
	case *Tensor:
		shape := t.Shape.Subst(name, repl)
		elem := SubstShapeVar(t.Elem, name, repl)
		if shapeIdentical(shape, t.Shape) && elem == t.Elem {
			return t
		}
		return &Tensor{Shape: shape, Elem: elem}
	case *Func:
		param := SubstShapeVar(t.Param, name, repl)
		result := SubstShapeVar(t.Result, name, repl)
		if param == t.Param && result == t.Result {
			return t
		}
		return &Func{Param: param, Result: result, Effects: t.Effects}
	case *TupleT:
		changed := false
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = SubstShapeVar(e, name, repl)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &TupleT{Elems: elems}
	case *Refined:
		base := SubstShapeVar(t.Base, name, repl)
		if base == t.Base {
			return t
		}
		return &Refined{Base: base, Interval: t.Interval, Pred: t.Pred}
	default:
		return t
	}
}

func shapeIdentical(a, b Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Arity returns the number of curried parameters of t: the length of
// the right-nested Func chain. Non-function types have arity 0.
func Arity(t Type) int {
	n := 0
	for {
		f, ok := t.(*Func)
		if !ok {
			return n
		}
		n++
		t = f.Result
	}
}
