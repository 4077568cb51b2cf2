package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DimOp enumerates arithmetic over dimensions, used by dependent
// shapes such as [n+1]F64.
type DimOp int

const (
	DimAdd DimOp = iota
	DimSub
	DimMul
	DimDiv
)

// String returns the rendering of the dimension operator.
func (op DimOp) String() string {
	switch op {
	case DimAdd:
		return "+"
	case DimSub:
		return "-"
	case DimMul:
		return "×"
	case DimDiv:
		return "/"
	default:
		return fmt.Sprintf("DimOp(%d)", int(op))
	}
}

// Dim is a single dimension descriptor in a tensor shape.
type Dim interface {
	dimNode()
	String() string
}

// DimConst is a dimension with a fixed size.
type DimConst struct {
	N uint64
}

// DimVar is a symbolic dimension. The name is scoped to the enclosing
// declaration signature; this layer never merges scopes, so within any
// one comparison equal names denote the same binding.
type DimVar struct {
	Name string
}

// DimExpr is an arithmetic combination of two dimensions.
type DimExpr struct {
	L  Dim
	Op DimOp
	R  Dim
}

func (*DimConst) dimNode() {}
func (*DimVar) dimNode()   {}
func (*DimExpr) dimNode()  {}

func (d *DimConst) String() string { return strconv.FormatUint(d.N, 10) }
func (d *DimVar) String() string   { return d.Name }
func (d *DimExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", d.L, d.Op, d.R)
}

// ConstDim builds a fixed dimension.
func ConstDim(n uint64) Dim { return &DimConst{N: n} }

// VarDim builds a symbolic dimension.
func VarDim(name string) Dim { return &DimVar{Name: name} }

// Shape is an ordered list of dimensions. A nil or empty Shape is the
// scalar shape.
type Shape []Dim

// Scalar returns the rank-0 shape.
func Scalar() Shape { return Shape{} }

// Vector returns the rank-1 shape [n].
func Vector(n Dim) Shape { return Shape{n} }

// Matrix returns the rank-2 shape [m n].
func Matrix(m, n Dim) Shape { return Shape{m, n} }

// Concrete builds a shape from fixed sizes.
func Concrete(dims ...uint64) Shape {
	s := make(Shape, len(dims))
	for i, d := range dims {
		s[i] = ConstDim(d)
	}
	return s
}

// Symbolic builds a shape from symbolic names.
func Symbolic(names ...string) Shape {
	s := make(Shape, len(names))
	for i, n := range names {
		s[i] = VarDim(n)
	}
	return s
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// IsConcrete reports whether every dimension has a fixed size.
func (s Shape) IsConcrete() bool {
	for _, d := range s {
		if _, ok := d.(*DimConst); !ok {
			return false
		}
	}
	return true
}

// ElemCount returns the total element count of a concrete shape. The
// second result is false when any dimension is symbolic.
func (s Shape) ElemCount() (uint64, bool) {
	var n uint64 = 1
	for _, d := range s {
		c, ok := d.(*DimConst)
		if !ok {
			return 0, false
		}
		n *= c.N
	}
	return n, true
}

// EqualDim reports structural equality of two dimension descriptors.
func EqualDim(a, b Dim) bool {
	switch a := a.(type) {
	case *DimConst:
		b, ok := b.(*DimConst)
		return ok && a.N == b.N
	case *DimVar:
		b, ok := b.(*DimVar)
		return ok && a.Name == b.Name
	case *DimExpr:
		b, ok := b.(*DimExpr)
		return ok && a.Op == b.Op && EqualDim(a.L, b.L) && EqualDim(a.R, b.R)
	default:
		return false
	}
}

// Equal reports position-wise structural equality: equal rank, and
// each dimension equal (fixed by value, symbolic by binding).
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !EqualDim(s[i], other[i]) {
			return false
		}
	}
	return true
}

// SubstDim replaces every occurrence of the symbolic dimension name
// with repl, returning a new dimension tree. Unchanged subtrees are
// shared with the input.
func SubstDim(d Dim, name string, repl Dim) Dim {
	switch d := d.(type) {
	case *DimConst:
		return d
	case *DimVar:
		if d.Name == name {
			return repl
		}
		return d
	case *DimExpr:
		l := SubstDim(d.L, name, repl)
		r := SubstDim(d.R, name, repl)
		if l == d.L && r == d.R {
			return d
		}
		return &DimExpr{L: l, Op: d.Op, R: r}
	default:
		return d
	}
}

// Subst replaces the symbolic dimension name throughout the shape.
func (s Shape) Subst(name string, repl Dim) Shape {
	changed := false
	out := make(Shape, len(s))
	for i, d := range s {
		out[i] = SubstDim(d, name, repl)
		if out[i] != d {
			changed = true
		}
	}
	if !changed {
		return s
	}
	return out
}

// String renders the shape as a bracketed dimension list, e.g. [3 n].
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.String())
	}
	b.WriteByte(']')
	return b.String()
}
