package ast

// Expr is the interface implemented by every expression node. The set
// of implementations is closed; consumers switch exhaustively over it.
type Expr interface {
	exprNode()
}

// Lit is a literal constant expression.
type Lit struct {
	Value Literal
}

// Idx is a De Bruijn index: a positional reference to an enclosing
// binder. Level 0 is the innermost binder; each enclosing binder adds
// one. An Idx is well-formed only when Level is strictly less than the
// number of binders in scope at its position.
type Idx struct {
	Level int
}

// Name refers to a top-level declaration by identifier. Resolution is
// by lookup in the module's declaration table, never depth-relative,
// so recursion through a Name consumes no index level.
type Name struct {
	Ident string
}

// Lambda is a function literal. It binds exactly one position and
// carries no parameter name; the body refers to the argument as Idx 0.
type Lambda struct {
	Body Expr
}

// App applies a function to a single argument. Multi-argument calls
// are nested applications of curried functions.
type App struct {
	Fn  Expr
	Arg Expr
}

// If is the conditional expression.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// BinExpr applies a binary operator.
type BinExpr struct {
	Op Op
	L  Expr
	R  Expr
}

// UnExpr applies a unary operator.
type UnExpr struct {
	Op Op
	X  Expr
}

// Let binds the value, destructured by Pat, over Body. The bindings
// introduced by Pat are in scope in Body only.
type Let struct {
	Pat   Pattern
	Value Expr
	Body  Expr
}

// Match scrutinizes a value against ordered arms.
type Match struct {
	Scrutinee Expr
	Arms      []Arm
}

// Arm is one match arm. Its body is evaluated with the arm pattern's
// bindings pushed innermost, counted left-to-right.
type Arm struct {
	Pat  Pattern
	Body Expr
}

// TupleE constructs a tuple. The empty tuple is the unit value.
type TupleE struct {
	Elems []Expr
}

// ArrayE constructs a rank-1 tensor from its elements.
type ArrayE struct {
	Elems []Expr
}

// VariantE constructs a tagged variant value. Payload is nil for
// nullary constructors.
type VariantE struct {
	Ctor    string
	Payload Expr
}

// Proj projects a tuple field by position.
type Proj struct {
	Tuple Expr
	Field int
}

// MapE applies Fn to each element of Over. Rendered with ↦.
type MapE struct {
	Over Expr
	Fn   Expr
}

// FilterE keeps the elements of Over for which Fn holds. Rendered
// with ▸.
type FilterE struct {
	Over Expr
	Fn   Expr
}

// BindE applies Fn to each element of Over and concatenates the
// results. Rendered with ⤇.
type BindE struct {
	Over Expr
	Fn   Expr
}

// ZipWithE combines A and B element-wise through Fn. Rendered with ⊗.
type ZipWithE struct {
	A  Expr
	B  Expr
	Fn Expr
}

// ConcatE concatenates two tensors along their leading dimension.
// Rendered with ⊕.
type ConcatE struct {
	A Expr
	B Expr
}

// SumE reduces a tensor by addition. Rendered with Σ.
type SumE struct {
	X Expr
}

// ProductE reduces a tensor by multiplication. Rendered with Π.
type ProductE struct {
	X Expr
}

// ComposeE is function composition: (F ∘ G) x = F (G x).
type ComposeE struct {
	F Expr
	G Expr
}

// Precond attaches a boolean contract that must hold before Body is
// evaluated. Rendered with ⊢.
type Precond struct {
	Cond Expr
	Body Expr
}

// Postcond attaches a boolean contract over the result of Body.
// Rendered with ⊨.
type Postcond struct {
	Cond Expr
	Body Expr
}

func (*Lit) exprNode()      {}
func (*Idx) exprNode()      {}
func (*Name) exprNode()     {}
func (*Lambda) exprNode()   {}
func (*App) exprNode()      {}
func (*If) exprNode()       {}
func (*BinExpr) exprNode()  {}
func (*UnExpr) exprNode()   {}
func (*Let) exprNode()      {}
func (*Match) exprNode()    {}
func (*TupleE) exprNode()   {}
func (*ArrayE) exprNode()   {}
func (*VariantE) exprNode() {}
func (*Proj) exprNode()     {}
func (*MapE) exprNode()     {}
func (*FilterE) exprNode()  {}
func (*BindE) exprNode()    {}
func (*ZipWithE) exprNode() {}
func (*ConcatE) exprNode()  {}
func (*SumE) exprNode()     {}
func (*ProductE) exprNode() {}
func (*ComposeE) exprNode() {}
func (*Precond) exprNode()  {}
func (*Postcond) exprNode() {}

// Builder helpers, the programmatic construction path. The parser is
// the other producer of these nodes.

// Int builds an integer literal expression.
func Int(v int64) Expr { return &Lit{Value: IntLit(v)} }

// Float builds a float literal expression.
func Float(v float64) Expr { return &Lit{Value: FloatLit(v)} }

// Bool builds a boolean literal expression.
func Bool(v bool) Expr { return &Lit{Value: BoolLit(v)} }

// Unit builds the unit literal expression.
func Unit() Expr { return &Lit{Value: UnitLit()} }

// Index builds a De Bruijn index expression.
func Index(level int) Expr { return &Idx{Level: level} }

// Ref builds a declaration reference.
func Ref(ident string) Expr { return &Name{Ident: ident} }

// Lam wraps body in a single-binder lambda.
func Lam(body Expr) Expr { return &Lambda{Body: body} }

// Apply builds fn arg, folding extra arguments into nested
// applications left to right.
func Apply(fn Expr, args ...Expr) Expr {
	e := fn
	for _, a := range args {
		e = &App{Fn: e, Arg: a}
	}
	return e
}

// Bin builds a binary operator application.
func Bin(op Op, l, r Expr) Expr { return &BinExpr{Op: op, L: l, R: r} }

// Un builds a unary operator application.
func Un(op Op, x Expr) Expr { return &UnExpr{Op: op, X: x} }

// Add builds l + r.
func Add(l, r Expr) Expr { return Bin(OpAdd, l, r) }

// Sub builds l - r.
func Sub(l, r Expr) Expr { return Bin(OpSub, l, r) }

// Mul builds l × r.
func Mul(l, r Expr) Expr { return Bin(OpMul, l, r) }

// Cond builds a conditional expression.
func Cond(cond, then, els Expr) Expr { return &If{Cond: cond, Then: then, Else: els} }
