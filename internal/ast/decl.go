package ast

// Decl is a top-level declaration. The set of implementations is
// closed: function, type alias and value declarations.
type Decl interface {
	declNode()
	// DeclName returns the identifier this declaration binds in the
	// module table.
	DeclName() string
}

// FnDecl declares a named function. Preconds and Postconds are
// contract clauses validated with the function's curried parameters in
// scope (innermost parameter at index 0).
type FnDecl struct {
	Name      string
	Signature Type
	Preconds  []Expr
	Postconds []Expr
	Body      Expr
}

// TypeDecl binds a name to a type definition.
type TypeDecl struct {
	Name       string
	Definition Type
}

// LetDecl binds a name to a value at module level. Type is optional.
type LetDecl struct {
	Name  string
	Type  Type
	Value Expr
}

func (*FnDecl) declNode()   {}
func (*TypeDecl) declNode() {}
func (*LetDecl) declNode()  {}

func (d *FnDecl) DeclName() string   { return d.Name }
func (d *TypeDecl) DeclName() string { return d.Name }
func (d *LetDecl) DeclName() string  { return d.Name }

// Module is an ordered sequence of declarations. Order matters for
// presentation only: names resolve through the whole-module table, so
// declarations may refer to themselves and to later declarations
// without consuming an index level.
type Module struct {
	Name  string
	Decls []Decl
}

// NewModule builds a module from declarations.
func NewModule(name string, decls ...Decl) *Module {
	return &Module{Name: name, Decls: decls}
}

// Decl looks a declaration up by name. Later declarations shadow
// earlier ones with the same name, matching table semantics.
func (m *Module) Decl(name string) (Decl, bool) {
	for i := len(m.Decls) - 1; i >= 0; i-- {
		if m.Decls[i].DeclName() == name {
			return m.Decls[i], true
		}
	}
	return nil, false
}

// DeclTable returns the name → declaration table.
func (m *Module) DeclTable() map[string]Decl {
	t := make(map[string]Decl, len(m.Decls))
	for _, d := range m.Decls {
		t[d.DeclName()] = d
	}
	return t
}

// EqualDecl reports structural equality of two declarations.
func EqualDecl(a, b Decl) bool {
	switch a := a.(type) {
	case *FnDecl:
		b, ok := b.(*FnDecl)
		return ok && a.Name == b.Name &&
			EqualType(a.Signature, b.Signature) &&
			equalExprs(a.Preconds, b.Preconds) &&
			equalExprs(a.Postconds, b.Postconds) &&
			EqualExpr(a.Body, b.Body)
	case *TypeDecl:
		b, ok := b.(*TypeDecl)
		return ok && a.Name == b.Name && EqualType(a.Definition, b.Definition)
	case *LetDecl:
		b, ok := b.(*LetDecl)
		if !ok || a.Name != b.Name || (a.Type == nil) != (b.Type == nil) {
			return false
		}
		if a.Type != nil && !EqualType(a.Type, b.Type) {
			return false
		}
		return EqualExpr(a.Value, b.Value)
	default:
		return false
	}
}

// Equal reports structural equality of two modules, declaration order
// included.
func (m *Module) Equal(other *Module) bool {
	if m.Name != other.Name || len(m.Decls) != len(other.Decls) {
		return false
	}
	for i := range m.Decls {
		if !EqualDecl(m.Decls[i], other.Decls[i]) {
			return false
		}
	}
	return true
}
