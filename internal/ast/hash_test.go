package ast

import "testing"

// Hashing must agree with structural equality: equal trees hash equal.
func TestHashExprAgreesWithEqual(t *testing.T) {
	build := func() Expr {
		return &Match{
			Scrutinee: Ref("xs"),
			Arms: []Arm{
				{Pat: TuplePat(BindVar("a"), Wildcard()), Body: Add(Index(0), Int(1))},
				{Pat: Wildcard(), Body: Int(0)},
			},
		}
	}
	a, b := build(), build()
	if !EqualExpr(a, b) {
		t.Fatal("identically built trees are not equal")
	}
	if HashExpr(a) != HashExpr(b) {
		t.Error("equal trees hash differently")
	}
}

// Variable name hints in patterns are documentation, not identity, so
// they contribute to neither equality nor the hash.
func TestHashIgnoresNameHints(t *testing.T) {
	a := &Let{Pat: BindVar("x"), Value: Int(1), Body: Index(0)}
	b := &Let{Pat: BindVar("y"), Value: Int(1), Body: Index(0)}
	if !EqualExpr(a, b) {
		t.Fatal("trees differing only in name hints are not equal")
	}
	if HashExpr(a) != HashExpr(b) {
		t.Error("name hint changed the hash")
	}
}

func TestHashExprDistinguishes(t *testing.T) {
	pairs := [][2]Expr{
		{Int(1), Int(2)},
		{Int(1), Float(1)},
		{Add(Index(0), Index(1)), Sub(Index(0), Index(1))},
		{Lam(Index(0)), Index(0)},
		{&TupleE{Elems: []Expr{Int(1)}}, &ArrayE{Elems: []Expr{Int(1)}}},
		{&SumE{X: Ref("v")}, &ProductE{X: Ref("v")}},
		{
			&Precond{Cond: Bool(true), Body: Int(1)},
			&Postcond{Cond: Bool(true), Body: Int(1)},
		},
	}
	for _, p := range pairs {
		if HashExpr(p[0]) == HashExpr(p[1]) {
			t.Errorf("distinct trees %v and %v collide", p[0], p[1])
		}
	}
}

func TestHashType(t *testing.T) {
	iv := UnitInterval()
	a := RefinedType(PrimType(F64), &iv, Bin(OpGe, Index(0), Float(0)))
	iv2 := UnitInterval()
	b := RefinedType(PrimType(F64), &iv2, Bin(OpGe, Index(0), Float(0)))
	if !EqualType(a, b) {
		t.Fatal("identically built types are not equal")
	}
	if HashType(a) != HashType(b) {
		t.Error("equal types hash differently")
	}

	pairs := [][2]Type{
		{PrimType(I64), PrimType(F64)},
		{PrimType(BoolT), NamedType("Bool")},
		{TensorOf(Concrete(3), PrimType(F64)), TensorOf(Concrete(4), PrimType(F64))},
		{TensorOf(Symbolic("n"), PrimType(F64)), TensorOf(Symbolic("m"), PrimType(F64))},
		{
			FuncType(PrimType(I64), PrimType(I64)),
			FuncTypeE(PrimType(I64), PrimType(I64), NewEffects(IO)),
		},
	}
	for _, p := range pairs {
		if HashType(p[0]) == HashType(p[1]) {
			t.Errorf("distinct types %v and %v collide", p[0], p[1])
		}
	}
}

func TestEqualTypeShapes(t *testing.T) {
	vec := func(d Dim) Type { return VectorOf(d, PrimType(F64)) }
	if !EqualType(vec(ConstDim(3)), vec(ConstDim(3))) {
		t.Error("equal tensor types reported unequal")
	}
	if EqualType(vec(ConstDim(3)), vec(VarDim("n"))) {
		t.Error("concrete and symbolic dimension reported equal")
	}
}

func TestSubstShapeVar(t *testing.T) {
	in := FuncType(
		VectorOf(VarDim("n"), PrimType(F64)),
		TensorOf(Matrix(VarDim("n"), ConstDim(2)), PrimType(F64)),
	)
	got := SubstShapeVar(in, "n", ConstDim(8))
	want := FuncType(
		VectorOf(ConstDim(8), PrimType(F64)),
		TensorOf(Matrix(ConstDim(8), ConstDim(2)), PrimType(F64)),
	)
	if !EqualType(got, want) {
		t.Fatalf("SubstShapeVar = %v, want %v", got, want)
	}

	untouched := FuncType(PrimType(I64), PrimType(I64))
	if SubstShapeVar(untouched, "n", ConstDim(8)) != untouched {
		t.Error("substitution with no occurrences rebuilt the type")
	}
}
