package ast

import "testing"

func TestShapeBasics(t *testing.T) {
	s := Matrix(ConstDim(3), VarDim("n"))
	if s.Rank() != 2 {
		t.Fatalf("Rank = %d, want 2", s.Rank())
	}
	if s.IsConcrete() {
		t.Error("shape with a symbolic dimension reported concrete")
	}
	if _, ok := s.ElemCount(); ok {
		t.Error("ElemCount succeeded on a symbolic shape")
	}
	if got := s.String(); got != "[3 n]" {
		t.Errorf("String = %q, want %q", got, "[3 n]")
	}

	c := Concrete(2, 3, 4)
	n, ok := c.ElemCount()
	if !ok || n != 24 {
		t.Errorf("ElemCount = %d, %v; want 24, true", n, ok)
	}
	if sc, ok := Scalar().ElemCount(); !ok || sc != 1 {
		t.Errorf("scalar ElemCount = %d, %v; want 1, true", sc, ok)
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b Shape
		want bool
	}{
		{Concrete(3), Concrete(3), true},
		{Concrete(3), Concrete(4), false},
		{Symbolic("n"), Symbolic("n"), true},
		{Symbolic("n"), Symbolic("m"), false},
		{Concrete(3), Symbolic("n"), false},
		{Scalar(), Scalar(), true},
		{Scalar(), Concrete(1), false},
		{
			Vector(&DimExpr{L: VarDim("n"), Op: DimAdd, R: ConstDim(1)}),
			Vector(&DimExpr{L: VarDim("n"), Op: DimAdd, R: ConstDim(1)}),
			true,
		},
		{
			Vector(&DimExpr{L: VarDim("n"), Op: DimAdd, R: ConstDim(1)}),
			Vector(&DimExpr{L: VarDim("n"), Op: DimMul, R: ConstDim(1)}),
			false,
		},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShapeSubst(t *testing.T) {
	s := Shape{VarDim("n"), &DimExpr{L: VarDim("n"), Op: DimAdd, R: ConstDim(1)}, VarDim("m")}
	got := s.Subst("n", ConstDim(5))
	want := Shape{ConstDim(5), &DimExpr{L: ConstDim(5), Op: DimAdd, R: ConstDim(1)}, VarDim("m")}
	if !got.Equal(want) {
		t.Fatalf("Subst = %v, want %v", got, want)
	}
	// The untouched dimension must be shared, not rebuilt.
	if got[2] != s[2] {
		t.Error("unchanged dimension was reallocated")
	}
}

func TestShapeSubstNoChange(t *testing.T) {
	s := Matrix(ConstDim(2), VarDim("m"))
	if got := s.Subst("n", ConstDim(9)); &got[0] != &s[0] {
		t.Error("substitution with no occurrences did not return the input shape")
	}
}
