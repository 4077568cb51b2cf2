package ast

import "testing"

func TestShift(t *testing.T) {
	tests := []struct {
		name          string
		in            Expr
		cutoff, delta int
		want          Expr
	}{
		{"free index", Index(0), 0, 2, Index(2)},
		{"below cutoff", Index(0), 1, 5, Index(0)},
		{
			"cutoff moves under lambda",
			Lam(Add(Index(0), Index(1))), 0, 1,
			Lam(Add(Index(0), Index(2))),
		},
		{
			"nested lambdas",
			Lam(Lam(Add(Index(1), Index(2)))), 0, 3,
			Lam(Lam(Add(Index(1), Index(5)))),
		},
		{"negative delta", Index(3), 0, -1, Index(2)},
		{
			"let binders respected",
			&Let{
				Pat:   TuplePat(BindVar("a"), BindVar("b")),
				Value: Index(0),
				Body:  Add(Index(0), Index(2)),
			},
			0, 1,
			&Let{
				Pat:   TuplePat(BindVar("a"), BindVar("b")),
				Value: Index(1),
				Body:  Add(Index(0), Index(3)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shift(tt.in, tt.cutoff, tt.delta)
			if !EqualExpr(got, tt.want) {
				t.Fatalf("Shift = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftSharesUnchanged(t *testing.T) {
	e := Lam(Add(Index(0), Int(1)))
	if got := Shift(e, 5, 1); got != e {
		t.Error("shift with no affected indices rebuilt the tree")
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		in    Expr
		value Expr
		want  Expr
	}{
		{"top level", Index(0), Int(9), Int(9)},
		{"deeper indices drop", Add(Index(0), Index(1)), Int(9), Add(Int(9), Index(0))},
		{
			"value shifted under lambda",
			Lam(Add(Index(0), Index(1))), Index(0),
			Lam(Add(Index(0), Index(1))),
		},
		{
			"guard and body see the value",
			&Let{
				Pat:   &PGuard{Pat: BindVar("x"), Cond: Bin(OpGt, Index(0), Index(1))},
				Value: Index(0),
				Body:  Index(1),
			},
			Int(5),
			&Let{
				Pat:   &PGuard{Pat: BindVar("x"), Cond: Bin(OpGt, Index(0), Int(5))},
				Value: Int(5),
				Body:  Int(5),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(tt.in, tt.value)
			if !EqualExpr(got, tt.want) {
				t.Fatalf("Substitute = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSubstituteShiftInverse checks that substituting at level d
// undoes a shift by one at cutoff d, for any d.
func TestSubstituteShiftInverse(t *testing.T) {
	exprs := []Expr{
		Index(0),
		Add(Index(0), Index(2)),
		Lam(Add(Index(0), Index(1))),
		&Match{
			Scrutinee: Index(1),
			Arms: []Arm{
				{Pat: TuplePat(BindVar("a"), Wildcard()), Body: Add(Index(0), Index(2))},
				{Pat: Wildcard(), Body: Index(0)},
			},
		},
	}
	for _, e := range exprs {
		for d := 0; d < 4; d++ {
			got := SubstituteAt(Shift(e, d, 1), d, Int(99))
			if !EqualExpr(got, e) {
				t.Errorf("substitute-at %d after shift changed %v into %v", d, e, got)
			}
		}
	}
}

func TestSubstituteAt(t *testing.T) {
	// Replacing level 1 leaves level 0 alone and renumbers above.
	e := &TupleE{Elems: []Expr{Index(0), Index(1), Index(2)}}
	got := SubstituteAt(e, 1, Ref("v"))
	want := &TupleE{Elems: []Expr{Index(0), Ref("v"), Index(1)}}
	if !EqualExpr(got, want) {
		t.Fatalf("SubstituteAt = %v, want %v", got, want)
	}
}

func TestSubstituteRefinementPredicate(t *testing.T) {
	// A refinement predicate runs one binder deep over the refined
	// value, so an outer reference inside it sits at level 1.
	iv := Positive()
	e := &Let{
		Pat: &PTyped{
			Pat:  BindVar("x"),
			Type: RefinedType(PrimType(F64), &iv, Bin(OpLt, Index(0), Index(1))),
		},
		Value: Index(0),
		Body:  Index(0),
	}
	got := Substitute(e, Float(2.5))
	want := &Let{
		Pat: &PTyped{
			Pat:  BindVar("x"),
			Type: RefinedType(PrimType(F64), &iv, Bin(OpLt, Index(0), Float(2.5))),
		},
		Value: Float(2.5),
		Body:  Index(0),
	}
	if !EqualExpr(got, want) {
		t.Fatalf("Substitute = %v, want %v", got, want)
	}
}

func TestWalk(t *testing.T) {
	e := Cond(Bin(OpLt, Index(0), Int(2)), Int(1), Apply(Ref("f"), Index(0)))
	var count int
	Walk(e, func(Expr) bool {
		count++
		return true
	})
	// if, bin, idx, lit, lit, app, name, idx
	if count != 8 {
		t.Errorf("visited %d nodes, want 8", count)
	}

	count = 0
	Walk(e, func(x Expr) bool {
		count++
		_, isBin := x.(*BinExpr)
		return !isBin
	})
	if count != 6 {
		t.Errorf("pruned walk visited %d nodes, want 6", count)
	}
}
