package ast

import "testing"

func TestIntervalValid(t *testing.T) {
	tests := []struct {
		iv   Interval
		want bool
	}{
		{Closed(ConstBound(0), ConstBound(1)), true},
		{Closed(ConstBound(1), ConstBound(0)), false},
		{Closed(ConstBound(2), ConstBound(2)), true},
		{Open(NegInf, PosInf), true},
		{Closed(VarBound("lo"), ConstBound(0)), true},
	}
	for _, tt := range tests {
		if got := tt.iv.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.iv, got, tt.want)
		}
	}
}

func TestIntervalMayContainZero(t *testing.T) {
	tests := []struct {
		iv   Interval
		want bool
	}{
		{Closed(ConstBound(-1), ConstBound(1)), true},
		{Closed(ConstBound(0), ConstBound(1)), true},
		{Open(ConstBound(0), ConstBound(1)), false},
		{Closed(ConstBound(1), ConstBound(2)), false},
		{Closed(ConstBound(-2), ConstBound(-1)), false},
		{HalfOpenLeft(ConstBound(-1), ConstBound(0)), true},
		{HalfOpenRight(ConstBound(-1), ConstBound(0)), false},
		{Open(NegInf, PosInf), true},
		{Closed(VarBound("a"), VarBound("b")), true},
	}
	for _, tt := range tests {
		if got := tt.iv.MayContainZero(); got != tt.want {
			t.Errorf("%v.MayContainZero() = %v, want %v", tt.iv, got, tt.want)
		}
	}
}

func TestIntervalAdd(t *testing.T) {
	got := Closed(ConstBound(1), ConstBound(2)).Add(Open(ConstBound(10), ConstBound(20)))
	want := Open(ConstBound(11), ConstBound(22))
	if got != want {
		t.Fatalf("Add = %v, want %v", got, want)
	}

	inf := NonNegative().Add(Closed(ConstBound(-5), ConstBound(5)))
	if inf.Lo != ConstBound(-5) || inf.Hi != PosInf {
		t.Fatalf("Add with infinite endpoint = %v", inf)
	}

	// Symbolic endpoints widen to infinity.
	sym := Closed(VarBound("a"), VarBound("b")).Add(UnitInterval())
	if sym.Lo != NegInf || sym.Hi != PosInf {
		t.Fatalf("Add with symbolic endpoints = %v", sym)
	}
}

func TestIntervalNeg(t *testing.T) {
	got := HalfOpenRight(ConstBound(1), ConstBound(3)).Neg()
	want := HalfOpenLeft(ConstBound(-3), ConstBound(-1))
	if got != want {
		t.Fatalf("Neg = %v, want %v", got, want)
	}
	if AllReals().Neg() != AllReals() {
		t.Error("negating the full line changed it")
	}
}

func TestIntervalMul(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval
		lo, hi Bound
	}{
		{
			"positive by positive",
			Closed(ConstBound(2), ConstBound(3)), Closed(ConstBound(4), ConstBound(5)),
			ConstBound(8), ConstBound(15),
		},
		{
			"sign crossing",
			Closed(ConstBound(-2), ConstBound(3)), Closed(ConstBound(-4), ConstBound(5)),
			ConstBound(-12), ConstBound(10),
		},
		{
			"negative by negative",
			Closed(ConstBound(-3), ConstBound(-2)), Closed(ConstBound(-5), ConstBound(-4)),
			ConstBound(8), ConstBound(15),
		},
		{
			"zero corner against infinity",
			Closed(ConstBound(0), ConstBound(1)), NonNegative(),
			ConstBound(0), PosInf,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Mul(tt.b)
			if got.Lo != tt.lo || got.Hi != tt.hi {
				t.Fatalf("Mul = %v, want [%v..%v]", got, tt.lo, tt.hi)
			}
		})
	}
}

func TestIntervalString(t *testing.T) {
	tests := []struct {
		iv   Interval
		want string
	}{
		{UnitInterval(), "[0..1]"},
		{Positive(), "(0..∞)"},
		{NonNegative(), "[0..∞)"},
		{AllReals(), "(-∞..∞)"},
		{HalfOpenLeft(VarBound("eps"), ConstBound(1)), "(eps..1]"},
	}
	for _, tt := range tests {
		if got := tt.iv.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestIntervalSet(t *testing.T) {
	if !Undefined().IsUndefined() {
		t.Error("Undefined() is not undefined")
	}
	if got := Undefined().String(); got != "⊥" {
		t.Errorf("undefined String = %q, want ⊥", got)
	}

	s := SingleInterval(UnitInterval()).Union(Positive())
	if s.IsUndefined() || len(s.Intervals) != 2 {
		t.Fatalf("set after union: %v", s)
	}
	if got := s.String(); got != "[0..1] ∪ (0..∞)" {
		t.Errorf("set String = %q", got)
	}
}
