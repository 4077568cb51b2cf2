package ast

import "testing"

func TestEffectsCanonicalOrder(t *testing.T) {
	a := NewEffects(Exn("Overflow"), IO, Div, IO, EffVar("e"))
	b := NewEffects(IO, EffVar("e"), Div, Exn("Overflow"))
	if !a.Equal(b) {
		t.Fatalf("order of construction leaked: %v vs %v", a, b)
	}
	if a.Len() != 4 {
		t.Fatalf("Len = %d after dedup, want 4", a.Len())
	}
	elems := a.Elems()
	for i := 1; i < len(elems); i++ {
		prev, cur := elems[i-1], elems[i]
		if cur.Kind < prev.Kind || (cur.Kind == prev.Kind && cur.Tag < prev.Tag) {
			t.Fatalf("elements out of canonical order: %v", elems)
		}
	}
}

// TestEffectsLattice checks the join semilattice laws with Pure as
// bottom.
func TestEffectsLattice(t *testing.T) {
	x := NewEffects(IO, Exn("E"))
	y := NewEffects(Mut, Exn("E"))
	z := NewEffects(Rand)

	if !x.Union(x).Equal(x) {
		t.Error("join is not idempotent")
	}
	if !x.Union(y).Equal(y.Union(x)) {
		t.Error("join is not commutative")
	}
	if !x.Union(y.Union(z)).Equal(x.Union(y).Union(z)) {
		t.Error("join is not associative")
	}
	if !x.Union(Pure()).Equal(x) || !Pure().Union(x).Equal(x) {
		t.Error("Pure is not the identity of join")
	}
	if !Pure().IsSubset(x) {
		t.Error("Pure is not below every row")
	}
	if !x.IsSubset(x.Union(y)) || !y.IsSubset(x.Union(y)) {
		t.Error("join is not an upper bound")
	}
	if x.IsSubset(y) {
		t.Error("unrelated rows reported as ordered")
	}
}

func TestEffectsWithContains(t *testing.T) {
	r := Pure().With(IO).With(FFI("static")).With(IO)
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if !r.Contains(IO) || !r.Contains(FFI("static")) {
		t.Error("Contains missed an inserted element")
	}
	if r.Contains(Mut) || r.Contains(FFI("other")) {
		t.Error("Contains reported an absent element")
	}
}

func TestEffectsString(t *testing.T) {
	tests := []struct {
		row  Effects
		want string
	}{
		{Pure(), "□"},
		{NewEffects(IO), "◇io"},
		{NewEffects(Div, Mut), "◇mut ∪ ◇div"},
		{NewEffects(Exn("Overflow")), "◇exn⟨Overflow⟩"},
		{NewEffects(FFI("a")), "◇ffi⟨'a⟩"},
		{NewEffects(CustomEffect("gpu")), "◇gpu"},
		{NewEffects(EffVar("e")), "εe"},
	}
	for _, tt := range tests {
		if got := tt.row.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEffectsElemsIsCopy(t *testing.T) {
	r := NewEffects(IO, Mut)
	elems := r.Elems()
	elems[0] = Rand
	if r.Contains(Rand) {
		t.Error("mutating Elems() result changed the row")
	}
}
