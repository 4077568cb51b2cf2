package ast

import (
	"errors"
	"testing"
)

// TestSpellingBijection checks that both spelling columns round-trip
// and that no two operators share a spelling.
func TestSpellingBijection(t *testing.T) {
	seenGlyph := make(map[string]Op)
	seenASCII := make(map[string]Op)
	for _, op := range Ops() {
		if prev, dup := seenGlyph[op.Glyph()]; dup {
			t.Errorf("glyph %q assigned to both %v and %v", op.Glyph(), prev, op)
		}
		seenGlyph[op.Glyph()] = op
		if prev, dup := seenASCII[op.ASCII()]; dup {
			t.Errorf("ascii %q assigned to both %v and %v", op.ASCII(), prev, op)
		}
		seenASCII[op.ASCII()] = op

		got, err := FromGlyph(op.Glyph())
		if err != nil || got != op {
			t.Errorf("FromGlyph(%q) = %v, %v; want %v", op.Glyph(), got, err, op)
		}
		got, err = FromASCII(op.ASCII())
		if err != nil || got != op {
			t.Errorf("FromASCII(%q) = %v, %v; want %v", op.ASCII(), got, err, op)
		}
	}
}

func TestFromSpellingUnknown(t *testing.T) {
	for _, s := range []string{"", "☠", "<>", "+++"} {
		var unk *UnknownSpellingError
		if _, err := FromGlyph(s); !errors.As(err, &unk) {
			t.Errorf("FromGlyph(%q) err = %v, want UnknownSpellingError", s, err)
		}
		if _, err := FromASCII(s); !errors.As(err, &unk) {
			t.Errorf("FromASCII(%q) err = %v, want UnknownSpellingError", s, err)
		}
	}
	// A glyph is not an ASCII spelling and vice versa when they differ.
	if _, err := FromASCII("×"); err == nil {
		t.Error("FromASCII accepted the multiplication glyph")
	}
	if _, err := FromGlyph("**"); err == nil {
		t.Error("FromGlyph accepted the ASCII power spelling")
	}
}

func TestOpClasses(t *testing.T) {
	tests := []struct {
		op                       Op
		binary, unary, comparison bool
	}{
		{OpAdd, true, false, false},
		{OpPow, true, false, false},
		{OpEq, true, false, true},
		{OpGe, true, false, true},
		{OpOr, true, false, false},
		{OpNeg, false, true, false},
		{OpSqrt, false, true, false},
		{OpMap, false, false, false},
		{OpLambda, false, false, false},
		{OpPostcond, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.op.IsBinary(); got != tt.binary {
			t.Errorf("%v.IsBinary() = %v, want %v", tt.op, got, tt.binary)
		}
		if got := tt.op.IsUnary(); got != tt.unary {
			t.Errorf("%v.IsUnary() = %v, want %v", tt.op, got, tt.unary)
		}
		if got := tt.op.IsComparison(); got != tt.comparison {
			t.Errorf("%v.IsComparison() = %v, want %v", tt.op, got, tt.comparison)
		}
	}
}

func TestValidOp(t *testing.T) {
	if !ValidOp(OpAdd) || !ValidOp(OpPostcond) {
		t.Error("ValidOp rejected a member of the operator set")
	}
	if ValidOp(Op(-1)) || ValidOp(numOps) || ValidOp(Op(200)) {
		t.Error("ValidOp accepted an out-of-range value")
	}
}
