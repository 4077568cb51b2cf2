package ast

import "fmt"

// Op enumerates the closed operator vocabulary: arithmetic and logical
// operators, the tensor combinators, and the three structural markers
// (lambda, precondition, postcondition) that share the spelling table.
type Op int

const (
	// Binary arithmetic.
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	// Comparison.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	// Boolean.
	OpAnd
	OpOr
	// Unary.
	OpNeg
	OpNot
	OpFloor
	OpCeil
	OpSqrt
	// Tensor combinators.
	OpMap
	OpFilter
	OpBind
	OpZipWith
	OpConcat
	OpSum
	OpProduct
	OpCompose
	// Structural markers.
	OpLambda
	OpPrecond
	OpPostcond

	numOps // sentinel, keep last
)

// spelling pairs one canonical glyph with one ASCII fallback.
type spelling struct {
	glyph string
	ascii string
}

// spellings is the process-wide vocabulary table. It is built once as a
// composite literal and never mutated; both columns are injective over
// the operator set.
var spellings = [numOps]spelling{
	OpAdd:      {"+", "+"},
	OpSub:      {"-", "-"},
	OpMul:      {"×", "*"},
	OpDiv:      {"÷", "/"},
	OpMod:      {"%", "%"},
	OpPow:      {"^", "**"},
	OpEq:       {"=", "=="},
	OpNe:       {"≠", "!="},
	OpLt:       {"<", "<"},
	OpLe:       {"≤", "<="},
	OpGt:       {">", ">"},
	OpGe:       {"≥", ">="},
	OpAnd:      {"∧", "&&"},
	OpOr:       {"∨", "||"},
	OpNeg:      {"−", "~"},
	OpNot:      {"¬", "!"},
	OpFloor:    {"⌊", "_."},
	OpCeil:     {"⌈", "^."},
	OpSqrt:     {"√", "%:"},
	OpMap:      {"↦", "-:"},
	OpFilter:   {"▸", "|>"},
	OpBind:     {"⤇", "=>"},
	OpZipWith:  {"⊗", "*:"},
	OpConcat:   {"⊕", "+:"},
	OpSum:      {"Σ", "+/"},
	OpProduct:  {"Π", "*/"},
	OpCompose:  {"∘", ".:"},
	OpLambda:   {"λ→", "\\->"},
	OpPrecond:  {"⊢", "|-"},
	OpPostcond: {"⊨", "|="},
}

var (
	byGlyph = make(map[string]Op, numOps)
	byASCII = make(map[string]Op, numOps)
)

func init() {
	for op, sp := range spellings {
		byGlyph[sp.glyph] = Op(op)
		byASCII[sp.ascii] = Op(op)
	}
}

// Glyph returns the canonical glyph spelling of op.
func (op Op) Glyph() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return spellings[op].glyph
}

// ASCII returns the ASCII spelling of op.
func (op Op) ASCII() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return spellings[op].ascii
}

// String returns the glyph spelling.
func (op Op) String() string { return op.Glyph() }

// IsBinary reports whether op may appear in a BinExpr node.
func (op Op) IsBinary() bool { return op >= OpAdd && op <= OpOr }

// IsUnary reports whether op may appear in a UnExpr node.
func (op Op) IsUnary() bool { return op >= OpNeg && op <= OpSqrt }

// IsComparison reports whether op is one of the comparison family.
func (op Op) IsComparison() bool { return op >= OpEq && op <= OpGe }

// UnknownSpellingError reports a spelling with no operator assigned.
type UnknownSpellingError struct {
	Spelling string
}

func (e *UnknownSpellingError) Error() string {
	return fmt.Sprintf("unknown operator spelling %q", e.Spelling)
}

// FromGlyph resolves a glyph spelling to its operator.
func FromGlyph(s string) (Op, error) {
	if op, ok := byGlyph[s]; ok {
		return op, nil
	}
	return 0, &UnknownSpellingError{Spelling: s}
}

// FromASCII resolves an ASCII spelling to its operator.
func FromASCII(s string) (Op, error) {
	if op, ok := byASCII[s]; ok {
		return op, nil
	}
	return 0, &UnknownSpellingError{Spelling: s}
}

// ValidOp reports whether op names a member of the closed operator
// set, for decoders validating raw tag values.
func ValidOp(op Op) bool { return op >= 0 && op < numOps }

// Ops returns every operator in declaration order. The slice is fresh
// on each call; callers may reorder it freely.
func Ops() []Op {
	out := make([]Op, numOps)
	for i := range out {
		out[i] = Op(i)
	}
	return out
}
