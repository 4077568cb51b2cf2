package ser

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/kr/pretty"

	"github.com/goth-lang/goth/internal/ast"
)

// factorialModule is the shared round-trip fixture. It exercises
// function declarations with contracts, effect rows, dependent tensor
// shapes, refined types and recursive references.
func factorialModule() *ast.Module {
	fact := &ast.FnDecl{
		Name: "factorial",
		Signature: ast.FuncTypeE(
			ast.PrimType(ast.I64), ast.PrimType(ast.I64), ast.NewEffects(ast.Div)),
		Preconds:  []ast.Expr{ast.Bin(ast.OpGe, ast.Index(0), ast.Int(0))},
		Postconds: []ast.Expr{ast.Bin(ast.OpGe, ast.Index(0), ast.Int(1))},
		Body: ast.Cond(
			ast.Bin(ast.OpLe, ast.Index(0), ast.Int(1)),
			ast.Int(1),
			ast.Mul(ast.Index(0),
				ast.Apply(ast.Ref("factorial"), ast.Sub(ast.Index(0), ast.Int(1)))),
		),
	}

	unit := ast.UnitInterval()
	prob := &ast.TypeDecl{
		Name:       "Prob",
		Definition: ast.RefinedType(ast.PrimType(ast.F64), &unit, nil),
	}

	vec := ast.VectorOf(&ast.DimVar{Name: "n"}, ast.PrimType(ast.F64))
	norm := &ast.FnDecl{
		Name:      "normalize",
		Signature: ast.FuncType(vec, vec),
		Body: &ast.MapE{
			Over: ast.Index(0),
			Fn:   ast.Lam(ast.Bin(ast.OpDiv, ast.Index(0), &ast.SumE{X: ast.Index(1)})),
		},
	}

	pos := ast.Positive()
	eps := &ast.LetDecl{
		Name:  "eps",
		Type:  ast.RefinedType(ast.PrimType(ast.F64), &pos, nil),
		Value: ast.Float(1e-9),
	}

	return ast.NewModule("math", fact, prob, norm, eps)
}

// exprFixtures covers every expression and pattern constructor at
// least once.
var exprFixtures = []struct {
	name string
	expr ast.Expr
}{
	{"unit", ast.Unit()},
	{"int_extremes", ast.Add(ast.Int(math.MaxInt64), ast.Int(math.MinInt64))},
	{"float", ast.Float(0.1)},
	{"bool", ast.Bool(true)},
	{"lambda_app", ast.Apply(ast.Lam(ast.Index(0)), ast.Int(7))},
	{"unary", ast.Un(ast.OpNeg, ast.Un(ast.OpSqrt, ast.Float(2)))},
	{"tuple_proj", &ast.Proj{
		Tuple: &ast.TupleE{Elems: []ast.Expr{ast.Int(1), ast.Bool(false)}},
		Field: 1,
	}},
	{"variant", &ast.VariantE{Ctor: "Some", Payload: ast.Int(3)}},
	{"variant_bare", &ast.VariantE{Ctor: "None"}},
	{"combinators", &ast.ConcatE{
		A: &ast.FilterE{Over: ast.Ref("xs"), Fn: ast.Lam(ast.Bin(ast.OpGt, ast.Index(0), ast.Int(0)))},
		B: &ast.BindE{Over: ast.Ref("ys"), Fn: ast.Ref("expand")},
	}},
	{"zipwith_product", &ast.ProductE{X: &ast.ZipWithE{
		A:  ast.Ref("xs"),
		B:  ast.Ref("ys"),
		Fn: ast.Lam(ast.Lam(ast.Mul(ast.Index(1), ast.Index(0)))),
	}}},
	{"compose", &ast.ComposeE{F: ast.Ref("f"), G: ast.Ref("g")}},
	{"contracts", &ast.Precond{
		Cond: ast.Bin(ast.OpNe, ast.Ref("d"), ast.Int(0)),
		Body: &ast.Postcond{
			Cond: ast.Bool(true),
			Body: ast.Bin(ast.OpDiv, ast.Ref("n"), ast.Ref("d")),
		},
	}},
	{"let_tuple", &ast.Let{
		Pat:   ast.TuplePat(ast.BindVar("a"), ast.BindVar("b")),
		Value: ast.Ref("pair"),
		Body:  ast.Add(ast.Index(1), ast.Index(0)),
	}},
	{"match_patterns", &ast.Match{
		Scrutinee: ast.Ref("xs"),
		Arms: []ast.Arm{
			{
				Pat: &ast.PArraySplit{
					Head: []ast.Pattern{ast.BindVar("h")},
					Tail: ast.BindVar("t"),
				},
				Body: ast.Index(1),
			},
			{
				Pat: &ast.PGuard{
					Pat:  ast.BindVar("v"),
					Cond: ast.Bin(ast.OpGt, ast.Index(0), ast.Int(0)),
				},
				Body: ast.Index(0),
			},
			{
				Pat: &ast.POr{
					A: &ast.PArray{},
					B: ast.VariantPat("Nil", nil),
				},
				Body: ast.Int(0),
			},
			{
				Pat: &ast.PTyped{
					Pat:  ast.LitPat(ast.IntLit(0)),
					Type: ast.PrimType(ast.I64),
				},
				Body: ast.Int(0),
			},
			{Pat: ast.Wildcard(), Body: &ast.ArrayE{}},
		},
	}},
}

func TestBinaryModuleRoundTrip(t *testing.T) {
	want := factorialModule()
	data := EncodeModuleBinary(want)
	got, err := DecodeModuleBinary(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch:\n%v", pretty.Diff(want, got))
	}
}

func TestBinaryExprRoundTrip(t *testing.T) {
	for _, tt := range exprFixtures {
		t.Run(tt.name, func(t *testing.T) {
			data := EncodeExprBinary(tt.expr)
			got, err := DecodeExprBinary(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !ast.EqualExpr(got, tt.expr) {
				t.Fatalf("round trip mismatch:\n%v", pretty.Diff(tt.expr, got))
			}
		})
	}
}

func TestTextModuleRoundTrip(t *testing.T) {
	want := factorialModule()
	data, err := EncodeModuleText(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeModuleText(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch:\n%v", pretty.Diff(want, got))
	}
}

func TestTextExprRoundTrip(t *testing.T) {
	for _, tt := range exprFixtures {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeExprText(tt.expr)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeExprText(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !ast.EqualExpr(got, tt.expr) {
				t.Fatalf("round trip mismatch:\n%v", pretty.Diff(tt.expr, got))
			}
		})
	}
}

// TestCrossFormatAgreement checks that decoding either encoding of
// the same module yields equal trees.
func TestCrossFormatAgreement(t *testing.T) {
	m := factorialModule()

	text, err := EncodeModuleText(m)
	if err != nil {
		t.Fatalf("text encode: %v", err)
	}
	fromText, err := DecodeModuleText(text)
	if err != nil {
		t.Fatalf("text decode: %v", err)
	}

	fromBin, err := DecodeModuleBinary(EncodeModuleBinary(m))
	if err != nil {
		t.Fatalf("binary decode: %v", err)
	}

	if !fromText.Equal(fromBin) {
		t.Fatalf("formats disagree:\n%v", pretty.Diff(fromText, fromBin))
	}
}

// TestBinaryTruncated cuts the payload at every possible point. Any
// strict prefix must fail, and always as a truncation.
func TestBinaryTruncated(t *testing.T) {
	data := EncodeModuleBinary(factorialModule())
	for n := 0; n < len(data); n++ {
		if _, err := DecodeModuleBinary(data[:n]); KindOf(err) != KindTruncated {
			t.Fatalf("prefix of %d bytes: got %v, want TruncatedInput", n, err)
		}
	}
}

func TestBinaryCorruptedTag(t *testing.T) {
	data := EncodeExprBinary(ast.Unit())
	// The root expression tag sits right after the 7 byte header.
	data[7] = 0xFF
	_, err := DecodeExprBinary(data)
	if KindOf(err) != KindUnknownTag {
		t.Fatalf("got %v, want UnknownTag", err)
	}
}

func TestBinaryVersionGate(t *testing.T) {
	data := EncodeExprBinary(ast.Unit())
	data[4] = byte(BinaryVersion + 1)
	data[5] = 0
	_, err := DecodeExprBinary(data)
	if KindOf(err) != KindVersionMismatch {
		t.Fatalf("got %v, want VersionMismatch", err)
	}
}

func TestBinaryBadEnvelope(t *testing.T) {
	good := EncodeExprBinary(ast.Unit())

	bad := append([]byte{}, good...)
	bad[0] = 'X'
	if _, err := DecodeExprBinary(bad); KindOf(err) != KindMalformed {
		t.Errorf("bad magic: got %v, want MalformedPayload", err)
	}

	trailing := append(append([]byte{}, good...), 0x00)
	if _, err := DecodeExprBinary(trailing); KindOf(err) != KindMalformed {
		t.Errorf("trailing byte: got %v, want MalformedPayload", err)
	}

	if _, err := DecodeModuleBinary(good); KindOf(err) != KindMalformed {
		t.Errorf("expr payload as module: got %v, want MalformedPayload", err)
	}
}

func TestTextVersionGate(t *testing.T) {
	good, err := EncodeExprText(ast.Unit())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		version string
		want    ErrKind
	}{
		{"1.0.0", 0},
		{"0.9.0", KindVersionMismatch},
		{"1.0.1", KindVersionMismatch},
		{"2.0.0", KindVersionMismatch},
		{"not-a-version", KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			data := bytes.Replace(good,
				[]byte(`"version": "`+TextVersion+`"`),
				[]byte(`"version": "`+tt.version+`"`), 1)
			_, err := DecodeExprText(data)
			if KindOf(err) != tt.want {
				t.Fatalf("got %v, want kind %v", err, tt.want)
			}
		})
	}
}

func TestTextUnknownSpelling(t *testing.T) {
	data, err := EncodeExprText(ast.Add(ast.Int(1), ast.Int(2)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data = bytes.Replace(data, []byte(`"op": "+"`), []byte(`"op": "@@"`), 1)
	_, err = DecodeExprText(data)
	if KindOf(err) != KindUnknownSpelling {
		t.Fatalf("got %v, want UnknownOperatorSpelling", err)
	}
}

func TestTextUnknownTag(t *testing.T) {
	data, err := EncodeExprText(ast.Unit())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data = bytes.Replace(data, []byte(`"node": "lit"`), []byte(`"node": "zzz"`), 1)
	_, err = DecodeExprText(data)
	if KindOf(err) != KindUnknownTag {
		t.Fatalf("got %v, want UnknownTag", err)
	}
}

func TestTextMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not_json", `{{{`},
		{"wrong_format", `{"format":"other","version":"1.0.0","expr":{}}`},
		{"missing_root", `{"format":"gast","version":"1.0.0"}`},
		{"missing_node_key", `{"format":"gast","version":"1.0.0","expr":{}}`},
		{"level_not_integer", `{"format":"gast","version":"1.0.0","expr":{"node":"idx","level":1.5}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExprText([]byte(tt.data))
			if KindOf(err) != KindMalformed {
				t.Fatalf("got %v, want MalformedPayload", err)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != 0 {
		t.Errorf("KindOf(nil) = %v, want 0", KindOf(nil))
	}
	err := errAt(KindTruncated, 12, "short")
	if KindOf(err) != KindTruncated {
		t.Errorf("KindOf = %v, want KindTruncated", KindOf(err))
	}
	if !errors.Is(err, ErrTruncated) {
		t.Error("errors.Is missed the truncation sentinel")
	}
	if errors.Is(err, ErrMalformed) {
		t.Error("errors.Is matched the wrong sentinel")
	}
}
