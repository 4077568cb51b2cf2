package ser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/goth-lang/goth/internal/ast"
)

// TextFormat names the structured text envelope.
const TextFormat = "gast"

// TextVersion is the version written into new payloads. Decoders
// accept any payload of the same major version that is not newer.
const TextVersion = "1.0.0"

var supportedTextVersion = semver.MustParse(TextVersion)

// Integers and dimension sizes are carried as decimal strings rather
// than JSON numbers so 64-bit values survive readers that parse every
// number as a float. Floats are strings too, formatted with enough
// digits to round-trip exactly.

// EncodeModuleText encodes a module into the structured text form.
func EncodeModuleText(m *ast.Module) ([]byte, error) {
	env := map[string]any{
		"format":  TextFormat,
		"version": TextVersion,
		"module":  jsonModule(m),
	}
	return json.MarshalIndent(env, "", "  ")
}

// EncodeExprText encodes a bare expression into the structured text form.
func EncodeExprText(e ast.Expr) ([]byte, error) {
	env := map[string]any{
		"format":  TextFormat,
		"version": TextVersion,
		"expr":    jsonExpr(e),
	}
	return json.MarshalIndent(env, "", "  ")
}

// DecodeModuleText decodes a structured text module payload.
func DecodeModuleText(data []byte) (m *ast.Module, err error) {
	defer catch(&err)
	root := openEnvelope(data)
	v, ok := root["module"]
	if !ok {
		panic(errPath(KindMalformed, "$", "missing module key"))
	}
	return decModule(v, "$.module"), nil
}

// DecodeExprText decodes a structured text expression payload.
func DecodeExprText(data []byte) (e ast.Expr, err error) {
	defer catch(&err)
	root := openEnvelope(data)
	v, ok := root["expr"]
	if !ok {
		panic(errPath(KindMalformed, "$", "missing expr key"))
	}
	return decExpr(v, "$.expr"), nil
}

func openEnvelope(data []byte) map[string]any {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		panic(errPath(KindMalformed, "$", "invalid JSON: %v", err))
	}
	obj := asObj(root, "$")
	if f := getStr(obj, "format", "$"); f != TextFormat {
		panic(errPath(KindMalformed, "$.format", "format %q, want %q", f, TextFormat))
	}
	raw := getStr(obj, "version", "$")
	v, err := semver.NewVersion(raw)
	if err != nil {
		panic(errPath(KindMalformed, "$.version", "bad version %q: %v", raw, err))
	}
	if v.Major() != supportedTextVersion.Major() || v.GreaterThan(supportedTextVersion) {
		panic(errPath(KindVersionMismatch, "$.version",
			"payload version %s, decoder supports up to %s", raw, TextVersion))
	}
	return obj
}

// ===== encoding =====

func jsonModule(m *ast.Module) map[string]any {
	decls := make([]any, 0, len(m.Decls))
	for _, d := range m.Decls {
		decls = append(decls, jsonDecl(d))
	}
	return map[string]any{"name": m.Name, "decls": decls}
}

func jsonDecl(d ast.Decl) map[string]any {
	switch d := d.(type) {
	case *ast.FnDecl:
		pre := make([]any, 0, len(d.Preconds))
		for _, e := range d.Preconds {
			pre = append(pre, jsonExpr(e))
		}
		post := make([]any, 0, len(d.Postconds))
		for _, e := range d.Postconds {
			post = append(post, jsonExpr(e))
		}
		return map[string]any{
			"decl":      "fn",
			"name":      d.Name,
			"signature": jsonType(d.Signature),
			"preconds":  pre,
			"postconds": post,
			"body":      jsonExpr(d.Body),
		}
	case *ast.TypeDecl:
		return map[string]any{
			"decl":       "type",
			"name":       d.Name,
			"definition": jsonType(d.Definition),
		}
	case *ast.LetDecl:
		o := map[string]any{
			"decl":  "let",
			"name":  d.Name,
			"value": jsonExpr(d.Value),
		}
		if d.Type != nil {
			o["type"] = jsonType(d.Type)
		}
		return o
	}
	return nil
}

func jsonExpr(e ast.Expr) map[string]any {
	switch e := e.(type) {
	case *ast.Lit:
		return map[string]any{"node": "lit", "lit": jsonLit(e.Value)}
	case *ast.Idx:
		return map[string]any{"node": "idx", "level": float64(e.Level)}
	case *ast.Name:
		return map[string]any{"node": "name", "ident": e.Ident}
	case *ast.Lambda:
		return map[string]any{"node": "lambda", "body": jsonExpr(e.Body)}
	case *ast.App:
		return map[string]any{"node": "app", "fn": jsonExpr(e.Fn), "arg": jsonExpr(e.Arg)}
	case *ast.If:
		return map[string]any{
			"node": "if",
			"cond": jsonExpr(e.Cond),
			"then": jsonExpr(e.Then),
			"else": jsonExpr(e.Else),
		}
	case *ast.BinExpr:
		return map[string]any{
			"node": "bin",
			"op":   e.Op.ASCII(),
			"l":    jsonExpr(e.L),
			"r":    jsonExpr(e.R),
		}
	case *ast.UnExpr:
		return map[string]any{"node": "un", "op": e.Op.ASCII(), "x": jsonExpr(e.X)}
	case *ast.Let:
		return map[string]any{
			"node":  "let",
			"pat":   jsonPattern(e.Pat),
			"value": jsonExpr(e.Value),
			"body":  jsonExpr(e.Body),
		}
	case *ast.Match:
		arms := make([]any, 0, len(e.Arms))
		for _, arm := range e.Arms {
			arms = append(arms, map[string]any{
				"pat":  jsonPattern(arm.Pat),
				"body": jsonExpr(arm.Body),
			})
		}
		return map[string]any{"node": "match", "scrutinee": jsonExpr(e.Scrutinee), "arms": arms}
	case *ast.TupleE:
		return map[string]any{"node": "tuple", "elems": jsonExprs(e.Elems)}
	case *ast.ArrayE:
		return map[string]any{"node": "array", "elems": jsonExprs(e.Elems)}
	case *ast.VariantE:
		o := map[string]any{"node": "variant", "ctor": e.Ctor}
		if e.Payload != nil {
			o["payload"] = jsonExpr(e.Payload)
		}
		return o
	case *ast.Proj:
		return map[string]any{
			"node":  "proj",
			"tuple": jsonExpr(e.Tuple),
			"field": float64(e.Field),
		}
	case *ast.MapE:
		return map[string]any{"node": "map", "over": jsonExpr(e.Over), "fn": jsonExpr(e.Fn)}
	case *ast.FilterE:
		return map[string]any{"node": "filter", "over": jsonExpr(e.Over), "fn": jsonExpr(e.Fn)}
	case *ast.BindE:
		return map[string]any{"node": "bind", "over": jsonExpr(e.Over), "fn": jsonExpr(e.Fn)}
	case *ast.ZipWithE:
		return map[string]any{
			"node": "zipwith",
			"a":    jsonExpr(e.A),
			"b":    jsonExpr(e.B),
			"fn":   jsonExpr(e.Fn),
		}
	case *ast.ConcatE:
		return map[string]any{"node": "concat", "a": jsonExpr(e.A), "b": jsonExpr(e.B)}
	case *ast.SumE:
		return map[string]any{"node": "sum", "x": jsonExpr(e.X)}
	case *ast.ProductE:
		return map[string]any{"node": "product", "x": jsonExpr(e.X)}
	case *ast.ComposeE:
		return map[string]any{"node": "compose", "f": jsonExpr(e.F), "g": jsonExpr(e.G)}
	case *ast.Precond:
		return map[string]any{"node": "precond", "cond": jsonExpr(e.Cond), "body": jsonExpr(e.Body)}
	case *ast.Postcond:
		return map[string]any{"node": "postcond", "cond": jsonExpr(e.Cond), "body": jsonExpr(e.Body)}
	}
	return nil
}

func jsonExprs(es []ast.Expr) []any {
	out := make([]any, 0, len(es))
	for _, e := range es {
		out = append(out, jsonExpr(e))
	}
	return out
}

func jsonLit(l ast.Literal) map[string]any {
	switch l.Kind {
	case ast.LitInt:
		return map[string]any{"kind": "int", "value": strconv.FormatInt(l.Int, 10)}
	case ast.LitFloat:
		return map[string]any{"kind": "float", "value": strconv.FormatFloat(l.Float, 'g', -1, 64)}
	case ast.LitBool:
		return map[string]any{"kind": "bool", "value": l.Bool}
	default:
		return map[string]any{"kind": "unit"}
	}
}

func jsonType(t ast.Type) map[string]any {
	switch t := t.(type) {
	case *ast.Prim:
		return map[string]any{"type": "prim", "prim": t.Kind.String()}
	case *ast.Named:
		return map[string]any{"type": "named", "ident": t.Ident}
	case *ast.Tensor:
		dims := make([]any, 0, len(t.Shape))
		for _, d := range t.Shape {
			dims = append(dims, jsonDim(d))
		}
		return map[string]any{"type": "tensor", "shape": dims, "elem": jsonType(t.Elem)}
	case *ast.Func:
		return map[string]any{
			"type":    "func",
			"param":   jsonType(t.Param),
			"result":  jsonType(t.Result),
			"effects": jsonEffects(t.Effects),
		}
	case *ast.TupleT:
		elems := make([]any, 0, len(t.Elems))
		for _, e := range t.Elems {
			elems = append(elems, jsonType(e))
		}
		return map[string]any{"type": "tuple", "elems": elems}
	case *ast.Refined:
		o := map[string]any{"type": "refined", "base": jsonType(t.Base)}
		if t.Interval != nil {
			o["interval"] = jsonInterval(*t.Interval)
		}
		if t.Pred != nil {
			o["pred"] = jsonExpr(t.Pred)
		}
		return o
	}
	return nil
}

func jsonDim(d ast.Dim) map[string]any {
	switch d := d.(type) {
	case *ast.DimConst:
		return map[string]any{"dim": "const", "size": strconv.FormatUint(d.N, 10)}
	case *ast.DimVar:
		return map[string]any{"dim": "var", "name": d.Name}
	case *ast.DimExpr:
		return map[string]any{
			"dim": "expr",
			"op":  dimOpASCII(d.Op),
			"l":   jsonDim(d.L),
			"r":   jsonDim(d.R),
		}
	}
	return nil
}

func jsonEffects(r ast.Effects) []any {
	elems := r.Elems()
	out := make([]any, 0, len(elems))
	for _, e := range elems {
		o := map[string]any{"effect": effectKindName(e.Kind)}
		if e.Tag != "" {
			o["tag"] = e.Tag
		}
		out = append(out, o)
	}
	return out
}

func effectKindName(k ast.EffectKind) string {
	switch k {
	case ast.EffectIO:
		return "io"
	case ast.EffectMut:
		return "mut"
	case ast.EffectRand:
		return "rand"
	case ast.EffectDiv:
		return "div"
	case ast.EffectExn:
		return "exn"
	case ast.EffectFFI:
		return "ffi"
	case ast.EffectCustom:
		return "custom"
	default:
		return "var"
	}
}

func jsonInterval(iv ast.Interval) map[string]any {
	return map[string]any{
		"lo":     jsonBound(iv.Lo),
		"loKind": boundKindName(iv.LoKind),
		"hi":     jsonBound(iv.Hi),
		"hiKind": boundKindName(iv.HiKind),
	}
}

func boundKindName(k ast.BoundKind) string {
	if k == ast.Exclusive {
		return "exclusive"
	}
	return "inclusive"
}

func jsonBound(b ast.Bound) map[string]any {
	switch b.Sort {
	case ast.BoundNegInf:
		return map[string]any{"bound": "neginf"}
	case ast.BoundPosInf:
		return map[string]any{"bound": "posinf"}
	case ast.BoundConst:
		return map[string]any{
			"bound": "const",
			"value": strconv.FormatFloat(b.Value, 'g', -1, 64),
		}
	default:
		return map[string]any{"bound": "var", "name": b.Name}
	}
}

func jsonPattern(p ast.Pattern) map[string]any {
	switch p := p.(type) {
	case *ast.PWildcard:
		return map[string]any{"pat": "wildcard"}
	case *ast.PVar:
		return map[string]any{"pat": "var", "name": p.Name}
	case *ast.PLit:
		return map[string]any{"pat": "lit", "lit": jsonLit(p.Value)}
	case *ast.PArray:
		return map[string]any{"pat": "array", "elems": jsonPatterns(p.Elems)}
	case *ast.PArraySplit:
		return map[string]any{
			"pat":  "split",
			"head": jsonPatterns(p.Head),
			"tail": jsonPattern(p.Tail),
		}
	case *ast.PTuple:
		return map[string]any{"pat": "tuple", "elems": jsonPatterns(p.Elems)}
	case *ast.PVariant:
		o := map[string]any{"pat": "variant", "ctor": p.Ctor}
		if p.Payload != nil {
			o["payload"] = jsonPattern(p.Payload)
		}
		return o
	case *ast.PTyped:
		return map[string]any{
			"pat":   "typed",
			"inner": jsonPattern(p.Pat),
			"type":  jsonType(p.Type),
		}
	case *ast.POr:
		return map[string]any{"pat": "or", "a": jsonPattern(p.A), "b": jsonPattern(p.B)}
	case *ast.PGuard:
		return map[string]any{
			"pat":   "guard",
			"inner": jsonPattern(p.Pat),
			"cond":  jsonExpr(p.Cond),
		}
	}
	return nil
}

func jsonPatterns(ps []ast.Pattern) []any {
	out := make([]any, 0, len(ps))
	for _, p := range ps {
		out = append(out, jsonPattern(p))
	}
	return out
}

// ===== decoding =====

func asObj(v any, path string) map[string]any {
	o, ok := v.(map[string]any)
	if !ok {
		panic(errPath(KindMalformed, path, "expected object, got %T", v))
	}
	return o
}

func get(o map[string]any, key, path string) any {
	v, ok := o[key]
	if !ok {
		panic(errPath(KindMalformed, path, "missing %q key", key))
	}
	return v
}

func getStr(o map[string]any, key, path string) string {
	s, ok := get(o, key, path).(string)
	if !ok {
		panic(errPath(KindMalformed, path+"."+key, "expected string"))
	}
	return s
}

func getBool(o map[string]any, key, path string) bool {
	b, ok := get(o, key, path).(bool)
	if !ok {
		panic(errPath(KindMalformed, path+"."+key, "expected bool"))
	}
	return b
}

func getIndex(o map[string]any, key, path string) int {
	f, ok := get(o, key, path).(float64)
	if !ok || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		panic(errPath(KindMalformed, path+"."+key, "expected nonnegative integer"))
	}
	return int(f)
}

func getArr(o map[string]any, key, path string) []any {
	a, ok := get(o, key, path).([]any)
	if !ok {
		panic(errPath(KindMalformed, path+"."+key, "expected array"))
	}
	return a
}

func getInt64(o map[string]any, key, path string) int64 {
	s := getStr(o, key, path)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(errPath(KindMalformed, path+"."+key, "bad integer %q", s))
	}
	return v
}

func getUint64(o map[string]any, key, path string) uint64 {
	s := getStr(o, key, path)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic(errPath(KindMalformed, path+"."+key, "bad size %q", s))
	}
	return v
}

func getFloat(o map[string]any, key, path string) float64 {
	s := getStr(o, key, path)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(errPath(KindMalformed, path+"."+key, "bad float %q", s))
	}
	return v
}

func decModule(v any, path string) *ast.Module {
	o := asObj(v, path)
	m := &ast.Module{Name: getStr(o, "name", path)}
	for i, d := range getArr(o, "decls", path) {
		m.Decls = append(m.Decls, decDecl(d, fmt.Sprintf("%s.decls[%d]", path, i)))
	}
	return m
}

func decDecl(v any, path string) ast.Decl {
	o := asObj(v, path)
	switch tag := getStr(o, "decl", path); tag {
	case "fn":
		d := &ast.FnDecl{
			Name:      getStr(o, "name", path),
			Signature: decType(get(o, "signature", path), path+".signature"),
		}
		for i, e := range getArr(o, "preconds", path) {
			d.Preconds = append(d.Preconds, decExpr(e, fmt.Sprintf("%s.preconds[%d]", path, i)))
		}
		for i, e := range getArr(o, "postconds", path) {
			d.Postconds = append(d.Postconds, decExpr(e, fmt.Sprintf("%s.postconds[%d]", path, i)))
		}
		d.Body = decExpr(get(o, "body", path), path+".body")
		return d
	case "type":
		return &ast.TypeDecl{
			Name:       getStr(o, "name", path),
			Definition: decType(get(o, "definition", path), path+".definition"),
		}
	case "let":
		d := &ast.LetDecl{Name: getStr(o, "name", path)}
		if t, ok := o["type"]; ok {
			d.Type = decType(t, path+".type")
		}
		d.Value = decExpr(get(o, "value", path), path+".value")
		return d
	default:
		panic(errPath(KindUnknownTag, path, "declaration tag %q", tag))
	}
}

func decExpr(v any, path string) ast.Expr {
	o := asObj(v, path)
	switch tag := getStr(o, "node", path); tag {
	case "lit":
		return &ast.Lit{Value: decLit(get(o, "lit", path), path+".lit")}
	case "idx":
		return &ast.Idx{Level: getIndex(o, "level", path)}
	case "name":
		return &ast.Name{Ident: getStr(o, "ident", path)}
	case "lambda":
		return &ast.Lambda{Body: decExpr(get(o, "body", path), path+".body")}
	case "app":
		return &ast.App{
			Fn:  decExpr(get(o, "fn", path), path+".fn"),
			Arg: decExpr(get(o, "arg", path), path+".arg"),
		}
	case "if":
		return &ast.If{
			Cond: decExpr(get(o, "cond", path), path+".cond"),
			Then: decExpr(get(o, "then", path), path+".then"),
			Else: decExpr(get(o, "else", path), path+".else"),
		}
	case "bin":
		op := decOp(o, path)
		if !op.IsBinary() {
			panic(errPath(KindUnknownSpelling, path+".op",
				"%q is not a binary operator", op.ASCII()))
		}
		return &ast.BinExpr{
			Op: op,
			L:  decExpr(get(o, "l", path), path+".l"),
			R:  decExpr(get(o, "r", path), path+".r"),
		}
	case "un":
		op := decOp(o, path)
		if !op.IsUnary() {
			panic(errPath(KindUnknownSpelling, path+".op",
				"%q is not a unary operator", op.ASCII()))
		}
		return &ast.UnExpr{Op: op, X: decExpr(get(o, "x", path), path+".x")}
	case "let":
		return &ast.Let{
			Pat:   decPattern(get(o, "pat", path), path+".pat"),
			Value: decExpr(get(o, "value", path), path+".value"),
			Body:  decExpr(get(o, "body", path), path+".body"),
		}
	case "match":
		m := &ast.Match{Scrutinee: decExpr(get(o, "scrutinee", path), path+".scrutinee")}
		for i, a := range getArr(o, "arms", path) {
			armPath := fmt.Sprintf("%s.arms[%d]", path, i)
			ao := asObj(a, armPath)
			m.Arms = append(m.Arms, ast.Arm{
				Pat:  decPattern(get(ao, "pat", armPath), armPath+".pat"),
				Body: decExpr(get(ao, "body", armPath), armPath+".body"),
			})
		}
		return m
	case "tuple":
		return &ast.TupleE{Elems: decExprs(o, path)}
	case "array":
		return &ast.ArrayE{Elems: decExprs(o, path)}
	case "variant":
		e := &ast.VariantE{Ctor: getStr(o, "ctor", path)}
		if p, ok := o["payload"]; ok {
			e.Payload = decExpr(p, path+".payload")
		}
		return e
	case "proj":
		return &ast.Proj{
			Tuple: decExpr(get(o, "tuple", path), path+".tuple"),
			Field: getIndex(o, "field", path),
		}
	case "map":
		return &ast.MapE{
			Over: decExpr(get(o, "over", path), path+".over"),
			Fn:   decExpr(get(o, "fn", path), path+".fn"),
		}
	case "filter":
		return &ast.FilterE{
			Over: decExpr(get(o, "over", path), path+".over"),
			Fn:   decExpr(get(o, "fn", path), path+".fn"),
		}
	case "bind":
		return &ast.BindE{
			Over: decExpr(get(o, "over", path), path+".over"),
			Fn:   decExpr(get(o, "fn", path), path+".fn"),
		}
	case "zipwith":
		return &ast.ZipWithE{
			A:  decExpr(get(o, "a", path), path+".a"),
			B:  decExpr(get(o, "b", path), path+".b"),
			Fn: decExpr(get(o, "fn", path), path+".fn"),
		}
	case "concat":
		return &ast.ConcatE{
			A: decExpr(get(o, "a", path), path+".a"),
			B: decExpr(get(o, "b", path), path+".b"),
		}
	case "sum":
		return &ast.SumE{X: decExpr(get(o, "x", path), path+".x")}
	case "product":
		return &ast.ProductE{X: decExpr(get(o, "x", path), path+".x")}
	case "compose":
		return &ast.ComposeE{
			F: decExpr(get(o, "f", path), path+".f"),
			G: decExpr(get(o, "g", path), path+".g"),
		}
	case "precond":
		return &ast.Precond{
			Cond: decExpr(get(o, "cond", path), path+".cond"),
			Body: decExpr(get(o, "body", path), path+".body"),
		}
	case "postcond":
		return &ast.Postcond{
			Cond: decExpr(get(o, "cond", path), path+".cond"),
			Body: decExpr(get(o, "body", path), path+".body"),
		}
	default:
		panic(errPath(KindUnknownTag, path, "expression tag %q", tag))
	}
}

func decExprs(o map[string]any, path string) []ast.Expr {
	arr := getArr(o, "elems", path)
	out := make([]ast.Expr, 0, len(arr))
	for i, e := range arr {
		out = append(out, decExpr(e, fmt.Sprintf("%s.elems[%d]", path, i)))
	}
	return out
}

func decOp(o map[string]any, path string) ast.Op {
	s := getStr(o, "op", path)
	op, err := ast.FromASCII(s)
	if err != nil {
		panic(errPath(KindUnknownSpelling, path+".op", "%v", err))
	}
	return op
}

func decLit(v any, path string) ast.Literal {
	o := asObj(v, path)
	switch kind := getStr(o, "kind", path); kind {
	case "int":
		return ast.IntLit(getInt64(o, "value", path))
	case "float":
		return ast.FloatLit(getFloat(o, "value", path))
	case "bool":
		return ast.BoolLit(getBool(o, "value", path))
	case "unit":
		return ast.UnitLit()
	default:
		panic(errPath(KindUnknownTag, path, "literal kind %q", kind))
	}
}

func decType(v any, path string) ast.Type {
	o := asObj(v, path)
	switch tag := getStr(o, "type", path); tag {
	case "prim":
		return &ast.Prim{Kind: decPrimKind(getStr(o, "prim", path), path)}
	case "named":
		return &ast.Named{Ident: getStr(o, "ident", path)}
	case "tensor":
		var shape ast.Shape
		for i, d := range getArr(o, "shape", path) {
			shape = append(shape, decDim(d, fmt.Sprintf("%s.shape[%d]", path, i)))
		}
		return &ast.Tensor{Shape: shape, Elem: decType(get(o, "elem", path), path+".elem")}
	case "func":
		return &ast.Func{
			Param:   decType(get(o, "param", path), path+".param"),
			Result:  decType(get(o, "result", path), path+".result"),
			Effects: decEffects(o, path),
		}
	case "tuple":
		arr := getArr(o, "elems", path)
		elems := make([]ast.Type, 0, len(arr))
		for i, e := range arr {
			elems = append(elems, decType(e, fmt.Sprintf("%s.elems[%d]", path, i)))
		}
		return &ast.TupleT{Elems: elems}
	case "refined":
		t := &ast.Refined{Base: decType(get(o, "base", path), path+".base")}
		if iv, ok := o["interval"]; ok {
			decoded := decInterval(iv, path+".interval")
			t.Interval = &decoded
		}
		if p, ok := o["pred"]; ok {
			t.Pred = decExpr(p, path+".pred")
		}
		return t
	default:
		panic(errPath(KindUnknownTag, path, "type tag %q", tag))
	}
}

func decPrimKind(s, path string) ast.PrimKind {
	switch s {
	case "I64":
		return ast.I64
	case "F64":
		return ast.F64
	case "Bool":
		return ast.BoolT
	case "Unit":
		return ast.UnitT
	default:
		panic(errPath(KindUnknownTag, path+".prim", "primitive %q", s))
	}
}

func decDim(v any, path string) ast.Dim {
	o := asObj(v, path)
	switch tag := getStr(o, "dim", path); tag {
	case "const":
		return &ast.DimConst{N: getUint64(o, "size", path)}
	case "var":
		return &ast.DimVar{Name: getStr(o, "name", path)}
	case "expr":
		return &ast.DimExpr{
			Op: decDimOp(getStr(o, "op", path), path),
			L:  decDim(get(o, "l", path), path+".l"),
			R:  decDim(get(o, "r", path), path+".r"),
		}
	default:
		panic(errPath(KindUnknownTag, path, "dimension tag %q", tag))
	}
}

func dimOpASCII(op ast.DimOp) string {
	switch op {
	case ast.DimAdd:
		return "+"
	case ast.DimSub:
		return "-"
	case ast.DimMul:
		return "*"
	default:
		return "/"
	}
}

func decDimOp(s, path string) ast.DimOp {
	switch s {
	case "+":
		return ast.DimAdd
	case "-":
		return ast.DimSub
	case "*":
		return ast.DimMul
	case "/":
		return ast.DimDiv
	default:
		panic(errPath(KindUnknownSpelling, path+".op", "dimension operator %q", s))
	}
}

func decEffects(o map[string]any, path string) ast.Effects {
	arr := getArr(o, "effects", path)
	elems := make([]ast.Effect, 0, len(arr))
	for i, raw := range arr {
		p := fmt.Sprintf("%s.effects[%d]", path, i)
		eo := asObj(raw, p)
		kind := decEffectKind(getStr(eo, "effect", p), p)
		var tag string
		if t, ok := eo["tag"]; ok {
			s, sok := t.(string)
			if !sok {
				panic(errPath(KindMalformed, p+".tag", "expected string"))
			}
			tag = s
		}
		if needsTag(kind) && tag == "" {
			panic(errPath(KindMalformed, p, "effect %q requires a tag", effectKindName(kind)))
		}
		elems = append(elems, ast.Effect{Kind: kind, Tag: tag})
	}
	return ast.NewEffects(elems...)
}

func needsTag(k ast.EffectKind) bool {
	switch k {
	case ast.EffectExn, ast.EffectFFI, ast.EffectCustom, ast.EffectVar:
		return true
	}
	return false
}

func decEffectKind(s, path string) ast.EffectKind {
	switch s {
	case "io":
		return ast.EffectIO
	case "mut":
		return ast.EffectMut
	case "rand":
		return ast.EffectRand
	case "div":
		return ast.EffectDiv
	case "exn":
		return ast.EffectExn
	case "ffi":
		return ast.EffectFFI
	case "custom":
		return ast.EffectCustom
	case "var":
		return ast.EffectVar
	default:
		panic(errPath(KindUnknownTag, path+".effect", "effect %q", s))
	}
}

func decInterval(v any, path string) ast.Interval {
	o := asObj(v, path)
	return ast.Interval{
		Lo:     decBound(get(o, "lo", path), path+".lo"),
		LoKind: decBoundKind(getStr(o, "loKind", path), path+".loKind"),
		Hi:     decBound(get(o, "hi", path), path+".hi"),
		HiKind: decBoundKind(getStr(o, "hiKind", path), path+".hiKind"),
	}
}

func decBoundKind(s, path string) ast.BoundKind {
	switch s {
	case "inclusive":
		return ast.Inclusive
	case "exclusive":
		return ast.Exclusive
	default:
		panic(errPath(KindMalformed, path, "bound kind %q", s))
	}
}

func decBound(v any, path string) ast.Bound {
	o := asObj(v, path)
	switch tag := getStr(o, "bound", path); tag {
	case "neginf":
		return ast.NegInf
	case "posinf":
		return ast.PosInf
	case "const":
		return ast.ConstBound(getFloat(o, "value", path))
	case "var":
		return ast.VarBound(getStr(o, "name", path))
	default:
		panic(errPath(KindUnknownTag, path, "bound tag %q", tag))
	}
}

func decPattern(v any, path string) ast.Pattern {
	o := asObj(v, path)
	switch tag := getStr(o, "pat", path); tag {
	case "wildcard":
		return &ast.PWildcard{}
	case "var":
		return &ast.PVar{Name: getStr(o, "name", path)}
	case "lit":
		return &ast.PLit{Value: decLit(get(o, "lit", path), path+".lit")}
	case "array":
		return &ast.PArray{Elems: decPatterns(o, "elems", path)}
	case "split":
		return &ast.PArraySplit{
			Head: decPatterns(o, "head", path),
			Tail: decPattern(get(o, "tail", path), path+".tail"),
		}
	case "tuple":
		return &ast.PTuple{Elems: decPatterns(o, "elems", path)}
	case "variant":
		p := &ast.PVariant{Ctor: getStr(o, "ctor", path)}
		if raw, ok := o["payload"]; ok {
			p.Payload = decPattern(raw, path+".payload")
		}
		return p
	case "typed":
		return &ast.PTyped{
			Pat:  decPattern(get(o, "inner", path), path+".inner"),
			Type: decType(get(o, "type", path), path+".type"),
		}
	case "or":
		return &ast.POr{
			A: decPattern(get(o, "a", path), path+".a"),
			B: decPattern(get(o, "b", path), path+".b"),
		}
	case "guard":
		return &ast.PGuard{
			Pat:  decPattern(get(o, "inner", path), path+".inner"),
			Cond: decExpr(get(o, "cond", path), path+".cond"),
		}
	default:
		panic(errPath(KindUnknownTag, path, "pattern tag %q", tag))
	}
}

func decPatterns(o map[string]any, key, path string) []ast.Pattern {
	arr := getArr(o, key, path)
	out := make([]ast.Pattern, 0, len(arr))
	for i, p := range arr {
		out = append(out, decPattern(p, fmt.Sprintf("%s.%s[%d]", path, key, i)))
	}
	return out
}
