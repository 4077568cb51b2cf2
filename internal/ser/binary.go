package ser

import (
	"encoding/binary"
	"math"

	"github.com/goth-lang/goth/internal/ast"
)

// BinaryVersion is the current binary format version. Decoders accept
// payloads up to and including this version and reject anything newer.
const BinaryVersion uint16 = 1

// binMagic opens every binary payload.
var binMagic = [4]byte{'G', 'O', 'T', 'H'}

// payloadModule and payloadExpr say what the payload root is.
const (
	payloadModule byte = 0x4D // 'M'
	payloadExpr   byte = 0x45 // 'E'
)

// Tag bytes. Each syntactic class has its own range; a byte outside
// the class's range at a class position is an UnknownTag failure.
const (
	// Declarations.
	tagFnDecl   byte = 0x01
	tagTypeDecl byte = 0x02
	tagLetDecl  byte = 0x03

	// Expressions.
	tagLit      byte = 0x10
	tagIdx      byte = 0x11
	tagName     byte = 0x12
	tagLambda   byte = 0x13
	tagApp      byte = 0x14
	tagIf       byte = 0x15
	tagBin      byte = 0x16
	tagUn       byte = 0x17
	tagLet      byte = 0x18
	tagMatch    byte = 0x19
	tagTuple    byte = 0x1A
	tagArray    byte = 0x1B
	tagVariant  byte = 0x1C
	tagProj     byte = 0x1D
	tagMap      byte = 0x1E
	tagFilter   byte = 0x1F
	tagBindOp   byte = 0x20
	tagZipWith  byte = 0x21
	tagConcat   byte = 0x22
	tagSum      byte = 0x23
	tagProduct  byte = 0x24
	tagCompose  byte = 0x25
	tagPrecond  byte = 0x26
	tagPostcond byte = 0x27

	// Types.
	tagPrim    byte = 0x30
	tagNamedT  byte = 0x31
	tagTensor  byte = 0x32
	tagFunc    byte = 0x33
	tagTupleT  byte = 0x34
	tagRefined byte = 0x35

	// Patterns.
	tagPWildcard   byte = 0x40
	tagPVar        byte = 0x41
	tagPLit        byte = 0x42
	tagPArray      byte = 0x43
	tagPArraySplit byte = 0x44
	tagPTuple      byte = 0x45
	tagPVariant    byte = 0x46
	tagPTyped      byte = 0x47
	tagPOr         byte = 0x48
	tagPGuard      byte = 0x49

	// Shape dimensions.
	tagDimConst byte = 0x50
	tagDimVar   byte = 0x51
	tagDimExpr  byte = 0x52

	// Interval bounds.
	tagBoundNegInf byte = 0x58
	tagBoundPosInf byte = 0x59
	tagBoundConst  byte = 0x5A
	tagBoundVar    byte = 0x5B
)

// EncodeModuleBinary encodes a module. Encoding is total over
// well-formed trees and cannot fail.
func EncodeModuleBinary(m *ast.Module) []byte {
	w := newWriter(payloadModule)
	w.module(m)
	return w.buf
}

// EncodeExprBinary encodes a bare expression.
func EncodeExprBinary(e ast.Expr) []byte {
	w := newWriter(payloadExpr)
	w.expr(e)
	return w.buf
}

// DecodeModuleBinary decodes a module payload.
func DecodeModuleBinary(data []byte) (m *ast.Module, err error) {
	defer catch(&err)
	r := openReader(data, payloadModule)
	m = r.module()
	r.end()
	return m, nil
}

// DecodeExprBinary decodes a bare expression payload.
func DecodeExprBinary(data []byte) (e ast.Expr, err error) {
	defer catch(&err)
	r := openReader(data, payloadExpr)
	e = r.expr()
	r.end()
	return e, nil
}

// catch converts the decoder's internal control-flow panic back into
// an ordinary error return.
func catch(err *error) {
	if p := recover(); p != nil {
		if e, ok := p.(*Error); ok {
			*err = e
			return
		}
		panic(p)
	}
}

// ===== encoder =====

type writer struct {
	buf []byte
}

func newWriter(payload byte) *writer {
	w := &writer{buf: make([]byte, 0, 256)}
	w.buf = append(w.buf, binMagic[:]...)
	w.u16(BinaryVersion)
	w.u8(payload)
	return w
}

func (w *writer) u8(v byte) { w.buf = append(w.buf, v) }

func (w *writer) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *writer) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) opt(present bool) {
	if present {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) module(m *ast.Module) {
	w.str(m.Name)
	w.u32(uint32(len(m.Decls)))
	for _, d := range m.Decls {
		w.decl(d)
	}
}

func (w *writer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FnDecl:
		w.u8(tagFnDecl)
		w.str(d.Name)
		w.typ(d.Signature)
		w.u32(uint32(len(d.Preconds)))
		for _, e := range d.Preconds {
			w.expr(e)
		}
		w.u32(uint32(len(d.Postconds)))
		for _, e := range d.Postconds {
			w.expr(e)
		}
		w.expr(d.Body)
	case *ast.TypeDecl:
		w.u8(tagTypeDecl)
		w.str(d.Name)
		w.typ(d.Definition)
	case *ast.LetDecl:
		w.u8(tagLetDecl)
		w.str(d.Name)
		w.opt(d.Type != nil)
		if d.Type != nil {
			w.typ(d.Type)
		}
		w.expr(d.Value)
	}
}

func (w *writer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Lit:
		w.u8(tagLit)
		w.lit(e.Value)
	case *ast.Idx:
		w.u8(tagIdx)
		w.u32(uint32(e.Level))
	case *ast.Name:
		w.u8(tagName)
		w.str(e.Ident)
	case *ast.Lambda:
		w.u8(tagLambda)
		w.expr(e.Body)
	case *ast.App:
		w.u8(tagApp)
		w.expr(e.Fn)
		w.expr(e.Arg)
	case *ast.If:
		w.u8(tagIf)
		w.expr(e.Cond)
		w.expr(e.Then)
		w.expr(e.Else)
	case *ast.BinExpr:
		w.u8(tagBin)
		w.u8(byte(e.Op))
		w.expr(e.L)
		w.expr(e.R)
	case *ast.UnExpr:
		w.u8(tagUn)
		w.u8(byte(e.Op))
		w.expr(e.X)
	case *ast.Let:
		w.u8(tagLet)
		w.pattern(e.Pat)
		w.expr(e.Value)
		w.expr(e.Body)
	case *ast.Match:
		w.u8(tagMatch)
		w.expr(e.Scrutinee)
		w.u32(uint32(len(e.Arms)))
		for _, arm := range e.Arms {
			w.pattern(arm.Pat)
			w.expr(arm.Body)
		}
	case *ast.TupleE:
		w.u8(tagTuple)
		w.u32(uint32(len(e.Elems)))
		for _, x := range e.Elems {
			w.expr(x)
		}
	case *ast.ArrayE:
		w.u8(tagArray)
		w.u32(uint32(len(e.Elems)))
		for _, x := range e.Elems {
			w.expr(x)
		}
	case *ast.VariantE:
		w.u8(tagVariant)
		w.str(e.Ctor)
		w.opt(e.Payload != nil)
		if e.Payload != nil {
			w.expr(e.Payload)
		}
	case *ast.Proj:
		w.u8(tagProj)
		w.expr(e.Tuple)
		w.u32(uint32(e.Field))
	case *ast.MapE:
		w.u8(tagMap)
		w.expr(e.Over)
		w.expr(e.Fn)
	case *ast.FilterE:
		w.u8(tagFilter)
		w.expr(e.Over)
		w.expr(e.Fn)
	case *ast.BindE:
		w.u8(tagBindOp)
		w.expr(e.Over)
		w.expr(e.Fn)
	case *ast.ZipWithE:
		w.u8(tagZipWith)
		w.expr(e.A)
		w.expr(e.B)
		w.expr(e.Fn)
	case *ast.ConcatE:
		w.u8(tagConcat)
		w.expr(e.A)
		w.expr(e.B)
	case *ast.SumE:
		w.u8(tagSum)
		w.expr(e.X)
	case *ast.ProductE:
		w.u8(tagProduct)
		w.expr(e.X)
	case *ast.ComposeE:
		w.u8(tagCompose)
		w.expr(e.F)
		w.expr(e.G)
	case *ast.Precond:
		w.u8(tagPrecond)
		w.expr(e.Cond)
		w.expr(e.Body)
	case *ast.Postcond:
		w.u8(tagPostcond)
		w.expr(e.Cond)
		w.expr(e.Body)
	}
}

func (w *writer) lit(l ast.Literal) {
	w.u8(byte(l.Kind))
	switch l.Kind {
	case ast.LitInt:
		w.u64(uint64(l.Int))
	case ast.LitFloat:
		w.f64(l.Float)
	case ast.LitBool:
		w.opt(l.Bool)
	case ast.LitUnit:
	}
}

func (w *writer) typ(t ast.Type) {
	switch t := t.(type) {
	case *ast.Prim:
		w.u8(tagPrim)
		w.u8(byte(t.Kind))
	case *ast.Named:
		w.u8(tagNamedT)
		w.str(t.Ident)
	case *ast.Tensor:
		w.u8(tagTensor)
		w.shape(t.Shape)
		w.typ(t.Elem)
	case *ast.Func:
		w.u8(tagFunc)
		w.typ(t.Param)
		w.typ(t.Result)
		w.effects(t.Effects)
	case *ast.TupleT:
		w.u8(tagTupleT)
		w.u32(uint32(len(t.Elems)))
		for _, e := range t.Elems {
			w.typ(e)
		}
	case *ast.Refined:
		w.u8(tagRefined)
		w.typ(t.Base)
		w.opt(t.Interval != nil)
		if t.Interval != nil {
			w.interval(*t.Interval)
		}
		w.opt(t.Pred != nil)
		if t.Pred != nil {
			w.expr(t.Pred)
		}
	}
}

func (w *writer) shape(s ast.Shape) {
	w.u32(uint32(len(s)))
	for _, d := range s {
		w.dim(d)
	}
}

func (w *writer) dim(d ast.Dim) {
	switch d := d.(type) {
	case *ast.DimConst:
		w.u8(tagDimConst)
		w.u64(d.N)
	case *ast.DimVar:
		w.u8(tagDimVar)
		w.str(d.Name)
	case *ast.DimExpr:
		w.u8(tagDimExpr)
		w.u8(byte(d.Op))
		w.dim(d.L)
		w.dim(d.R)
	}
}

func (w *writer) effects(r ast.Effects) {
	elems := r.Elems()
	w.u32(uint32(len(elems)))
	for _, e := range elems {
		w.u8(byte(e.Kind))
		w.str(e.Tag)
	}
}

func (w *writer) interval(iv ast.Interval) {
	w.bound(iv.Lo)
	w.u8(byte(iv.LoKind))
	w.bound(iv.Hi)
	w.u8(byte(iv.HiKind))
}

func (w *writer) bound(b ast.Bound) {
	switch b.Sort {
	case ast.BoundNegInf:
		w.u8(tagBoundNegInf)
	case ast.BoundPosInf:
		w.u8(tagBoundPosInf)
	case ast.BoundConst:
		w.u8(tagBoundConst)
		w.f64(b.Value)
	case ast.BoundVar:
		w.u8(tagBoundVar)
		w.str(b.Name)
	}
}

func (w *writer) pattern(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.PWildcard:
		w.u8(tagPWildcard)
	case *ast.PVar:
		w.u8(tagPVar)
		w.str(p.Name)
	case *ast.PLit:
		w.u8(tagPLit)
		w.lit(p.Value)
	case *ast.PArray:
		w.u8(tagPArray)
		w.u32(uint32(len(p.Elems)))
		for _, q := range p.Elems {
			w.pattern(q)
		}
	case *ast.PArraySplit:
		w.u8(tagPArraySplit)
		w.u32(uint32(len(p.Head)))
		for _, q := range p.Head {
			w.pattern(q)
		}
		w.pattern(p.Tail)
	case *ast.PTuple:
		w.u8(tagPTuple)
		w.u32(uint32(len(p.Elems)))
		for _, q := range p.Elems {
			w.pattern(q)
		}
	case *ast.PVariant:
		w.u8(tagPVariant)
		w.str(p.Ctor)
		w.opt(p.Payload != nil)
		if p.Payload != nil {
			w.pattern(p.Payload)
		}
	case *ast.PTyped:
		w.u8(tagPTyped)
		w.pattern(p.Pat)
		w.typ(p.Type)
	case *ast.POr:
		w.u8(tagPOr)
		w.pattern(p.A)
		w.pattern(p.B)
	case *ast.PGuard:
		w.u8(tagPGuard)
		w.pattern(p.Pat)
		w.expr(p.Cond)
	}
}

// ===== decoder =====

type reader struct {
	data []byte
	off  int
}

func openReader(data []byte, payload byte) *reader {
	r := &reader{data: data}
	magic := r.need(4)
	if magic[0] != binMagic[0] || magic[1] != binMagic[1] ||
		magic[2] != binMagic[2] || magic[3] != binMagic[3] {
		panic(errAt(KindMalformed, 0, "bad magic %q", string(magic)))
	}
	version := r.u16()
	if version > BinaryVersion {
		panic(errAt(KindVersionMismatch, 4,
			"payload version %d, decoder supports up to %d", version, BinaryVersion))
	}
	if got := r.u8(); got != payload {
		panic(errAt(KindMalformed, r.off-1, "payload marker %#x, want %#x", got, payload))
	}
	return r
}

// end rejects trailing bytes so a payload is exactly one tree.
func (r *reader) end() {
	if r.off != len(r.data) {
		panic(errAt(KindMalformed, r.off, "%d trailing bytes", len(r.data)-r.off))
	}
}

func (r *reader) need(n int) []byte {
	if len(r.data)-r.off < n {
		panic(errAt(KindTruncated, r.off,
			"need %d bytes, have %d", n, len(r.data)-r.off))
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() byte { return r.need(1)[0] }

func (r *reader) u16() uint16 {
	return binary.LittleEndian.Uint16(r.need(2))
}

func (r *reader) u32() uint32 {
	return binary.LittleEndian.Uint32(r.need(4))
}

func (r *reader) u64() uint64 {
	return binary.LittleEndian.Uint64(r.need(8))
}

func (r *reader) f64() float64 { return math.Float64frombits(r.u64()) }

func (r *reader) str() string {
	n := int(r.u32())
	return string(r.need(n))
}

func (r *reader) opt() bool {
	switch v := r.u8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		panic(errAt(KindMalformed, r.off-1, "presence byte %#x", v))
	}
}

// count reads a collection length and sanity-checks it against the
// remaining input so a corrupt length cannot drive huge allocations.
func (r *reader) count() int {
	n := int(r.u32())
	if n > len(r.data)-r.off {
		panic(errAt(KindTruncated, r.off-4,
			"collection of %d elements exceeds remaining input", n))
	}
	return n
}

func (r *reader) module() *ast.Module {
	m := &ast.Module{Name: r.str()}
	n := r.count()
	m.Decls = make([]ast.Decl, 0, n)
	for i := 0; i < n; i++ {
		m.Decls = append(m.Decls, r.decl())
	}
	return m
}

func (r *reader) decl() ast.Decl {
	at := r.off
	switch tag := r.u8(); tag {
	case tagFnDecl:
		d := &ast.FnDecl{Name: r.str(), Signature: r.typ()}
		for i, n := 0, r.count(); i < n; i++ {
			d.Preconds = append(d.Preconds, r.expr())
		}
		for i, n := 0, r.count(); i < n; i++ {
			d.Postconds = append(d.Postconds, r.expr())
		}
		d.Body = r.expr()
		return d
	case tagTypeDecl:
		return &ast.TypeDecl{Name: r.str(), Definition: r.typ()}
	case tagLetDecl:
		d := &ast.LetDecl{Name: r.str()}
		if r.opt() {
			d.Type = r.typ()
		}
		d.Value = r.expr()
		return d
	default:
		panic(errAt(KindUnknownTag, at, "declaration tag %#x", tag))
	}
}

func (r *reader) expr() ast.Expr {
	at := r.off
	switch tag := r.u8(); tag {
	case tagLit:
		return &ast.Lit{Value: r.lit()}
	case tagIdx:
		return &ast.Idx{Level: int(r.u32())}
	case tagName:
		return &ast.Name{Ident: r.str()}
	case tagLambda:
		return &ast.Lambda{Body: r.expr()}
	case tagApp:
		return &ast.App{Fn: r.expr(), Arg: r.expr()}
	case tagIf:
		return &ast.If{Cond: r.expr(), Then: r.expr(), Else: r.expr()}
	case tagBin:
		op := r.binOp(at)
		return &ast.BinExpr{Op: op, L: r.expr(), R: r.expr()}
	case tagUn:
		op := r.unOp(at)
		return &ast.UnExpr{Op: op, X: r.expr()}
	case tagLet:
		return &ast.Let{Pat: r.pattern(), Value: r.expr(), Body: r.expr()}
	case tagMatch:
		m := &ast.Match{Scrutinee: r.expr()}
		for i, n := 0, r.count(); i < n; i++ {
			m.Arms = append(m.Arms, ast.Arm{Pat: r.pattern(), Body: r.expr()})
		}
		return m
	case tagTuple:
		return &ast.TupleE{Elems: r.exprs()}
	case tagArray:
		return &ast.ArrayE{Elems: r.exprs()}
	case tagVariant:
		v := &ast.VariantE{Ctor: r.str()}
		if r.opt() {
			v.Payload = r.expr()
		}
		return v
	case tagProj:
		return &ast.Proj{Tuple: r.expr(), Field: int(r.u32())}
	case tagMap:
		return &ast.MapE{Over: r.expr(), Fn: r.expr()}
	case tagFilter:
		return &ast.FilterE{Over: r.expr(), Fn: r.expr()}
	case tagBindOp:
		return &ast.BindE{Over: r.expr(), Fn: r.expr()}
	case tagZipWith:
		return &ast.ZipWithE{A: r.expr(), B: r.expr(), Fn: r.expr()}
	case tagConcat:
		return &ast.ConcatE{A: r.expr(), B: r.expr()}
	case tagSum:
		return &ast.SumE{X: r.expr()}
	case tagProduct:
		return &ast.ProductE{X: r.expr()}
	case tagCompose:
		return &ast.ComposeE{F: r.expr(), G: r.expr()}
	case tagPrecond:
		return &ast.Precond{Cond: r.expr(), Body: r.expr()}
	case tagPostcond:
		return &ast.Postcond{Cond: r.expr(), Body: r.expr()}
	default:
		panic(errAt(KindUnknownTag, at, "expression tag %#x", tag))
	}
}

func (r *reader) exprs() []ast.Expr {
	n := r.count()
	out := make([]ast.Expr, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.expr())
	}
	return out
}

func (r *reader) binOp(at int) ast.Op {
	op := ast.Op(r.u8())
	if !ast.ValidOp(op) || !op.IsBinary() {
		panic(errAt(KindUnknownTag, at, "binary operator %d", int(op)))
	}
	return op
}

func (r *reader) unOp(at int) ast.Op {
	op := ast.Op(r.u8())
	if !ast.ValidOp(op) || !op.IsUnary() {
		panic(errAt(KindUnknownTag, at, "unary operator %d", int(op)))
	}
	return op
}

func (r *reader) lit() ast.Literal {
	at := r.off
	switch kind := ast.LitKind(r.u8()); kind {
	case ast.LitInt:
		return ast.IntLit(int64(r.u64()))
	case ast.LitFloat:
		return ast.FloatLit(r.f64())
	case ast.LitBool:
		return ast.BoolLit(r.opt())
	case ast.LitUnit:
		return ast.UnitLit()
	default:
		panic(errAt(KindUnknownTag, at, "literal kind %d", int(kind)))
	}
}

func (r *reader) typ() ast.Type {
	at := r.off
	switch tag := r.u8(); tag {
	case tagPrim:
		kind := ast.PrimKind(r.u8())
		if kind < ast.I64 || kind > ast.UnitT {
			panic(errAt(KindUnknownTag, at, "primitive kind %d", int(kind)))
		}
		return &ast.Prim{Kind: kind}
	case tagNamedT:
		return &ast.Named{Ident: r.str()}
	case tagTensor:
		return &ast.Tensor{Shape: r.shape(), Elem: r.typ()}
	case tagFunc:
		return &ast.Func{Param: r.typ(), Result: r.typ(), Effects: r.effects()}
	case tagTupleT:
		n := r.count()
		elems := make([]ast.Type, 0, n)
		for i := 0; i < n; i++ {
			elems = append(elems, r.typ())
		}
		return &ast.TupleT{Elems: elems}
	case tagRefined:
		t := &ast.Refined{Base: r.typ()}
		if r.opt() {
			iv := r.interval()
			t.Interval = &iv
		}
		if r.opt() {
			t.Pred = r.expr()
		}
		return t
	default:
		panic(errAt(KindUnknownTag, at, "type tag %#x", tag))
	}
}

func (r *reader) shape() ast.Shape {
	n := r.count()
	s := make(ast.Shape, 0, n)
	for i := 0; i < n; i++ {
		s = append(s, r.dim())
	}
	return s
}

func (r *reader) dim() ast.Dim {
	at := r.off
	switch tag := r.u8(); tag {
	case tagDimConst:
		return &ast.DimConst{N: r.u64()}
	case tagDimVar:
		return &ast.DimVar{Name: r.str()}
	case tagDimExpr:
		op := ast.DimOp(r.u8())
		if op < ast.DimAdd || op > ast.DimDiv {
			panic(errAt(KindUnknownTag, at, "dimension operator %d", int(op)))
		}
		return &ast.DimExpr{Op: op, L: r.dim(), R: r.dim()}
	default:
		panic(errAt(KindUnknownTag, at, "dimension tag %#x", tag))
	}
}

func (r *reader) effects() ast.Effects {
	n := r.count()
	elems := make([]ast.Effect, 0, n)
	for i := 0; i < n; i++ {
		at := r.off
		kind := ast.EffectKind(r.u8())
		if kind < ast.EffectIO || kind > ast.EffectVar {
			panic(errAt(KindUnknownTag, at, "effect kind %d", int(kind)))
		}
		elems = append(elems, ast.Effect{Kind: kind, Tag: r.str()})
	}
	return ast.NewEffects(elems...)
}

func (r *reader) interval() ast.Interval {
	return ast.Interval{
		Lo:     r.bound(),
		LoKind: r.boundKind(),
		Hi:     r.bound(),
		HiKind: r.boundKind(),
	}
}

func (r *reader) bound() ast.Bound {
	at := r.off
	switch tag := r.u8(); tag {
	case tagBoundNegInf:
		return ast.NegInf
	case tagBoundPosInf:
		return ast.PosInf
	case tagBoundConst:
		return ast.ConstBound(r.f64())
	case tagBoundVar:
		return ast.VarBound(r.str())
	default:
		panic(errAt(KindUnknownTag, at, "bound tag %#x", tag))
	}
}

func (r *reader) boundKind() ast.BoundKind {
	switch v := r.u8(); v {
	case 0:
		return ast.Inclusive
	case 1:
		return ast.Exclusive
	default:
		panic(errAt(KindMalformed, r.off-1, "bound kind %d", int(v)))
	}
}

func (r *reader) pattern() ast.Pattern {
	at := r.off
	switch tag := r.u8(); tag {
	case tagPWildcard:
		return &ast.PWildcard{}
	case tagPVar:
		return &ast.PVar{Name: r.str()}
	case tagPLit:
		return &ast.PLit{Value: r.lit()}
	case tagPArray:
		return &ast.PArray{Elems: r.patterns()}
	case tagPArraySplit:
		return &ast.PArraySplit{Head: r.patterns(), Tail: r.pattern()}
	case tagPTuple:
		return &ast.PTuple{Elems: r.patterns()}
	case tagPVariant:
		p := &ast.PVariant{Ctor: r.str()}
		if r.opt() {
			p.Payload = r.pattern()
		}
		return p
	case tagPTyped:
		return &ast.PTyped{Pat: r.pattern(), Type: r.typ()}
	case tagPOr:
		return &ast.POr{A: r.pattern(), B: r.pattern()}
	case tagPGuard:
		return &ast.PGuard{Pat: r.pattern(), Cond: r.expr()}
	default:
		panic(errAt(KindUnknownTag, at, "pattern tag %#x", tag))
	}
}

func (r *reader) patterns() []ast.Pattern {
	n := r.count()
	out := make([]ast.Pattern, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.pattern())
	}
	return out
}
