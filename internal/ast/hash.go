package ast

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// HashType returns a canonical 64-bit hash of a type. Equal types (per
// EqualType) hash equally, so the hash can key lookup tables in
// checkers and caches; collisions are possible and callers must
// confirm with EqualType.
func HashType(t Type) uint64 {
	h := &hasher{h: fnv.New64a()}
	h.typ(t)
	return h.h.Sum64()
}

// HashExpr returns a canonical 64-bit hash of an expression,
// consistent with EqualExpr.
func HashExpr(e Expr) uint64 {
	h := &hasher{h: fnv.New64a()}
	h.expr(e)
	return h.h.Sum64()
}

type hasher struct {
	h   hash.Hash64
	buf [8]byte
}

func (h *hasher) byte(b byte) {
	h.buf[0] = b
	h.h.Write(h.buf[:1])
}

func (h *hasher) u64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.h.Write(h.buf[:])
}

func (h *hasher) str(s string) {
	h.u64(uint64(len(s)))
	h.h.Write([]byte(s))
}

// Tag bytes below are private to the hash and independent of the wire
// codecs; only self-consistency matters.

func (h *hasher) typ(t Type) {
	switch t := t.(type) {
	case *Prim:
		h.byte(1)
		h.byte(byte(t.Kind))
	case *Named:
		h.byte(2)
		h.str(t.Ident)
	case *Tensor:
		h.byte(3)
		h.shape(t.Shape)
		h.typ(t.Elem)
	case *Func:
		h.byte(4)
		h.typ(t.Param)
		h.typ(t.Result)
		h.effects(t.Effects)
	case *TupleT:
		h.byte(5)
		h.u64(uint64(len(t.Elems)))
		for _, e := range t.Elems {
			h.typ(e)
		}
	case *Refined:
		h.byte(6)
		h.typ(t.Base)
		if t.Interval != nil {
			h.byte(1)
			h.interval(*t.Interval)
		} else {
			h.byte(0)
		}
		if t.Pred != nil {
			h.byte(1)
			h.expr(t.Pred)
		} else {
			h.byte(0)
		}
	}
}

func (h *hasher) shape(s Shape) {
	h.u64(uint64(len(s)))
	for _, d := range s {
		h.dim(d)
	}
}

func (h *hasher) dim(d Dim) {
	switch d := d.(type) {
	case *DimConst:
		h.byte(1)
		h.u64(d.N)
	case *DimVar:
		h.byte(2)
		h.str(d.Name)
	case *DimExpr:
		h.byte(3)
		h.byte(byte(d.Op))
		h.dim(d.L)
		h.dim(d.R)
	}
}

func (h *hasher) effects(r Effects) {
	h.u64(uint64(r.Len()))
	for _, e := range r.Elems() {
		h.byte(byte(e.Kind))
		h.str(e.Tag)
	}
}

func (h *hasher) interval(iv Interval) {
	h.bound(iv.Lo)
	h.byte(byte(iv.LoKind))
	h.bound(iv.Hi)
	h.byte(byte(iv.HiKind))
}

func (h *hasher) bound(b Bound) {
	h.byte(byte(b.Sort))
	h.u64(math.Float64bits(b.Value))
	h.str(b.Name)
}

func (h *hasher) lit(l Literal) {
	h.byte(byte(l.Kind))
	switch l.Kind {
	case LitInt:
		h.u64(uint64(l.Int))
	case LitFloat:
		h.u64(math.Float64bits(l.Float))
	case LitBool:
		if l.Bool {
			h.byte(1)
		} else {
			h.byte(0)
		}
	case LitUnit:
	}
}

func (h *hasher) expr(e Expr) {
	switch e := e.(type) {
	case *Lit:
		h.byte(10)
		h.lit(e.Value)
	case *Idx:
		h.byte(11)
		h.u64(uint64(e.Level))
	case *Name:
		h.byte(12)
		h.str(e.Ident)
	case *Lambda:
		h.byte(13)
		h.expr(e.Body)
	case *App:
		h.byte(14)
		h.expr(e.Fn)
		h.expr(e.Arg)
	case *If:
		h.byte(15)
		h.expr(e.Cond)
		h.expr(e.Then)
		h.expr(e.Else)
	case *BinExpr:
		h.byte(16)
		h.byte(byte(e.Op))
		h.expr(e.L)
		h.expr(e.R)
	case *UnExpr:
		h.byte(17)
		h.byte(byte(e.Op))
		h.expr(e.X)
	case *Let:
		h.byte(18)
		h.pattern(e.Pat)
		h.expr(e.Value)
		h.expr(e.Body)
	case *Match:
		h.byte(19)
		h.expr(e.Scrutinee)
		h.u64(uint64(len(e.Arms)))
		for _, arm := range e.Arms {
			h.pattern(arm.Pat)
			h.expr(arm.Body)
		}
	case *TupleE:
		h.byte(20)
		h.u64(uint64(len(e.Elems)))
		for _, x := range e.Elems {
			h.expr(x)
		}
	case *ArrayE:
		h.byte(21)
		h.u64(uint64(len(e.Elems)))
		for _, x := range e.Elems {
			h.expr(x)
		}
	case *VariantE:
		h.byte(22)
		h.str(e.Ctor)
		if e.Payload != nil {
			h.byte(1)
			h.expr(e.Payload)
		} else {
			h.byte(0)
		}
	case *Proj:
		h.byte(23)
		h.expr(e.Tuple)
		h.u64(uint64(e.Field))
	case *MapE:
		h.byte(24)
		h.expr(e.Over)
		h.expr(e.Fn)
	case *FilterE:
		h.byte(25)
		h.expr(e.Over)
		h.expr(e.Fn)
	case *BindE:
		h.byte(26)
		h.expr(e.Over)
		h.expr(e.Fn)
	case *ZipWithE:
		h.byte(27)
		h.expr(e.A)
		h.expr(e.B)
		h.expr(e.Fn)
	case *ConcatE:
		h.byte(28)
		h.expr(e.A)
		h.expr(e.B)
	case *SumE:
		h.byte(29)
		h.expr(e.X)
	case *ProductE:
		h.byte(30)
		h.expr(e.X)
	case *ComposeE:
		h.byte(31)
		h.expr(e.F)
		h.expr(e.G)
	case *Precond:
		h.byte(32)
		h.expr(e.Cond)
		h.expr(e.Body)
	case *Postcond:
		h.byte(33)
		h.expr(e.Cond)
		h.expr(e.Body)
	}
}

func (h *hasher) pattern(p Pattern) {
	switch p := p.(type) {
	case *PWildcard:
		h.byte(40)
	case *PVar:
		// Name hints are presentation only and stay out of the hash,
		// matching EqualPattern.
		h.byte(41)
	case *PLit:
		h.byte(42)
		h.lit(p.Value)
	case *PArray:
		h.byte(43)
		h.u64(uint64(len(p.Elems)))
		for _, q := range p.Elems {
			h.pattern(q)
		}
	case *PArraySplit:
		h.byte(44)
		h.u64(uint64(len(p.Head)))
		for _, q := range p.Head {
			h.pattern(q)
		}
		h.pattern(p.Tail)
	case *PTuple:
		h.byte(45)
		h.u64(uint64(len(p.Elems)))
		for _, q := range p.Elems {
			h.pattern(q)
		}
	case *PVariant:
		h.byte(46)
		h.str(p.Ctor)
		if p.Payload != nil {
			h.byte(1)
			h.pattern(p.Payload)
		} else {
			h.byte(0)
		}
	case *PTyped:
		h.byte(47)
		h.pattern(p.Pat)
		h.typ(p.Type)
	case *POr:
		h.byte(48)
		h.pattern(p.A)
		h.pattern(p.B)
	case *PGuard:
		h.byte(49)
		h.pattern(p.Pat)
		h.expr(p.Cond)
	}
}
