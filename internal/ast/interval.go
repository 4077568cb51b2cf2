package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BoundSort discriminates interval endpoint variants.
type BoundSort int

const (
	BoundNegInf BoundSort = iota
	BoundPosInf
	BoundConst
	BoundVar
)

// Bound is one endpoint of an interval.
type Bound struct {
	Sort  BoundSort
	Value float64 // significant when Sort == BoundConst
	Name  string  // significant when Sort == BoundVar
}

// NegInf and PosInf are the infinite endpoints.
var (
	NegInf = Bound{Sort: BoundNegInf}
	PosInf = Bound{Sort: BoundPosInf}
)

// ConstBound builds a concrete endpoint.
func ConstBound(v float64) Bound { return Bound{Sort: BoundConst, Value: v} }

// VarBound builds a symbolic endpoint.
func VarBound(name string) Bound { return Bound{Sort: BoundVar, Name: name} }

// IsFinite reports whether the endpoint is concrete or symbolic.
func (b Bound) IsFinite() bool { return b.Sort == BoundConst || b.Sort == BoundVar }

// String renders the endpoint.
func (b Bound) String() string {
	switch b.Sort {
	case BoundNegInf:
		return "-∞"
	case BoundPosInf:
		return "∞"
	case BoundConst:
		return strconv.FormatFloat(b.Value, 'g', -1, 64)
	case BoundVar:
		return b.Name
	default:
		return fmt.Sprintf("Bound(%d)", int(b.Sort))
	}
}

// BoundKind says whether an endpoint is included in the interval.
type BoundKind int

const (
	Inclusive BoundKind = iota // [ or ]
	Exclusive                  // ( or )
)

// Interval is a numeric range with optionally-open endpoints, e.g.
// [0..1], (0..∞), [lo..hi).
type Interval struct {
	Lo     Bound
	LoKind BoundKind
	Hi     Bound
	HiKind BoundKind
}

// Closed builds [lo..hi].
func Closed(lo, hi Bound) Interval {
	return Interval{Lo: lo, LoKind: Inclusive, Hi: hi, HiKind: Inclusive}
}

// Open builds (lo..hi).
func Open(lo, hi Bound) Interval {
	return Interval{Lo: lo, LoKind: Exclusive, Hi: hi, HiKind: Exclusive}
}

// HalfOpenRight builds [lo..hi).
func HalfOpenRight(lo, hi Bound) Interval {
	return Interval{Lo: lo, LoKind: Inclusive, Hi: hi, HiKind: Exclusive}
}

// HalfOpenLeft builds (lo..hi].
func HalfOpenLeft(lo, hi Bound) Interval {
	return Interval{Lo: lo, LoKind: Exclusive, Hi: hi, HiKind: Inclusive}
}

// UnitInterval returns [0..1].
func UnitInterval() Interval { return Closed(ConstBound(0), ConstBound(1)) }

// NonNegative returns [0..∞).
func NonNegative() Interval { return HalfOpenRight(ConstBound(0), PosInf) }

// Positive returns (0..∞).
func Positive() Interval { return Open(ConstBound(0), PosInf) }

// AllReals returns (-∞..∞).
func AllReals() Interval { return Open(NegInf, PosInf) }

// Valid reports whether the interval respects its ordering invariant:
// when both endpoints are concrete, lo must not exceed hi. Symbolic or
// infinite endpoints are always accepted.
func (iv Interval) Valid() bool {
	if iv.Lo.Sort == BoundConst && iv.Hi.Sort == BoundConst {
		return iv.Lo.Value <= iv.Hi.Value
	}
	return true
}

// Equal reports structural equality of two intervals.
func (iv Interval) Equal(other Interval) bool { return iv == other }

// MayContainZero reports whether the interval might contain zero.
// Symbolic and infinite endpoints are treated conservatively.
func (iv Interval) MayContainZero() bool {
	if iv.Lo.Sort == BoundConst && iv.Hi.Sort == BoundConst {
		loOK := iv.Lo.Value < 0 || (iv.Lo.Value == 0 && iv.LoKind == Inclusive)
		hiOK := iv.Hi.Value > 0 || (iv.Hi.Value == 0 && iv.HiKind == Inclusive)
		return loOK && hiOK
	}
	return true
}

// numeric maps an endpoint to a float for conservative arithmetic.
// Symbolic endpoints widen to the corresponding infinity.
func (b Bound) numeric(negSide bool) float64 {
	switch b.Sort {
	case BoundConst:
		return b.Value
	case BoundNegInf:
		return math.Inf(-1)
	case BoundPosInf:
		return math.Inf(1)
	default:
		if negSide {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
}

func boundFromFloat(v float64) Bound {
	switch {
	case math.IsInf(v, -1):
		return NegInf
	case math.IsInf(v, 1):
		return PosInf
	default:
		return ConstBound(v)
	}
}

func joinKind(a, b BoundKind) BoundKind {
	if a == Exclusive || b == Exclusive {
		return Exclusive
	}
	return Inclusive
}

// Add returns the conservative sum [a+c .. b+d] of two intervals.
func (iv Interval) Add(other Interval) Interval {
	lo := iv.Lo.numeric(true) + other.Lo.numeric(true)
	hi := iv.Hi.numeric(false) + other.Hi.numeric(false)
	return Interval{
		Lo:     boundFromFloat(lo),
		LoKind: joinKind(iv.LoKind, other.LoKind),
		Hi:     boundFromFloat(hi),
		HiKind: joinKind(iv.HiKind, other.HiKind),
	}
}

// Neg returns the negated interval [-hi .. -lo].
func (iv Interval) Neg() Interval {
	return Interval{
		Lo:     boundFromFloat(-iv.Hi.numeric(false)),
		LoKind: iv.HiKind,
		Hi:     boundFromFloat(-iv.Lo.numeric(true)),
		HiKind: iv.LoKind,
	}
}

// Mul returns the conservative product: the min and max over the four
// corner products, with 0×∞ corners treated as 0.
func (iv Interval) Mul(other Interval) Interval {
	a, b := iv.Lo.numeric(true), iv.Hi.numeric(false)
	c, d := other.Lo.numeric(true), other.Hi.numeric(false)
	corners := [4]float64{
		cornerMul(a, c), cornerMul(a, d),
		cornerMul(b, c), cornerMul(b, d),
	}
	lo, hi := corners[0], corners[0]
	for _, v := range corners[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	kind := joinKind(joinKind(iv.LoKind, iv.HiKind), joinKind(other.LoKind, other.HiKind))
	return Interval{
		Lo:     boundFromFloat(lo),
		LoKind: kind,
		Hi:     boundFromFloat(hi),
		HiKind: kind,
	}
}

func cornerMul(x, y float64) float64 {
	if (x == 0 && math.IsInf(y, 0)) || (y == 0 && math.IsInf(x, 0)) {
		return 0
	}
	return x * y
}

// String renders the interval with bracket kinds, e.g. [0..1) .
func (iv Interval) String() string {
	lb, rb := "[", "]"
	if iv.LoKind == Exclusive {
		lb = "("
	}
	if iv.HiKind == Exclusive {
		rb = ")"
	}
	return lb + iv.Lo.String() + ".." + iv.Hi.String() + rb
}

// IntervalSet is a union of intervals. The empty set is the undefined
// range ⊥, produced for example by bound propagation through a
// division whose divisor may be zero.
type IntervalSet struct {
	Intervals []Interval
}

// SingleInterval wraps one interval in a set.
func SingleInterval(iv Interval) IntervalSet {
	return IntervalSet{Intervals: []Interval{iv}}
}

// Undefined returns the empty set.
func Undefined() IntervalSet { return IntervalSet{} }

// IsUndefined reports whether the set is empty.
func (s IntervalSet) IsUndefined() bool { return len(s.Intervals) == 0 }

// Union returns the set extended with one more interval. Overlapping
// members are kept as-is; normalization is a consumer concern.
func (s IntervalSet) Union(iv Interval) IntervalSet {
	out := make([]Interval, 0, len(s.Intervals)+1)
	out = append(out, s.Intervals...)
	out = append(out, iv)
	return IntervalSet{Intervals: out}
}

// String renders the set, ⊥ when undefined.
func (s IntervalSet) String() string {
	if s.IsUndefined() {
		return "⊥"
	}
	parts := make([]string, len(s.Intervals))
	for i, iv := range s.Intervals {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " ∪ ")
}
