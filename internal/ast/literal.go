// Package ast defines the tree representation for the Goth language:
// literals, operators, tensor shapes, effect rows, numeric intervals,
// types, expressions, patterns and declarations.
//
// Variables are bound positionally (De Bruijn indices), so two trees
// that are structurally equal are semantically equal; no renaming pass
// exists anywhere in the pipeline. All values in this package are
// immutable once built: transformations construct new parents and share
// unchanged children, which makes fully-built trees safe to read from
// any number of goroutines.
package ast

import (
	"fmt"
	"strconv"
)

// LitKind discriminates the literal variants.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitUnit
)

// String returns the name of the literal kind.
func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitBool:
		return "Bool"
	case LitUnit:
		return "Unit"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Literal is a literal constant. It is a plain comparable value; the
// payload field that matches Kind is significant and the others are
// zero.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Bool  bool
}

// IntLit builds an integer literal.
func IntLit(v int64) Literal { return Literal{Kind: LitInt, Int: v} }

// FloatLit builds a floating-point literal.
func FloatLit(v float64) Literal { return Literal{Kind: LitFloat, Float: v} }

// BoolLit builds a boolean literal.
func BoolLit(v bool) Literal { return Literal{Kind: LitBool, Bool: v} }

// UnitLit builds the unit literal.
func UnitLit() Literal { return Literal{Kind: LitUnit} }

// String renders the literal the way the printer does.
func (l Literal) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LitUnit:
		return "()"
	default:
		return fmt.Sprintf("Literal(%d)", int(l.Kind))
	}
}
