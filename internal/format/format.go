// Package format renders modules, declarations, expressions and types
// to Goth text. Rendering is total and deterministic: the same tree
// always produces the same text, and the text preserves operator
// identity, shape symbols and binder structure exactly, so a parser
// reading the output reconstructs a structurally identical tree.
package format

import (
	"strings"

	"github.com/goth-lang/goth/internal/ast"
)

// Options controls rendering style.
type Options struct {
	// Unicode selects the glyph spellings; when false the ASCII
	// fallback column of the vocabulary table is used throughout.
	Unicode bool
	// Indent is the indentation unit for nested declaration bodies.
	Indent string
}

// DefaultOptions returns the glyph-mode defaults.
func DefaultOptions() Options {
	return Options{Unicode: true, Indent: "  "}
}

// ASCIIOptions returns the ASCII fallback mode.
func ASCIIOptions() Options {
	return Options{Unicode: false, Indent: "  "}
}

// Module renders a whole module.
func Module(m *ast.Module, opts Options) string {
	p := &printer{opts: opts}
	p.module(m)
	return p.b.String()
}

// Decl renders a single declaration, trailing newline included.
func Decl(d ast.Decl, opts Options) string {
	p := &printer{opts: opts}
	p.decl(d)
	return p.b.String()
}

// Expr renders an expression.
func Expr(e ast.Expr, opts Options) string {
	p := &printer{opts: opts}
	p.expr(e, precLowest)
	return p.b.String()
}

// Type renders a type.
func Type(t ast.Type, opts Options) string {
	p := &printer{opts: opts}
	p.typ(t, false)
	return p.b.String()
}

// Shape renders a tensor shape.
func Shape(s ast.Shape, opts Options) string {
	p := &printer{opts: opts}
	p.shape(s)
	return p.b.String()
}

// Pattern renders a pattern.
func Pattern(pat ast.Pattern, opts Options) string {
	p := &printer{opts: opts}
	p.pattern(pat)
	return p.b.String()
}

// Effects renders an effect row in the selected mode.
func Effects(r ast.Effects, opts Options) string {
	p := &printer{opts: opts}
	p.effects(r)
	return p.b.String()
}

// Interval renders an interval in the selected mode.
func Interval(iv ast.Interval, opts Options) string {
	p := &printer{opts: opts}
	p.interval(iv)
	return p.b.String()
}

type printer struct {
	opts Options
	b    strings.Builder
}

func (p *printer) write(s string) { p.b.WriteString(s) }

// op writes the spelling of an operator in the selected mode.
func (p *printer) op(op ast.Op) {
	if p.opts.Unicode {
		p.write(op.Glyph())
	} else {
		p.write(op.ASCII())
	}
}

// pick writes the first argument in glyph mode, the second otherwise.
func (p *printer) pick(glyph, fallback string) {
	if p.opts.Unicode {
		p.write(glyph)
	} else {
		p.write(fallback)
	}
}

var subscriptDigits = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// index renders a De Bruijn level: subscript digits in glyph mode,
// #n in ASCII mode. The numeral shown is the level at this position,
// so an index printed under one more binder shows the next numeral up.
func (p *printer) index(level int) {
	if !p.opts.Unicode {
		p.write("#")
		p.writeInt(level)
		return
	}
	if level == 0 {
		p.b.WriteRune(subscriptDigits[0])
		return
	}
	var digits []rune
	for n := level; n > 0; n /= 10 {
		digits = append(digits, subscriptDigits[n%10])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		p.b.WriteRune(digits[i])
	}
}

func (p *printer) writeInt(n int) {
	if n < 0 {
		p.write("-")
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	p.b.Write(buf[i:])
}
