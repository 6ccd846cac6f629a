// Package formatter pretty-prints a term.Term as an s-expression, the
// optional "pretty-printer" collaborator spec.md §6 allows. It has no
// bearing on evaluation: it is a pure function from Term to string.
//
// Grounded on the reference evaluator's indent-constant + recursive
// formatExpr shape, rewritten entirely: the reference formatter re-renders
// A0 *source syntax* (statements, headers, operator precedence); this one
// renders a term *value*.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tcore-lang/tcore/pkg/term"
)

var opSpellings = map[term.OpCode]string{
	term.Add: "+", term.Sub: "-", term.Mul: "*",
	term.Eq: "=", term.Neq: "/=", term.Leq: "<=", term.Neg: "neg",
	term.Or: "or", term.And: "and", term.Not: "not",
	term.ConsOp: "cons", term.Car: "car", term.Cdr: "cdr", term.IsNull: "null?",
}

// Format renders t as an s-expression. List-shaped Cons chains (ending in
// EmptyList) render as (a b c); other Cons values render as dotted pairs
// (a . b), the conventional Lisp notation for an improper pair.
func Format(t term.Term) string {
	var b strings.Builder
	write(&b, t)
	return b.String()
}

func write(b *strings.Builder, t term.Term) {
	switch n := t.(type) {
	case term.IntLit:
		b.WriteString(strconv.FormatInt(int64(n), 10))
	case term.BoolLit:
		if n {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case term.EmptyList:
		b.WriteString("()")
	case term.Var:
		fmt.Fprintf(b, "var%d", int(n))
	case term.Op:
		if s, ok := opSpellings[n.Code]; ok {
			b.WriteString(s)
		} else {
			b.WriteString(n.Code.String())
		}
	case term.Cons:
		writeCons(b, n)
	case term.Lambda:
		b.WriteString("(lambda (")
		writeParams(b, n.Params)
		b.WriteString(") ")
		write(b, n.Body)
		b.WriteByte(')')
	case term.Closure:
		b.WriteString("(closure (")
		writeParams(b, n.Params)
		b.WriteString(") ")
		write(b, n.Body)
		b.WriteByte(')')
	case term.If:
		b.WriteString("(if ")
		write(b, n.Cond)
		b.WriteByte(' ')
		write(b, n.Then)
		b.WriteByte(' ')
		write(b, n.Else)
		b.WriteByte(')')
	case term.SExp:
		b.WriteByte('(')
		write(b, n.Operator)
		for _, operand := range n.Operands {
			b.WriteByte(' ')
			write(b, operand)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "#<unknown %T>", t)
	}
}

func writeParams(b *strings.Builder, params []term.Var) {
	for i, p := range params {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "var%d", int(p))
	}
}

// writeCons renders a Cons as a proper list when it terminates in
// EmptyList, and as a dotted pair otherwise.
func writeCons(b *strings.Builder, c term.Cons) {
	b.WriteByte('(')
	write(b, c.Car)
	rest := c.Cdr
	for {
		switch r := rest.(type) {
		case term.Cons:
			b.WriteByte(' ')
			write(b, r.Car)
			rest = r.Cdr
		case term.EmptyList:
			b.WriteByte(')')
			return
		default:
			b.WriteString(" . ")
			write(b, rest)
			b.WriteByte(')')
			return
		}
	}
}
