// Package forms builds derived syntactic forms — Let, Cond, and List — by
// expansion into the primitive term algebra of pkg/term. None of them
// introduce a new value or a new evaluation rule; the evaluator only ever
// sees the Closure/SExp/If/Cons/EmptyList nodes they expand to, per
// spec.md §4.5.
package forms

import (
	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/term"
)

// Let expands to SExp(Closure(body, bindings)): a nullary closure
// pre-populated with bindings, applied immediately. Evaluating the result
// extends bindings with the environment in effect at evaluation time (the
// closure-promotion rule of spec.md §4.2), which is how top-level
// definition groups — including self- and mutually-recursive ones — are
// introduced.
func Let(bindings *env.Env, body term.Term) term.Term {
	return term.SExp{
		Operator: term.Closure{Params: nil, Body: body, Env: bindings},
		Operands: nil,
	}
}

// Clause is one guard/result pair of a Cond.
type Clause struct {
	Guard  term.Term
	Result term.Term
}

// Cond expands right-to-left into nested If expressions:
// If(c1, r1, If(c2, r2, ... If(cn, rn, dflt) ...)). When every guard is
// falsy, dflt is the result. The expansion happens here, at
// term-construction time; the evaluator only ever sees If nodes, per
// spec.md §4.5. A mandatory default eliminates NoMatch at expansion time,
// per the parenthetical in spec.md §7 — see DESIGN.md's Open Question
// entry on this choice.
func Cond(dflt term.Term, clauses ...Clause) term.Term {
	result := dflt
	for i := len(clauses) - 1; i >= 0; i-- {
		result = term.If{Cond: clauses[i].Guard, Then: clauses[i].Result, Else: result}
	}
	return result
}

// List builds a proper list term from items, terminated by EmptyList:
// List(a, b, c) = Cons(a, Cons(b, Cons(c, EmptyList))). spec.md is silent
// on list literals; this is a term-builder of the same kind as Let/Cond,
// supplementing the spec per original_source/'s own List convenience
// builder (see SPEC_FULL.md §4.5 ADDED).
func List(items ...term.Term) term.Term {
	result := term.Term(term.EmptyList{})
	for i := len(items) - 1; i >= 0; i-- {
		result = term.Cons{Car: items[i], Cdr: result}
	}
	return result
}
