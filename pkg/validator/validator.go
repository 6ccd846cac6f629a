// Package validator performs a static pass over a term.Term before
// evaluation: structural well-formedness (the required sub-terms
// spec.md §6 names) and a conservative free-variable check, so a caller
// can reject a program without running it.
//
// Grounded on the reference evaluator's scope{bindings, parent} walker,
// repurposed from A0's capability/tool/budget semantic checks (which have
// no counterpart in a pure evaluator with no side-effecting primitives) to
// pure scope tracking over Lambda parameters.
package validator

import (
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/term"
)

type scope struct {
	bound  map[term.Var]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{bound: make(map[term.Var]bool), parent: parent}
}

func (s *scope) has(v term.Var) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.bound[v] {
			return true
		}
	}
	return false
}

// Validate walks t and reports diagnostics for:
//   - nil required sub-terms (If.Cond/Then/Else, SExp.Operator,
//     Lambda.Body, Cons.Car/Cdr) — the structural shape spec.md §6
//     obligates a well-formed term to have.
//   - duplicate parameters within a single Lambda.
//   - a Var that is provably free: not bound by any enclosing Lambda in
//     t and not present in knownFree (the names a caller's starting
//     environment already supplies). A Closure's captured Env names are
//     admitted into scope, but the bodies of the Closures bound inside that
//     Env are not walked, so absence of a diagnostic is not a runtime
//     guarantee, only a best-effort check.
func Validate(t term.Term, knownFree ...term.Var) []*diagnostics.Diagnostic {
	root := newScope(nil)
	for _, v := range knownFree {
		root.bound[v] = true
	}
	v := &visitor{}
	v.walk(t, root)
	return v.diags
}

type visitor struct {
	diags []*diagnostics.Diagnostic
}

func (v *visitor) report(code, msg string, offending term.Term) {
	v.diags = append(v.diags, diagnostics.New(code, msg, offending))
}

func (v *visitor) walk(t term.Term, sc *scope) {
	if t == nil {
		v.report(diagnostics.TypeError, "nil sub-term where a term was required", nil)
		return
	}
	switch n := t.(type) {
	case term.IntLit, term.BoolLit, term.EmptyList, term.Op:
		// literals and operators are always well-formed.

	case term.Var:
		if !sc.has(n) {
			v.report(diagnostics.Unbound, fmt.Sprintf("variable %v is not bound in any enclosing scope", n), n)
		}

	case term.Cons:
		v.walk(n.Car, sc)
		v.walk(n.Cdr, sc)

	case term.If:
		v.walk(n.Cond, sc)
		v.walk(n.Then, sc)
		v.walk(n.Else, sc)

	case term.Lambda:
		v.walkLambda(n.Params, n.Body, sc)

	case term.Closure:
		v.walkClosure(n, sc)

	case term.SExp:
		if n.Operator == nil {
			v.report(diagnostics.TypeError, "SExp is missing its operator", n)
		} else {
			v.walk(n.Operator, sc)
		}
		for _, operand := range n.Operands {
			v.walk(operand, sc)
		}

	default:
		v.report(diagnostics.TypeError, fmt.Sprintf("unrecognized term variant %T", t), t)
	}
}

func (v *visitor) walkLambda(params []term.Var, body term.Term, sc *scope) {
	inner := newScope(sc)
	v.bindParams(inner, params)
	v.walk(body, inner)
}

// walkClosure is walkLambda's counterpart for an already-captured Closure:
// it additionally admits every name bound in the Closure's own captured
// Env into scope before walking Body, since those names (e.g. the
// recursive-group bindings forms.Let/letrec build) are visible to Body
// through the closure-promotion rule (spec.md §4.2/§4.4) without
// appearing anywhere in the surrounding term tree.
func (v *visitor) walkClosure(c term.Closure, sc *scope) {
	inner := newScope(sc)
	captured, _ := c.Env.(*env.Env)
	for _, bv := range env.BoundVars(captured) {
		inner.bound[bv] = true
	}
	v.bindParams(inner, c.Params)
	v.walk(c.Body, inner)
}

func (v *visitor) bindParams(sc *scope, params []term.Var) {
	seen := make(map[term.Var]bool, len(params))
	for _, p := range params {
		if seen[p] {
			v.report(diagnostics.ArityMismatch, fmt.Sprintf("duplicate parameter %v", p), nil)
			continue
		}
		seen[p] = true
		sc.bound[p] = true
	}
}
