// Package env implements the environment algebra: ordered bindings from
// variables to terms, searched first-match, extended by linking frames
// rather than mutating them.
package env

import (
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/term"
)

type binding struct {
	v term.Var
	t term.Term
}

// Env is an immutable, ordered sequence of bindings, represented as a
// linked chain of frames. A nil *Env is the distinguished empty
// environment. Every "update" (Extend, Make) produces a new *Env; no frame
// is ever mutated after construction, so the same Env may be shared by any
// number of closures.
//
// Lookup walks the current frame's bindings front-to-back, then moves to
// the parent frame, and so on: the whole chain behaves as one ordered,
// first-match sequence, the same structure the reference evaluator's
// parent-chained Env uses for lexical scoping, generalized here to an
// ordered list of bindings per frame instead of a map (the evaluator's
// shadowing contract requires scan order, not last-write-wins).
type Env struct {
	bindings []binding
	parent   *Env
}

// Empty returns the distinguished empty environment.
func Empty() *Env { return nil }

// Lookup returns the value bound to v, scanning bindings in the order
// supplied at construction and returning the first match. ok is false if
// no binding exists anywhere in the chain.
func Lookup(e *Env, v term.Var) (t term.Term, ok bool) {
	for f := e; f != nil; f = f.parent {
		for _, b := range f.bindings {
			if b.v == v {
				return b.t, true
			}
		}
	}
	return nil, false
}

// Extend produces a new environment whose bindings-in-scope are those of
// inner preceding those of outer in lookup order: inner shadows outer on
// any colliding variable. Both outer and inner are left untouched; Extend
// rebuilds inner's frame chain with its tail re-pointed at outer.
func Extend(outer, inner *Env) *Env {
	if inner == nil {
		return outer
	}
	return &Env{bindings: inner.bindings, parent: Extend(outer, inner.parent)}
}

// BoundVars returns every Var bound anywhere in e's frame chain, each
// listed once. Order is unspecified; callers that only need to test
// membership (e.g. pkg/validator admitting a captured environment's
// names into scope) don't care about it.
func BoundVars(e *Env) []term.Var {
	seen := make(map[term.Var]bool)
	var out []term.Var
	for f := e; f != nil; f = f.parent {
		for _, b := range f.bindings {
			if !seen[b.v] {
				seen[b.v] = true
				out = append(out, b.v)
			}
		}
	}
	return out
}

// Make builds a single-frame environment from parallel parameter and
// argument sequences, in order. It fails with ArityMismatch if the
// sequences differ in length.
func Make(params []term.Var, args []term.Term) (*Env, error) {
	if len(params) != len(args) {
		return nil, diagnostics.New(diagnostics.ArityMismatch,
			fmt.Sprintf("want %d argument(s), got %d", len(params), len(args)), nil)
	}
	if len(params) == 0 {
		return nil, nil
	}
	bs := make([]binding, len(params))
	for i, p := range params {
		bs[i] = binding{v: p, t: args[i]}
	}
	return &Env{bindings: bs}, nil
}
