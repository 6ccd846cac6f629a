// Package evaluator implements Eval and Apply: the reduction rules that
// take a term.Term to a value in a lexically scoped env.Env.
//
// Eval is a pure function of (expr, env); two invocations with equal
// inputs produce equal outputs, and values never contain un-reduced Var,
// If, or SExp nodes, per spec.md §3/§8.
package evaluator

import (
	"context"
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/primitives"
	"github.com/tcore-lang/tcore/pkg/term"
)

// Eval reduces expr to a value in env, using the default recursion-depth
// budget. It is the spec's eval(expr, env) -> value.
func Eval(ctx context.Context, expr term.Term, e *env.Env) (term.Term, error) {
	return EvalWithBudget(ctx, expr, e, DefaultBudget())
}

// EvalWithBudget is Eval with an explicit recursion-depth budget, for
// callers (e.g. pkg/runtime) that want a non-default limit.
func EvalWithBudget(ctx context.Context, expr term.Term, e *env.Env, b *Budget) (term.Term, error) {
	return eval(ctx, expr, e, newTracker(b))
}

func eval(ctx context.Context, expr term.Term, e *env.Env, tr *tracker) (term.Term, error) {
	if err := tr.enter(); err != nil {
		return nil, err
	}
	defer tr.leave()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch t := expr.(type) {
	case term.IntLit, term.BoolLit, term.EmptyList, term.Op:
		return t, nil

	case term.Var:
		v, ok := env.Lookup(e, t)
		if !ok {
			return nil, diagnostics.New(diagnostics.Unbound,
				fmt.Sprintf("unbound variable %v", t), expr)
		}
		if c, isClosure := v.(term.Closure); isClosure {
			return promoteClosure(c, e), nil
		}
		return v, nil

	case term.Cons:
		car, err := eval(ctx, t.Car, e, tr)
		if err != nil {
			return nil, err
		}
		cdr, err := eval(ctx, t.Cdr, e, tr)
		if err != nil {
			return nil, err
		}
		return term.Cons{Car: car, Cdr: cdr}, nil

	case term.If:
		cond, err := eval(ctx, t.Cond, e, tr)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return eval(ctx, t.Then, e, tr)
		}
		return eval(ctx, t.Else, e, tr)

	case term.Lambda:
		return term.Closure{Params: t.Params, Body: t.Body, Env: e}, nil

	case term.Closure:
		return promoteClosure(t, e), nil

	case term.SExp:
		opVal, err := eval(ctx, t.Operator, e, tr)
		if err != nil {
			return nil, err
		}
		args := make([]term.Term, len(t.Operands))
		for i, operand := range t.Operands {
			v, err := eval(ctx, operand, e, tr)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return apply(ctx, opVal, args, tr)

	default:
		return nil, diagnostics.New(diagnostics.TypeError,
			fmt.Sprintf("not a term: %T", expr), expr)
	}
}

// promoteClosure extends a closure's captured environment with the
// current enclosing environment, so a closure retrieved from the
// environment sees the lexical context at the point of lookup. This is
// the mechanism by which mutual recursion works without an explicit
// letrec/set!, per spec.md §4.2/§4.4/§9. captured is the outer
// environment and current the inner one, so a name bound in both
// resolves through current — the call-time context shadows the
// definition-time one, matching spec.md §4.4's extend(capturedEnv, env).
func promoteClosure(c term.Closure, current *env.Env) term.Closure {
	captured, _ := c.Env.(*env.Env)
	return term.Closure{Params: c.Params, Body: c.Body, Env: env.Extend(captured, current)}
}

// truthy implements the truthiness rule of spec.md §4.4: False and Int(0)
// are falsy, every other value is truthy.
func truthy(v term.Term) bool {
	switch val := v.(type) {
	case term.BoolLit:
		return bool(val)
	case term.IntLit:
		return val != 0
	default:
		return true
	}
}

// Apply is the spec's Apply(op, arg1, ..., argn) relation, exported for
// callers (e.g. derived forms, tests) that need to apply an
// already-evaluated operator without going through a full SExp. It runs
// under a fresh default-budget tracker, because applying a Closure
// recurses back into eval over its body.
func Apply(ctx context.Context, op term.Term, args []term.Term) (term.Term, error) {
	return apply(ctx, op, args, newTracker(DefaultBudget()))
}

func apply(ctx context.Context, op term.Term, args []term.Term, tr *tracker) (term.Term, error) {
	switch o := op.(type) {
	case term.Op:
		return primitives.Apply(o.Code, args)

	case term.Closure:
		if len(o.Params) != len(args) {
			return nil, diagnostics.New(diagnostics.ArityMismatch,
				fmt.Sprintf("closure expects %d argument(s), got %d", len(o.Params), len(args)), op)
		}
		captured, _ := o.Env.(*env.Env)
		frame, err := env.Make(o.Params, args)
		if err != nil {
			return nil, err
		}
		callEnv := env.Extend(captured, frame)
		return eval(ctx, o.Body, callEnv, tr)

	default:
		return nil, diagnostics.New(diagnostics.TypeError,
			fmt.Sprintf("value of kind %s is not applicable", op.Kind()), op)
	}
}
