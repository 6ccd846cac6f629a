package evaluator_test

import (
	"context"
	"testing"

	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/evaluator"
	"github.com/tcore-lang/tcore/pkg/forms"
	"github.com/tcore-lang/tcore/pkg/term"
)

func TestDefaultBudgetAllowsDeepNonTailRecursion(t *testing.T) {
	// Counting down from a few thousand via If/Sub recursion should comfortably
	// fit under the default 100,000-deep budget.
	count, n := term.Var(0), term.Var(1)
	body := term.If{
		Cond: term.SExp{Operator: term.Op{Code: term.Eq}, Operands: []term.Term{n, term.IntLit(0)}},
		Then: term.IntLit(0),
		Else: term.SExp{Operator: count, Operands: []term.Term{
			term.SExp{Operator: term.Op{Code: term.Sub}, Operands: []term.Term{n, term.IntLit(1)}},
		}},
	}
	bindings, err := env.Make([]term.Var{count}, []term.Term{term.Closure{Params: []term.Var{n}, Body: body, Env: env.Empty()}})
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	program := forms.Let(bindings, term.SExp{Operator: count, Operands: []term.Term{term.IntLit(2000)}})
	if _, err := evaluator.Eval(context.Background(), program, env.Empty()); err != nil {
		t.Fatalf("deep recursion under the default budget failed: %v", err)
	}
}

func TestDefaultBudgetIsPositive(t *testing.T) {
	if got := evaluator.DefaultBudget().MaxDepth; got <= 0 {
		t.Errorf("DefaultBudget().MaxDepth = %d, want a positive default", got)
	}
}
