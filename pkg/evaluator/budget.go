package evaluator

import (
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
)

// Budget bounds the one resource axis spec.md §5 names: recursion depth.
// It is the reference evaluator's Budget/BudgetTracker pair, repurposed
// from tool-call/byte/time limits (an agent-loop concern with no
// counterpart here) to call-depth, checked on every Eval and every
// closure application.
type Budget struct {
	MaxDepth int64
}

// DefaultBudget returns a depth limit generous enough that factorial of
// 20 and list operations over lists of a few thousand elements succeed at
// typical default goroutine stack sizes, per spec.md §5.
func DefaultBudget() *Budget {
	return &Budget{MaxDepth: 100_000}
}

// tracker is the live, per-evaluation depth counter threaded through a
// single Eval call tree. It is not exported: callers configure a Budget,
// not a tracker.
type tracker struct {
	budget *Budget
	depth  int64
}

func newTracker(b *Budget) *tracker {
	if b == nil {
		b = DefaultBudget()
	}
	return &tracker{budget: b}
}

func (t *tracker) enter() error {
	t.depth++
	if t.budget.MaxDepth > 0 && t.depth > t.budget.MaxDepth {
		return diagnostics.New(diagnostics.Depth,
			fmt.Sprintf("recursion depth exceeded %d", t.budget.MaxDepth), nil)
	}
	return nil
}

func (t *tracker) leave() {
	t.depth--
}
