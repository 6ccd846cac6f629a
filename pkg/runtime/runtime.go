// Package runtime wires the term reader, static validator, and evaluator
// behind a small configurable Runtime, following the reference
// evaluator's Runtime + functional-options pattern.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/evaluator"
	"github.com/tcore-lang/tcore/pkg/formatter"
	"github.com/tcore-lang/tcore/pkg/sexpr"
	"github.com/tcore-lang/tcore/pkg/term"
	"github.com/tcore-lang/tcore/pkg/validator"
)

// Runtime configures and runs the optional pkg/sexpr + pkg/evaluator
// pipeline. The zero value is not usable; construct with New.
type Runtime struct {
	env    *env.Env
	budget *evaluator.Budget
	in     *sexpr.Interner
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithEnv sets the base environment programs are evaluated in. Defaults
// to the empty environment.
func WithEnv(e *env.Env) Option {
	return func(rt *Runtime) { rt.env = e }
}

// WithMaxDepth overrides the default recursion-depth budget.
func WithMaxDepth(n int64) Option {
	return func(rt *Runtime) { rt.budget = &evaluator.Budget{MaxDepth: n} }
}

// WithInterner supplies a pre-populated Interner, so identifier tags stay
// stable across separate Run/Check/Format calls against the same base
// environment.
func WithInterner(in *sexpr.Interner) Option {
	return func(rt *Runtime) { rt.in = in }
}

// New creates a Runtime with the empty environment, the default
// recursion-depth budget, and a fresh Interner, then applies opts.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		env:    env.Empty(),
		budget: evaluator.DefaultBudget(),
		in:     sexpr.NewInterner(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// DiagnosticError wraps one or more diagnostics as an error, following the
// reference runtime's DiagnosticError.
type DiagnosticError struct {
	Diagnostics []*diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Check parses and statically validates source without evaluating it.
func (rt *Runtime) Check(source string) []*diagnostics.Diagnostic {
	t, diags := sexpr.Parse(source, rt.in)
	if len(diags) > 0 {
		return diags
	}
	return validator.Validate(t, env.BoundVars(rt.env)...)
}

// Run parses, validates, and evaluates source, returning its value.
func (rt *Runtime) Run(ctx context.Context, source string) (term.Term, error) {
	t, diags := sexpr.Parse(source, rt.in)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diagnostics: diags}
	}
	if vDiags := validator.Validate(t, env.BoundVars(rt.env)...); len(vDiags) > 0 {
		return nil, &DiagnosticError{Diagnostics: vDiags}
	}
	return evaluator.EvalWithBudget(ctx, t, rt.env, rt.budget)
}

// Format parses source and pretty-prints the parsed term back out, the
// reference runtime's Format method adapted to a syntax with no
// declarations to reformat: it round-trips through the same formatter
// Eval's result is printed with.
func (rt *Runtime) Format(source string) (string, error) {
	t, diags := sexpr.Parse(source, rt.in)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.Format(t), nil
}
