package sexpr_test

import (
	"context"
	"testing"

	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/evaluator"
	"github.com/tcore-lang/tcore/pkg/sexpr"
	"github.com/tcore-lang/tcore/pkg/term"
)

func parseOK(t *testing.T, src string) term.Term {
	t.Helper()
	tm, diags := sexpr.Parse(src, sexpr.NewInterner())
	if len(diags) != 0 {
		t.Fatalf("Parse(%q): %v", src, diags)
	}
	return tm
}

func evalSrc(t *testing.T, src string) term.Term {
	t.Helper()
	tm := parseOK(t, src)
	v, err := evaluator.Eval(context.Background(), tm, env.Empty())
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func TestParseLiteralsAndIdentifiers(t *testing.T) {
	if got := parseOK(t, "42"); got != term.Term(term.IntLit(42)) {
		t.Errorf("parse(42) = %v", got)
	}
	if got := parseOK(t, "#t"); got != term.Term(term.BoolLit(true)) {
		t.Errorf("parse(#t) = %v", got)
	}
	if got := parseOK(t, "nil"); got != term.Term(term.EmptyList{}) {
		t.Errorf("parse(nil) = %v", got)
	}
	if got := parseOK(t, "+"); got != term.Term(term.Op{Code: term.Add}) {
		t.Errorf("parse(+) = %v", got)
	}
}

func TestParseVariadicApplication(t *testing.T) {
	if got := evalSrc(t, "(+ 1 2 3 4)"); got != term.IntLit(10) {
		t.Errorf("(+ 1 2 3 4) = %v, want 10", got)
	}
	if got := evalSrc(t, "(*)"); got != term.IntLit(1) {
		t.Errorf("(*) = %v, want 1", got)
	}
}

func TestParseIf(t *testing.T) {
	if got := evalSrc(t, "(if (<= 1 2) 10 20)"); got != term.IntLit(10) {
		t.Errorf("if true branch = %v, want 10", got)
	}
	if got := evalSrc(t, "(if (<= 2 1) 10 20)"); got != term.IntLit(20) {
		t.Errorf("if false branch = %v, want 20", got)
	}
}

func TestParseLambdaAndApplication(t *testing.T) {
	if got := evalSrc(t, "((lambda (x y) (+ x y)) 3 4)"); got != term.IntLit(7) {
		t.Errorf("lambda application = %v, want 7", got)
	}
}

func TestParseLet(t *testing.T) {
	if got := evalSrc(t, "(let ((x 1) (y 2)) (+ x y))"); got != term.IntLit(3) {
		t.Errorf("let = %v, want 3", got)
	}
}

// letrec factorial of 6, exercised through the text front end end-to-end.
func TestParseLetrecFactorial(t *testing.T) {
	src := `(letrec ((fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))) (fact 6))`
	if got := evalSrc(t, src); got != term.IntLit(720) {
		t.Errorf("letrec factorial(6) = %v, want 720", got)
	}
}

func TestParseLetrecMutualRecursion(t *testing.T) {
	src := `(letrec (
		(odd (lambda (n) (if (= n 0) #f (even (- n 1)))))
		(even (lambda (n) (if (= n 0) #t (odd (- n 1))))))
		(odd 41))`
	if got := evalSrc(t, src); got != term.BoolLit(true) {
		t.Errorf("letrec mutual recursion odd(41) = %v, want true", got)
	}
}

func TestParseCond(t *testing.T) {
	src := `(cond -1 ((= 1 3) 100) ((= 2 3) 200) ((= 3 3) 300))`
	if got := evalSrc(t, src); got != term.IntLit(300) {
		t.Errorf("cond = %v, want 300", got)
	}
}

func TestParseSameNameInternsSameVar(t *testing.T) {
	in := sexpr.NewInterner()
	a := in.Intern("x")
	b := in.Intern("x")
	if a != b {
		t.Errorf("Intern(x) twice produced distinct Vars: %v, %v", a, b)
	}
	if in.Name(a) != "x" {
		t.Errorf("Name(x's var) = %q, want x", in.Name(a))
	}
}

func TestParseUnboundVariableProducesNoParseDiagnostic(t *testing.T) {
	// Unbound-ness is a validator/evaluator concern, not a parse error: the
	// parser only needs to know whether a token is a known operator keyword.
	tm, diags := sexpr.Parse("undefined_name", sexpr.NewInterner())
	if len(diags) != 0 {
		t.Fatalf("Parse(undefined_name): %v", diags)
	}
	if _, ok := tm.(term.Var); !ok {
		t.Errorf("parse(undefined_name) = %v, want a Var", tm)
	}
}

func TestParseTrailingInputIsAnError(t *testing.T) {
	_, diags := sexpr.Parse("1 2", sexpr.NewInterner())
	if len(diags) == 0 {
		t.Error("expected a parse diagnostic for trailing input")
	}
}

func TestParseUnclosedListIsAnError(t *testing.T) {
	_, diags := sexpr.Parse("(+ 1 2", sexpr.NewInterner())
	if len(diags) == 0 {
		t.Error("expected a parse diagnostic for an unclosed list")
	}
}
