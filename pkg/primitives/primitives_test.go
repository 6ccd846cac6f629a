package primitives_test

import (
	"testing"

	"github.com/tcore-lang/tcore/pkg/primitives"
	"github.com/tcore-lang/tcore/pkg/term"
)

func apply(t *testing.T, code term.OpCode, args ...term.Term) term.Term {
	t.Helper()
	v, err := primitives.Apply(code, args)
	if err != nil {
		t.Fatalf("Apply(%v, %v): %v", code, args, err)
	}
	return v
}

func TestVariadicIdentities(t *testing.T) {
	if got := apply(t, term.Add); got != term.IntLit(0) {
		t.Errorf("Add() = %v, want Int(0)", got)
	}
	if got := apply(t, term.Mul); got != term.IntLit(1) {
		t.Errorf("Mul() = %v, want Int(1)", got)
	}
	if got := apply(t, term.And); got != term.BoolLit(true) {
		t.Errorf("And() = %v, want true", got)
	}
	if got := apply(t, term.Or); got != term.BoolLit(false) {
		t.Errorf("Or() = %v, want false", got)
	}
}

func TestArithmetic(t *testing.T) {
	if got := apply(t, term.Add, term.IntLit(2), term.IntLit(3), term.IntLit(4)); got != term.IntLit(9) {
		t.Errorf("Add(2,3,4) = %v, want 9", got)
	}
	if got := apply(t, term.Mul, term.IntLit(2), term.IntLit(3), term.IntLit(4)); got != term.IntLit(24) {
		t.Errorf("Mul(2,3,4) = %v, want 24", got)
	}
	if got := apply(t, term.Sub, term.IntLit(10), term.IntLit(3), term.IntLit(2)); got != term.IntLit(5) {
		t.Errorf("Sub(10,3,2) = %v, want 5", got)
	}
	if got := apply(t, term.Sub, term.IntLit(5)); got != term.IntLit(-5) {
		t.Errorf("Sub(5) = %v, want -5", got)
	}
	if got := apply(t, term.Neg, term.IntLit(7)); got != term.IntLit(-7) {
		t.Errorf("Neg(7) = %v, want -7", got)
	}
}

func TestArityAndTypeErrors(t *testing.T) {
	if _, err := primitives.Apply(term.Sub, nil); err == nil {
		t.Error("Sub() with no args should fail")
	}
	if _, err := primitives.Apply(term.Add, []term.Term{term.BoolLit(true)}); err == nil {
		t.Error("Add(true) should be a type error")
	}
	if _, err := primitives.Apply(term.Not, []term.Term{term.BoolLit(true), term.BoolLit(false)}); err == nil {
		t.Error("Not/2 should be an arity error")
	}
	if _, err := primitives.Apply(term.Car, []term.Term{term.IntLit(1)}); err == nil {
		t.Error("Car(Int) should be a type error")
	}
}

func TestListOperators(t *testing.T) {
	pair := apply(t, term.ConsOp, term.IntLit(1), term.EmptyList{})
	if got := apply(t, term.Car, pair); got != term.IntLit(1) {
		t.Errorf("Car(Cons(1, ())) = %v, want 1", got)
	}
	if got := apply(t, term.Cdr, pair); got != term.Term(term.EmptyList{}) {
		t.Errorf("Cdr(Cons(1, ())) = %v, want ()", got)
	}
	if got := apply(t, term.IsNull, term.EmptyList{}); got != term.BoolLit(true) {
		t.Errorf("IsNull(()) = %v, want true", got)
	}
	if got := apply(t, term.IsNull, pair); got != term.BoolLit(false) {
		t.Errorf("IsNull(pair) = %v, want false", got)
	}
}

func TestEqNeqMixedTypes(t *testing.T) {
	if got := apply(t, term.Eq, term.IntLit(1), term.EmptyList{}); got != term.BoolLit(false) {
		t.Errorf("Eq(1, ()) = %v, want false", got)
	}
	if got := apply(t, term.Neq, term.IntLit(1), term.EmptyList{}); got != term.BoolLit(true) {
		t.Errorf("Neq(1, ()) = %v, want true", got)
	}
	if got := apply(t, term.Eq, term.IntLit(5), term.IntLit(5), term.IntLit(5)); got != term.BoolLit(true) {
		t.Errorf("Eq(5,5,5) = %v, want true", got)
	}
	if got := apply(t, term.Eq, term.IntLit(5), term.IntLit(5), term.IntLit(6)); got != term.BoolLit(false) {
		t.Errorf("Eq(5,5,6) = %v, want false", got)
	}
}

func TestLeq(t *testing.T) {
	if got := apply(t, term.Leq, term.IntLit(3), term.IntLit(3)); got != term.BoolLit(true) {
		t.Errorf("Leq(3,3) = %v, want true", got)
	}
	if got := apply(t, term.Leq, term.IntLit(4), term.IntLit(3)); got != term.BoolLit(false) {
		t.Errorf("Leq(4,3) = %v, want false", got)
	}
}

func TestUnknownOpCode(t *testing.T) {
	if _, err := primitives.Apply(term.OpCode(999), nil); err == nil {
		t.Error("unregistered op code should fail")
	}
}
