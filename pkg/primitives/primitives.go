// Package primitives implements Apply: the typed reduction rules for the
// closed OpCode palette. Every function here assumes its arguments are
// already values — Apply performs no further evaluation.
//
// Dispatch goes through a Registry (OpCode -> func([]term.Term) (term.Term,
// error)), following the reference evaluator's stdlib Fn/Registry pattern,
// rather than one large switch: each operator's arity and type checks live
// in one small function, and the table is inspectable by tests and
// diagnostics via Registered.
package primitives

import (
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/term"
)

// Fn is a single primitive operator's reduction rule.
type Fn func(args []term.Term) (term.Term, error)

var registry = map[term.OpCode]Fn{
	term.Add:    opAdd,
	term.Sub:    opSub,
	term.Mul:    opMul,
	term.Eq:     opEq,
	term.Neq:    opNeq,
	term.Leq:    opLeq,
	term.Neg:    opNeg,
	term.Or:     opOr,
	term.And:    opAnd,
	term.Not:    opNot,
	term.ConsOp: opCons,
	term.Car:    opCar,
	term.Cdr:    opCdr,
	term.IsNull: opIsNull,
}

// Registered reports whether code is a known primitive.
func Registered(code term.OpCode) bool {
	_, ok := registry[code]
	return ok
}

// Apply reduces a fully-evaluated OpCode applied to fully-evaluated
// arguments. It is the spec's Apply(op, arg1, ..., argn) relation.
func Apply(code term.OpCode, args []term.Term) (term.Term, error) {
	fn, ok := registry[code]
	if !ok {
		return nil, diagnostics.New(diagnostics.TypeError,
			fmt.Sprintf("unknown primitive operator %v", code), nil)
	}
	return fn(args)
}

func typeErr(format string, a ...any) error {
	return diagnostics.New(diagnostics.TypeError, fmt.Sprintf(format, a...), nil)
}

func arityErr(op string, want string, got int) error {
	return diagnostics.New(diagnostics.ArityMismatch,
		fmt.Sprintf("%s: expected %s argument(s), got %d", op, want, got), nil)
}

func asInt(op string, t term.Term) (int64, error) {
	n, ok := t.(term.IntLit)
	if !ok {
		return 0, typeErr("%s: expected an integer, got %s", op, t.Kind())
	}
	return int64(n), nil
}

func asBool(op string, t term.Term) (bool, error) {
	b, ok := t.(term.BoolLit)
	if !ok {
		return false, typeErr("%s: expected a boolean, got %s", op, t.Kind())
	}
	return bool(b), nil
}

// --- Arithmetic ---

func opAdd(args []term.Term) (term.Term, error) {
	var sum int64
	for _, a := range args {
		n, err := asInt("Add", a)
		if err != nil {
			return nil, err
		}
		sum += n
	}
	return term.IntLit(sum), nil
}

func opMul(args []term.Term) (term.Term, error) {
	var product int64 = 1
	for _, a := range args {
		n, err := asInt("Mul", a)
		if err != nil {
			return nil, err
		}
		product *= n
	}
	return term.IntLit(product), nil
}

func opSub(args []term.Term) (term.Term, error) {
	switch len(args) {
	case 0:
		return nil, arityErr("Sub", "1 or more", 0)
	case 1:
		n, err := asInt("Sub", args[0])
		if err != nil {
			return nil, err
		}
		return term.IntLit(-n), nil
	default:
		first, err := asInt("Sub", args[0])
		if err != nil {
			return nil, err
		}
		var rest int64
		for _, a := range args[1:] {
			n, err := asInt("Sub", a)
			if err != nil {
				return nil, err
			}
			rest += n
		}
		return term.IntLit(first - rest), nil
	}
}

func opNeg(args []term.Term) (term.Term, error) {
	if len(args) != 1 {
		return nil, arityErr("Neg", "1", len(args))
	}
	n, err := asInt("Neg", args[0])
	if err != nil {
		return nil, err
	}
	return term.IntLit(-n), nil
}

// --- Comparisons ---

func opEq(args []term.Term) (term.Term, error) {
	if len(args) <= 1 {
		return term.BoolLit(true), nil
	}
	first := args[0]
	switch first.(type) {
	case term.IntLit, term.BoolLit:
	default:
		return term.BoolLit(false), nil
	}
	for _, a := range args[1:] {
		if !sameComparableKind(first, a) || !term.Equal(first, a) {
			return term.BoolLit(false), nil
		}
	}
	return term.BoolLit(true), nil
}

func sameComparableKind(a, b term.Term) bool {
	switch a.(type) {
	case term.IntLit:
		_, ok := b.(term.IntLit)
		return ok
	case term.BoolLit:
		_, ok := b.(term.BoolLit)
		return ok
	default:
		return false
	}
}

func opNeq(args []term.Term) (term.Term, error) {
	if len(args) != 2 {
		return term.BoolLit(true), nil
	}
	a, b := args[0], args[1]
	switch a.(type) {
	case term.IntLit, term.BoolLit:
		if sameComparableKind(a, b) {
			return term.BoolLit(!term.Equal(a, b)), nil
		}
	}
	return term.BoolLit(true), nil
}

func opLeq(args []term.Term) (term.Term, error) {
	if len(args) != 2 {
		return nil, arityErr("Leq", "2", len(args))
	}
	a, err := asInt("Leq", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInt("Leq", args[1])
	if err != nil {
		return nil, err
	}
	return term.BoolLit(a <= b), nil
}

// --- Boolean logic ---

func opOr(args []term.Term) (term.Term, error) {
	for _, a := range args {
		b, err := asBool("Or", a)
		if err != nil {
			return nil, err
		}
		if b {
			return term.BoolLit(true), nil
		}
	}
	return term.BoolLit(false), nil
}

func opAnd(args []term.Term) (term.Term, error) {
	for _, a := range args {
		b, err := asBool("And", a)
		if err != nil {
			return nil, err
		}
		if !b {
			return term.BoolLit(false), nil
		}
	}
	return term.BoolLit(true), nil
}

func opNot(args []term.Term) (term.Term, error) {
	if len(args) != 1 {
		return nil, arityErr("Not", "1", len(args))
	}
	b, err := asBool("Not", args[0])
	if err != nil {
		return nil, err
	}
	return term.BoolLit(!b), nil
}

// --- List operators ---

func opCons(args []term.Term) (term.Term, error) {
	if len(args) != 2 {
		return nil, arityErr("Cons", "2", len(args))
	}
	return term.Cons{Car: args[0], Cdr: args[1]}, nil
}

func opCar(args []term.Term) (term.Term, error) {
	if len(args) != 1 {
		return nil, arityErr("Car", "1", len(args))
	}
	c, ok := args[0].(term.Cons)
	if !ok {
		return nil, typeErr("Car: expected a pair, got %s", args[0].Kind())
	}
	return c.Car, nil
}

func opCdr(args []term.Term) (term.Term, error) {
	if len(args) != 1 {
		return nil, arityErr("Cdr", "1", len(args))
	}
	c, ok := args[0].(term.Cons)
	if !ok {
		return nil, typeErr("Cdr: expected a pair, got %s", args[0].Kind())
	}
	return c.Cdr, nil
}

func opIsNull(args []term.Term) (term.Term, error) {
	if len(args) != 1 {
		return nil, arityErr("IsNull", "1", len(args))
	}
	_, ok := args[0].(term.EmptyList)
	return term.BoolLit(ok), nil
}
