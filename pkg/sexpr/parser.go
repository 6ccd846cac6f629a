package sexpr

import (
	"fmt"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/env"
	"github.com/tcore-lang/tcore/pkg/forms"
	"github.com/tcore-lang/tcore/pkg/term"
)

var opSpellings = map[string]term.OpCode{
	"+": term.Add, "-": term.Sub, "*": term.Mul,
	"=": term.Eq, "/=": term.Neq, "<=": term.Leq, "neg": term.Neg,
	"or": term.Or, "and": term.And, "not": term.Not,
	"cons": term.ConsOp, "car": term.Car, "cdr": term.Cdr, "null?": term.IsNull,
}

var keywords = map[string]bool{
	"if": true, "lambda": true, "let": true, "letrec": true, "cond": true, "nil": true,
}

// Interner assigns a stable integer Var tag to each distinct identifier
// name. spec.md §3 says identifiers are "opaque integer tag[s]" with "no
// notion of source names at the core level"; the Interner is the front
// end's own bookkeeping, not part of the term algebra itself. Name
// recovers a Var's source name; diagnostics and pkg/formatter do not
// consult it and print a Var by its tag.
type Interner struct {
	byName map[string]term.Var
	names  []string
}

// NewInterner creates an empty name table.
func NewInterner() *Interner {
	return &Interner{byName: make(map[string]term.Var)}
}

// Intern returns the Var tag for name, assigning a fresh one on first use.
func (in *Interner) Intern(name string) term.Var {
	if v, ok := in.byName[name]; ok {
		return v
	}
	v := term.Var(len(in.names))
	in.byName[name] = v
	in.names = append(in.names, name)
	return v
}

// Name returns the source name a Var was interned from, or "" if unknown.
func (in *Interner) Name(v term.Var) string {
	if int(v) < 0 || int(v) >= len(in.names) {
		return ""
	}
	return in.names[v]
}

type parser struct {
	toks  []Token
	pos   int
	in    *Interner
	diags []*diagnostics.Diagnostic
}

// Parse reads a single term from src using in for identifier interning.
// Pass a fresh Interner, or reuse one across calls so repeated occurrences
// of the same name always map to the same Var.
func Parse(src string, in *Interner) (term.Term, []*diagnostics.Diagnostic) {
	toks, lexDiags := Tokenize(src)
	p := &parser{toks: toks, in: in, diags: lexDiags}
	t := p.parseExpr()
	if p.peek().Type != TokEOF {
		p.errorf("unexpected trailing input at position %d", p.peek().Pos)
	}
	return t, p.diags
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, a ...any) {
	p.diags = append(p.diags, diagnostics.New(diagnostics.Parse, fmt.Sprintf(format, a...), nil))
}

func (p *parser) expect(tt TokenType, what string) Token {
	t := p.peek()
	if t.Type != tt {
		p.errorf("expected %s at position %d, got %q", what, t.Pos, t.Value)
		return t
	}
	return p.advance()
}

func (p *parser) parseExpr() term.Term {
	switch p.peek().Type {
	case TokInt:
		tok := p.advance()
		n, err := parseInt(tok.Value)
		if err != nil {
			p.errorf("invalid integer literal %q at position %d", tok.Value, tok.Pos)
			return term.IntLit(0)
		}
		return term.IntLit(n)
	case TokBool:
		tok := p.advance()
		return term.BoolLit(tok.Value == "#t")
	case TokIdent:
		tok := p.advance()
		if tok.Value == "nil" {
			return term.EmptyList{}
		}
		if code, ok := opSpellings[tok.Value]; ok {
			return term.Op{Code: code}
		}
		return p.in.Intern(tok.Value)
	case TokLParen:
		return p.parseList()
	default:
		tok := p.advance()
		p.errorf("unexpected token %q at position %d", tok.Value, tok.Pos)
		return term.EmptyList{}
	}
}

func (p *parser) parseList() term.Term {
	p.expect(TokLParen, "'('")
	if p.peek().Type == TokIdent {
		switch p.peek().Value {
		case "if":
			p.advance()
			cond := p.parseExpr()
			then := p.parseExpr()
			els := p.parseExpr()
			p.expect(TokRParen, "')'")
			return term.If{Cond: cond, Then: then, Else: els}
		case "lambda":
			p.advance()
			params := p.parseParamList()
			body := p.parseExpr()
			p.expect(TokRParen, "')'")
			return term.Lambda{Params: params, Body: body}
		case "let":
			p.advance()
			return p.finishLet()
		case "letrec":
			p.advance()
			return p.finishLetrec()
		case "cond":
			p.advance()
			return p.finishCond()
		}
	}
	return p.finishApplication()
}

func (p *parser) parseParamList() []term.Var {
	p.expect(TokLParen, "'(' starting a parameter list")
	var params []term.Var
	for p.peek().Type == TokIdent {
		tok := p.advance()
		params = append(params, p.in.Intern(tok.Value))
	}
	p.expect(TokRParen, "')' closing a parameter list")
	return params
}

// finishApplication parses "(operator operand*)" with the leading '('
// already consumed.
func (p *parser) finishApplication() term.Term {
	operator := p.parseExpr()
	var operands []term.Term
	for p.peek().Type != TokRParen && p.peek().Type != TokEOF {
		operands = append(operands, p.parseExpr())
	}
	p.expect(TokRParen, "')'")
	return term.SExp{Operator: operator, Operands: operands}
}

// finishLet parses "((name expr)*) body)" with "(let" already consumed,
// desugaring a non-recursive let into an immediate lambda application:
// (let ((x e1) (y e2)) body) = ((lambda (x y) body) e1 e2).
func (p *parser) finishLet() term.Term {
	p.expect(TokLParen, "'(' starting let bindings")
	var params []term.Var
	var args []term.Term
	for p.peek().Type == TokLParen {
		p.advance()
		nameTok := p.expect(TokIdent, "a binding name")
		val := p.parseExpr()
		p.expect(TokRParen, "')' closing a binding")
		params = append(params, p.in.Intern(nameTok.Value))
		args = append(args, val)
	}
	p.expect(TokRParen, "')' closing let bindings")
	body := p.parseExpr()
	p.expect(TokRParen, "')'")
	return term.SExp{Operator: term.Lambda{Params: params, Body: body}, Operands: args}
}

// finishLetrec parses "((name (lambda ...))*) body)" with "(letrec"
// already consumed, building the definition-group environment forms.Let
// expects: each binding must be a lambda, wrapped as a Closure so Var
// lookup's closure-promotion rule (spec.md §4.2/§4.4) applies to it.
func (p *parser) finishLetrec() term.Term {
	p.expect(TokLParen, "'(' starting letrec bindings")
	var vars []term.Var
	var vals []term.Term
	for p.peek().Type == TokLParen {
		p.advance()
		nameTok := p.expect(TokIdent, "a binding name")
		val := p.parseExpr()
		p.expect(TokRParen, "')' closing a binding")
		lam, ok := val.(term.Lambda)
		if !ok {
			p.errorf("letrec binding %q must be a lambda", nameTok.Value)
			continue
		}
		vars = append(vars, p.in.Intern(nameTok.Value))
		vals = append(vals, term.Closure{Params: lam.Params, Body: lam.Body, Env: env.Empty()})
	}
	p.expect(TokRParen, "')' closing letrec bindings")
	body := p.parseExpr()
	p.expect(TokRParen, "')'")
	bindings, err := env.Make(vars, vals)
	if err != nil {
		p.errorf("letrec: %v", err)
		return body
	}
	return forms.Let(bindings, body)
}

// finishCond parses "default clause* )" with "(cond" already consumed,
// where each clause is "(guard result)", and desugars via forms.Cond.
func (p *parser) finishCond() term.Term {
	dflt := p.parseExpr()
	var clauses []forms.Clause
	for p.peek().Type == TokLParen {
		p.advance()
		guard := p.parseExpr()
		result := p.parseExpr()
		p.expect(TokRParen, "')' closing a cond clause")
		clauses = append(clauses, forms.Clause{Guard: guard, Result: result})
	}
	p.expect(TokRParen, "')'")
	return forms.Cond(dflt, clauses...)
}
