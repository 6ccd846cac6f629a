// Package diagnostics defines the closed error taxonomy the evaluator
// reports failures with, following the reference evaluator's
// Diagnostic{Code, Message, Hint} shape.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tcore-lang/tcore/pkg/term"
)

// Code identifies the kind of a Diagnostic. The four evaluator codes
// (Unbound, ArityMismatch, TypeError, NoMatch) are the closed taxonomy of
// spec §7. Depth is a resource-limit signal, never one of those four.
// Lex/Parse belong to the optional pkg/sexpr front end, not the core.
const (
	Unbound       = "E_UNBOUND"
	ArityMismatch = "E_ARITY"
	TypeError     = "E_TYPE"
	NoMatch       = "E_NO_MATCH"
	Depth         = "E_DEPTH"
	Lex           = "E_LEX"
	Parse         = "E_PARSE"
)

// Diagnostic is a structured, distinguishable evaluator failure. It
// implements error, so callers that don't care about the taxonomy can
// treat it as an ordinary error, and callers that do can use errors.As to
// recover the Code.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Term    term.Term `json:"-"`
	Hint    string    `json:"hint,omitempty"`
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// New builds a Diagnostic with an optional offending Term for context.
func New(code, message string, offending term.Term) *Diagnostic {
	return &Diagnostic{Code: code, Message: message, Term: offending}
}

// WithHint attaches a short remediation hint and returns the receiver, for
// chaining at the call site: diagnostics.New(...).WithHint("...").
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

// Format renders a single diagnostic for display: JSON when pretty is
// false (the machine-readable default), a human form otherwise: one line,
// plus a second "hint:" line when Hint is set.
func Format(d *Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	out := fmt.Sprintf("error[%s]: %s", d.Code, d.Message)
	if d.Term != nil {
		out += fmt.Sprintf(" (in %s)", d.Term.Kind())
	}
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatAll renders a slice of diagnostics, separated by a blank line in
// pretty mode, or as a JSON array otherwise.
func FormatAll(diags []*Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = Format(d, true)
	}
	return strings.Join(parts, "\n\n")
}
