// Command tcore is the optional CLI driver for the term evaluator: it
// reads a program through pkg/sexpr, evaluates it through pkg/runtime,
// and prints the result through pkg/formatter.
//
// Grounded on the reference evaluator's cmd/a0/main.go manual os.Args
// subcommand dispatch, stripped of the capability-policy and trace flags
// that have no counterpart in a pure evaluator with no side-effecting
// primitives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
	"github.com/tcore-lang/tcore/pkg/formatter"
	"github.com/tcore-lang/tcore/pkg/runtime"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tcore <command> [file]")
	fmt.Fprintln(os.Stderr, "commands: run, check, fmt, help")
	fmt.Fprintln(os.Stderr, "a missing [file], or '-', reads the program from stdin")
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func cmdRun(args []string) int {
	source, err := readSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rt := runtime.New()
	value, err := rt.Run(context.Background(), source)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(formatter.Format(value))
	return 0
}

func cmdCheck(args []string) int {
	source, err := readSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rt := runtime.New()
	diags := rt.Check(source)
	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(diags, true))
		return 1
	}
	fmt.Println("ok")
	return 0
}

func cmdFmt(args []string) int {
	source, err := readSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rt := runtime.New()
	out, err := rt.Format(source)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(out)
	return 0
}

func reportError(err error) int {
	var de *runtime.DiagnosticError
	if errors.As(err, &de) {
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(de.Diagnostics, true))
		return 1
	}
	var d *diagnostics.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(os.Stderr, diagnostics.Format(d, true))
		return 1
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
