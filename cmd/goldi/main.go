/*
Goldi starts an interactive grammar session.

It reads in a compiled GOLD grammar table and starts a REPL that parses
each line of input typed at it against that grammar, printing the
resulting parse tree or error. To exit the interpreter, type "QUIT".

Usage:

	goldi [flags]

The flags are:

	-v, --version
		Give the current version of goldi and then exit.

	-g, --grammar FILE
		Use the provided compiled GOLD grammar table file. Defaults to the
		file "grammar.cgt" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline-based routines for reading input, even if launched in a
		tty with stdin and stdout.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/goldrun"
	"github.com/dekarrin/goldrun/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.cgt", "The compiled GOLD grammar table file to load")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	tableData, err := os.ReadFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	grammar, err := goldrun.LoadGrammar(tableData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not load grammar table: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	repl, err := goldrun.NewRepl(grammar, os.Stdin, os.Stdout, *forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer repl.Close()

	if err := repl.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
		return
	}
}
