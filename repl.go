package goldrun

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/goldrun/internal/input"
	"github.com/dekarrin/rosed"
)

const replOutputWidth = 80

// Reader is a source of lines of input for a Repl, such as
// *input.DirectCommandReader or *input.InteractiveCommandReader.
type Reader interface {
	// ReadCommand reads a single line of input. It blocks until one is
	// ready. If there is an error or input is at end (io.EOF), the returned
	// string will be empty.
	ReadCommand() (string, error)

	// Close performs any operations required to clean up resources created
	// by the Reader.
	Close() error
}

// Repl reads lines from an input stream and parses each one against a fixed
// grammar, printing the outcome of every parse to an output stream, until
// end of input or a QUIT line is read.
type Repl struct {
	grammar     *Grammar
	in          Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// NewRepl creates a Repl that parses lines of input against grammar. If nil
// is given for inputStream, os.Stdin is used; if nil is given for
// outputStream, os.Stdout is used. Unless forceDirectInput is set, or
// inputStream/outputStream are not the standard streams, input is read
// using GNU readline-style line editing.
func NewRepl(grammar *Grammar, inputStream io.Reader, outputStream io.Writer, forceDirectInput bool) (*Repl, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	r := &Repl{
		grammar:     grammar,
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		r.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		r.in = input.NewDirectReader(inputStream)
	}

	return r, nil
}

// Close closes all resources associated with the Repl, including any
// readline-related resources created for interactive mode. It is an error
// to call Close on a Repl that is currently running.
func (r *Repl) Close() error {
	if r.running {
		return fmt.Errorf("cannot close a running repl")
	}
	if err := r.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}
	return nil
}

// RunUntilQuit reads lines of input and parses each one against the Repl's
// grammar until end of input or a line consisting of only "QUIT" is read.
func (r *Repl) RunUntilQuit() error {
	intro := "goldi interactive grammar session\n"
	if r.forceDirect {
		intro += "(direct input mode)\n"
	}
	intro += "==================================\n"

	if err := r.writeLine(intro); err != nil {
		return err
	}

	r.running = true
	defer func() { r.running = false }()

	for r.running {
		line, err := r.in.ReadCommand()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read input: %w", err)
		}

		if line == "QUIT" {
			break
		}

		res := Parse(context.Background(), r.grammar, line)
		if err := r.writeLine(describeParseResult(res)); err != nil {
			return err
		}
	}

	return r.writeLine("Goodbye\n")
}

func describeParseResult(res ParseResult) string {
	if res.Cancelled {
		return "(cancelled)\n"
	}
	if res.Err != nil {
		return rosed.Edit(res.Err.Error()).Wrap(replOutputWidth).String() + "\n"
	}
	return res.Tree.String()
}

func (r *Repl) writeLine(s string) error {
	if _, err := r.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return r.out.Flush()
}
