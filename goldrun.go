// Package goldrun is the top-level driver (component D, §6): it loads a
// compiled GOLD grammar table, wires a lexer's tokens through a Skippable
// filter into the LALR parser, and reports the outcome as a ParseResult.
// It is grounded on internal/ictiobus.go's Frontend type, which plays the
// same lex-then-parse wiring role for that package's own (from-scratch)
// tables, minus the semantic-analysis phase ictiobus also runs: that phase
// is out of scope here (§1 Non-goals, SPEC_FULL §13).
package goldrun

import (
	"context"

	"github.com/dekarrin/goldrun/internal/gold/lex"
	"github.com/dekarrin/goldrun/internal/gold/parse"
	"github.com/dekarrin/goldrun/internal/gold/table"
	"github.com/dekarrin/goldrun/internal/gold/types"
)

// Grammar is the loaded, immutable representation of a compiled GOLD table
// file, safe to reuse across any number of concurrent Parse calls (§5).
type Grammar = types.Grammar

// Token is one lexical unit, exported for callers that want to pre-scan
// or post-inspect parses.
type Token = types.Token

// ParseTree is a completed parse's syntax tree (§3).
type ParseTree = types.ParseTree

// LoadGrammar decodes a compiled GOLD grammar table from its binary bytes.
func LoadGrammar(data []byte) (*Grammar, error) {
	return table.Load(data)
}

// ParseResult is everything a parse of one input string against one
// grammar can produce (§6).
type ParseResult struct {
	Tree      *ParseTree
	Err       error
	Cancelled bool
}

// ParseSuccessful reports whether r represents a completed, error-free
// parse (§6): equivalent to r.Err == nil && !r.Cancelled, spelled out as
// its own function since callers reach for it often enough in the
// examples this repo's tests are modeled on.
func ParseSuccessful(r ParseResult) bool {
	return r.Err == nil && !r.Cancelled
}

// Parse scans input against grammar and runs it through the LALR parser,
// filtering out Skippable-kind tokens (ordinarily whitespace) before they
// ever reach the parser (§6): the parser's grammar table has no rules that
// mention them, so letting them through would always be a parse error.
// Observers, if given, see every token the lexer produces, Skippable ones
// included, and every shift/reduce the parser performs.
func Parse(ctx context.Context, grammar *Grammar, input string, observers ...parse.Observer) ParseResult {
	lexer := lex.New(grammar, input)
	src := &skipFilter{lexer: lexer, observers: observers}
	p := parse.New(grammar, src, observers...)
	res := p.Run(ctx)
	return ParseResult{Tree: res.Tree, Err: res.Err, Cancelled: res.Cancelled}
}

// skipFilter adapts a *lex.Lexer into a parse.TokenSource that silently
// consumes Skippable tokens, notifying observers of each one before
// discarding it so a trace observer still sees whitespace/etc. go by.
type skipFilter struct {
	lexer     *lex.Lexer
	observers []parse.Observer
}

func (f *skipFilter) Next() (types.Token, error) {
	for {
		tok, err := f.lexer.Next()
		if err != nil {
			return types.Token{}, err
		}
		if tok.Symbol != nil && tok.Symbol.Kind == types.Skippable {
			for _, o := range f.observers {
				o.OnToken(tok)
			}
			continue
		}
		return tok, nil
	}
}
