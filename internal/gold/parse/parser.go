// Package parse implements the LALR(1) stack automaton described in §4.3:
// a stack of (state, parse-tree node) pairs driven by Shift/Reduce/Accept
// actions read off a *types.Grammar's LALR table, with observer callbacks
// and cooperative cancellation (§5). It is grounded on the shift/reduce
// stack-walk in internal/ictiobus/parse/lr.go, generalized from that
// package's regex-lexer-fed, from-scratch-constructed tables to the
// pre-compiled GOLD tables types.Grammar exposes.
package parse

import (
	"context"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/internal/util"
)

// TokenSource is anything that can hand the parser tokens one at a time;
// *lex.Lexer satisfies it without either package importing the other.
type TokenSource interface {
	Next() (types.Token, error)
}

type stackItem struct {
	state *types.LALRState
	node  *types.ParseTree
}

// Parser drives one parse of a token stream against a grammar's LALR
// table. A Parser is single-use: construct a fresh one per parse.
type Parser struct {
	grammar   *types.Grammar
	tokens    TokenSource
	observer  multiObserver
	stack     util.Stack[stackItem]
	lookahead *types.Token
}

// New returns a Parser ready to consume tokens from src against grammar,
// notifying every observer given.
func New(grammar *types.Grammar, src TokenSource, observers ...Observer) *Parser {
	p := &Parser{
		grammar:  grammar,
		tokens:   src,
		observer: multiObserver(observers),
	}
	p.stack.Push(stackItem{state: grammar.StartLALRState()})
	return p
}

// Result is what a completed parse produced: exactly one of Tree or Err is
// non-nil, unless Cancelled is true, in which case both are nil.
type Result struct {
	Tree      *types.ParseTree
	Err       error
	Cancelled bool
}

// Run drives the parser to completion, polling ctx for cancellation
// between steps (§5): a cancelled parse returns promptly with
// Result.Cancelled set, leaving no partial tree.
func (p *Parser) Run(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			return Result{Cancelled: true}
		default:
		}

		tree, done, err := p.Step()
		if err != nil {
			return Result{Err: err}
		}
		if done {
			return Result{Tree: tree}
		}
	}
}

// Step advances the automaton by exactly one action: one Shift, one
// Reduce, or the terminal Accept. done is true only on Accept or on error.
func (p *Parser) Step() (tree *types.ParseTree, done bool, err error) {
	if p.lookahead == nil {
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, true, err
		}
		p.observer.OnToken(tok)
		p.lookahead = &tok
	}

	top := p.stack.Peek()
	action, ok := top.state.Action(p.lookahead.Symbol.Name)
	if !ok {
		return nil, true, p.parseError()
	}

	switch action.Type {
	case types.Shift:
		return p.doShift(action)
	case types.Reduce:
		return p.doReduce(action)
	case types.Accept:
		return p.stack.Peek().node, true, nil
	default:
		return nil, true, &CorruptionError{Msg: "action table entry has type " + action.Type.String() + ", which is never valid as a look-ahead action"}
	}
}

func (p *Parser) doShift(action types.Action) (*types.ParseTree, bool, error) {
	leaf := &types.ParseTree{Terminal: true, Tok: *p.lookahead}
	p.stack.Push(stackItem{state: action.ShiftTarget, node: leaf})
	p.observer.OnShift(*p.lookahead, action.ShiftTarget)
	p.lookahead = nil
	return nil, false, nil
}

func (p *Parser) doReduce(action types.Action) (*types.ParseTree, bool, error) {
	rule := action.ReduceRule
	n := rule.Len()

	children := make([]*types.ParseTree, n)
	for i := n - 1; i >= 0; i-- {
		children[i] = p.stack.Pop().node
	}

	node := &types.ParseTree{Rule: rule, Children: children}

	newTop := p.stack.Peek()
	gotoState, ok := newTop.state.Goto(rule.Produces.Name)
	if !ok {
		return nil, true, &CorruptionError{
			Msg: "no goto for " + rule.Produces.Name + " from state after reducing by " + rule.String(),
		}
	}
	p.stack.Push(stackItem{state: gotoState, node: node})
	p.observer.OnReduce(rule, node)
	return nil, false, nil
}

func (p *Parser) parseError() *ParseError {
	top := p.stack.Peek()
	var expected []string
	for name, a := range top.state.Actions {
		if a.Type != types.Goto {
			expected = append(expected, name)
		}
	}
	slice := p.stack.Slice()
	states := make([]int, len(slice))
	for i, it := range slice {
		states[i] = it.state.Index
	}
	var lastTok *types.Token
	if p.lookahead != nil && p.lookahead.Symbol != nil && p.lookahead.Symbol.Kind != types.EndOfFile {
		tok := *p.lookahead
		lastTok = &tok
	}
	return &ParseError{LastToken: lastTok, StateStack: states, Expected: expected}
}
