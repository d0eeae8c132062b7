// Package lex implements the longest-match DFA token scanner and nested
// group engine described in §4.2: Lexer.Next turns a rune stream into the
// Token sequence a parser consumes, transparently collapsing groups
// (comments, quoted strings, ...) into single atomic tokens.
package lex

import (
	"github.com/dekarrin/goldrun/internal/gold/types"
)

// frame is one level of the open-group stack.
type frame struct {
	group    *types.Group
	start    types.Position
	children []types.Token
}

// Lexer scans a fixed input string against a *types.Grammar's DFA and
// group tables. A Lexer is single-use and not safe for concurrent calls to
// Next from multiple goroutines, matching the cooperative, single-threaded
// model the parser above it also uses (§5).
type Lexer struct {
	g     *types.Grammar
	input []rune
	pos   types.Position

	stack []frame
}

// New returns a Lexer over input, ready to scan against g.
func New(g *types.Grammar, input string) *Lexer {
	return &Lexer{g: g, input: []rune(input)}
}

// Position reports the lexer's current rune offset into the input.
func (l *Lexer) Position() types.Position {
	return l.pos
}

func (l *Lexer) atEOF(pos types.Position) bool {
	return int(pos) >= len(l.input)
}

// match runs the DFA from its initial state starting at pos, returning the
// symbol and rune-length of the longest accepting match found, by
// backtracking to the last accepting state seen if the automaton runs off
// its edges (or off the end of input) before reaching another one (§4.2).
func (l *Lexer) match(pos types.Position) (sym *types.Symbol, length int, ok bool) {
	state := l.g.StartDFAState()
	var lastAccept *types.Symbol
	lastLen := 0

	i := 0
	for {
		if state.IsAccepting() {
			lastAccept = state.Accepts
			lastLen = i
		}
		p := int(pos) + i
		if p >= len(l.input) {
			break
		}
		next, advanced := state.Next(l.input[p])
		if !advanced {
			break
		}
		state = next
		i++
	}

	if lastAccept == nil {
		return nil, 0, false
	}
	return lastAccept, lastLen, true
}

// Next returns the next token the parser should see: either a plain
// top-level match, or (transparently) the single atomic token a closed
// group collapses to. It returns an EndOfFile-kind token, repeatedly, once
// the input is exhausted and no group is open.
//
// Skippable-kind tokens (typically whitespace) are returned like any
// other; filtering them out of what reaches a parser is the top-level
// driver's job (component D), not the lexer's, per §6.
func (l *Lexer) Next() (types.Token, error) {
	if len(l.stack) == 0 {
		return l.nextTopLevel()
	}
	return l.nextInsideGroup()
}

func (l *Lexer) nextTopLevel() (types.Token, error) {
	if l.atEOF(l.pos) {
		return l.eofToken(l.pos), nil
	}

	sym, n, ok := l.match(l.pos)
	if !ok {
		return types.Token{}, &LexError{Position: l.pos, Rune: l.input[l.pos]}
	}

	lit := string(l.input[l.pos : int(l.pos)+n])
	start := l.pos

	if sym.Kind == types.GroupStart && sym.Group != nil {
		l.stack = append(l.stack, frame{group: sym.Group, start: start})
		l.pos += types.Position(n)
		return l.nextInsideGroup()
	}

	l.pos += types.Position(n)
	return types.Token{Symbol: sym, Literal: lit, Start: start}, nil
}

// nextInsideGroup advances through one or more open group frames until
// either the outermost frame closes (producing a token to return) or input
// ends.
func (l *Lexer) nextInsideGroup() (types.Token, error) {
	for {
		if l.atEOF(l.pos) {
			return l.closeAllAtEOF()
		}

		top := &l.stack[len(l.stack)-1]
		if top.group.Advance == types.Character {
			if tok, closed, err := l.stepCharacterGroup(top); err != nil {
				return types.Token{}, err
			} else if closed {
				if done, result := l.popFrame(tok); done {
					return result, nil
				}
				continue
			}
			continue
		}

		tok, closed, err := l.stepTokenGroup(top)
		if err != nil {
			return types.Token{}, err
		}
		if closed {
			if done, result := l.popFrame(tok); done {
				return result, nil
			}
			continue
		}
	}
}

// stepTokenGroup advances a Token-advance frame by one DFA match: nested
// group starts push, a match of the frame's End symbol closes it, anything
// else becomes a child token of the frame. A position with no DFA match at
// all is not an error inside a group (unlike at top level): it is skipped
// one rune at a time, per §4.2's advancement invariant.
func (l *Lexer) stepTokenGroup(top *frame) (tok types.Token, closed bool, err error) {
	sym, n, ok := l.match(l.pos)
	if !ok {
		l.pos++
		return types.Token{}, false, nil
	}

	lit := string(l.input[l.pos : int(l.pos)+n])
	start := l.pos

	if sym.Equal(*top.group.End) {
		l.pos += types.Position(n)
		return types.Token{Symbol: sym, Literal: lit, Start: start}, true, nil
	}

	if sym.Kind == types.GroupStart && sym.Group != nil && top.group.AllowsNested(sym.Group.Name) {
		l.stack = append(l.stack, frame{group: sym.Group, start: start})
		l.pos += types.Position(n)
		return types.Token{}, false, nil
	}

	child := types.Token{Symbol: sym, Literal: lit, Start: start}
	top.children = append(top.children, child)
	l.pos += types.Position(n)
	return types.Token{}, false, nil
}

// stepCharacterGroup advances a Character-advance frame one rune at a
// time, watching only for the frame's End symbol; it never produces
// children (line comments have no meaningful internal tokens).
//
// A group closed by a symbol named "newline" (the v1 line-comment
// synthesis in table/promote.go) does not consume that newline (§4.2):
// l.pos is left at the newline's start so it remains available as the
// next top-level token.
func (l *Lexer) stepCharacterGroup(top *frame) (tok types.Token, closed bool, err error) {
	sym, n, ok := l.match(l.pos)
	if ok && sym.Equal(*top.group.End) {
		lit := string(l.input[l.pos : int(l.pos)+n])
		start := l.pos
		if types.EqualFoldName(sym.Name, "newline") {
			return types.Token{Symbol: sym, Literal: lit, Start: start}, true, nil
		}
		l.pos += types.Position(n)
		return types.Token{Symbol: sym, Literal: lit, Start: start}, true, nil
	}
	l.pos++
	return types.Token{}, false, nil
}

// popFrame closes the innermost frame, whose closing symbol's token is
// endTok. If a parent frame remains, the whole closed frame becomes one
// child token of the parent and scanning continues (done=false). If the
// stack is now empty, the closed frame's accumulated span becomes the
// token handed back to the caller (done=true).
//
// When endTok's symbol is named "newline", the newline itself is excluded
// from the group's span (§4.2): the group ends at endTok.Start, not past
// it, matching stepCharacterGroup leaving l.pos there.
func (l *Lexer) popFrame(endTok types.Token) (done bool, result types.Token) {
	closedFrame := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]

	spanEnd := int(endTok.Start) + len([]rune(endTok.Literal))
	if endTok.Symbol != nil && types.EqualFoldName(endTok.Symbol.Name, "newline") {
		spanEnd = int(endTok.Start)
	}

	groupTok := types.Token{
		Symbol:   closedFrame.group.Emitted,
		Literal:  string(l.input[int(closedFrame.start):spanEnd]),
		Start:    closedFrame.start,
		Children: append(closedFrame.children, endTok),
	}

	if len(l.stack) == 0 {
		return true, groupTok
	}
	parent := &l.stack[len(l.stack)-1]
	parent.children = append(parent.children, groupTok)
	return false, types.Token{}
}

// closeAllAtEOF implements the EOF-with-open-frames rule (§4.2, §7): if
// every open frame is Open-ending, they all close implicitly and the
// outermost's accumulated token is returned; if any is Closed-ending,
// that's a GroupError listing every still-open frame, innermost (top of
// stack) first.
func (l *Lexer) closeAllAtEOF() (types.Token, error) {
	for _, f := range l.stack {
		if f.group.Ending == types.Closed {
			frames := make([]GroupFrame, len(l.stack))
			for i, fr := range l.stack {
				frames[len(l.stack)-1-i] = GroupFrame{Group: fr.group, Start: fr.start}
			}
			return types.Token{}, &GroupError{OpenFrames: frames}
		}
	}

	// All open; fold innermost-to-outermost into one accumulated token.
	var acc types.Token
	haveAcc := false
	for len(l.stack) > 0 {
		closedFrame := l.stack[len(l.stack)-1]
		l.stack = l.stack[:len(l.stack)-1]

		children := closedFrame.children
		if haveAcc {
			children = append(children, acc)
		}
		acc = types.Token{
			Symbol:   closedFrame.group.Emitted,
			Literal:  string(l.input[int(closedFrame.start):]),
			Start:    closedFrame.start,
			Children: children,
		}
		haveAcc = true
	}
	l.pos = types.Position(len(l.input))
	return acc, nil
}

func (l *Lexer) eofToken(pos types.Position) types.Token {
	for _, s := range l.g.Symbols {
		if s.Kind == types.EndOfFile {
			return types.Token{Symbol: s, Literal: "", Start: pos}
		}
	}
	return types.Token{Start: pos}
}
