package parse

import (
	"context"
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/stretchr/testify/assert"
)

// fakeTokenSource hands out tokens from a fixed slice, repeating the final
// one (intended to be an EOF token) once exhausted.
type fakeTokenSource struct {
	toks []types.Token
	pos  int
}

func (f *fakeTokenSource) Next() (types.Token, error) {
	if f.pos >= len(f.toks) {
		return f.toks[len(f.toks)-1], nil
	}
	tok := f.toks[f.pos]
	f.pos++
	return tok, nil
}

// singleTokenGrammar builds a minimal LALR automaton that accepts exactly
// one "a" token: S -> a.
func singleTokenGrammar() (*types.Grammar, *types.Rule) {
	aSym := &types.Symbol{Name: "a", Kind: types.Terminal}
	sSym := &types.Symbol{Name: "S", Kind: types.NonTerminal}
	eofSym := &types.Symbol{Name: "$", Kind: types.EndOfFile}

	rule := &types.Rule{Index: 0, Produces: sSym, Consumes: []*types.Symbol{aSym}}

	state2 := &types.LALRState{Index: 2, Actions: map[string]types.Action{
		"$": {Type: types.Accept},
	}}
	state1 := &types.LALRState{Index: 1, Actions: map[string]types.Action{
		"$": {Type: types.Reduce, ReduceRule: rule},
	}}
	state0 := &types.LALRState{
		Index: 0,
		Actions: map[string]types.Action{
			"a": {Type: types.Shift, ShiftTarget: state1},
		},
		Gotos: map[string]*types.LALRState{
			"S": state2,
		},
	}

	g := &types.Grammar{
		Symbols:     []*types.Symbol{aSym, sSym, eofSym},
		Rules:       []*types.Rule{rule},
		LALRStates:  []*types.LALRState{state0, state1, state2},
		LALRInitial: 0,
	}
	return g, rule
}

func Test_Parser_Run_accepts(t *testing.T) {
	assert := assert.New(t)

	g, rule := singleTokenGrammar()
	aTok := types.Token{Symbol: g.Symbols[0], Literal: "a"}
	eofTok := types.Token{Symbol: g.Symbols[2]}

	src := &fakeTokenSource{toks: []types.Token{aTok, eofTok}}
	p := New(g, src)

	res := p.Run(context.Background())

	assert.NoError(res.Err)
	assert.False(res.Cancelled)
	assert.NotNil(res.Tree)
	assert.Same(rule, res.Tree.Rule)
	assert.Len(res.Tree.Children, 1)
	assert.True(res.Tree.Children[0].Terminal)
	assert.Equal("a", res.Tree.Children[0].Tok.Literal)
}

func Test_Parser_Run_parseError(t *testing.T) {
	assert := assert.New(t)

	g, _ := singleTokenGrammar()
	eofTok := types.Token{Symbol: g.Symbols[2]}

	// feed the EOF token immediately: state0 has no action for "$"
	src := &fakeTokenSource{toks: []types.Token{eofTok}}
	p := New(g, src)

	res := p.Run(context.Background())

	assert.Nil(res.Tree)
	assert.Error(res.Err)

	var parseErr *ParseError
	assert.ErrorAs(res.Err, &parseErr)
	assert.Contains(parseErr.Expected, "a")
	assert.Nil(parseErr.LastToken, "end-of-input driving the failure must leave LastToken nil")
}

func Test_Parser_Run_cancelled(t *testing.T) {
	assert := assert.New(t)

	g, _ := singleTokenGrammar()
	aTok := types.Token{Symbol: g.Symbols[0], Literal: "a"}
	src := &fakeTokenSource{toks: []types.Token{aTok}}
	p := New(g, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Run(ctx)

	assert.True(res.Cancelled)
	assert.Nil(res.Tree)
	assert.NoError(res.Err)
}

func Test_Parser_Step_observers(t *testing.T) {
	assert := assert.New(t)

	g, rule := singleTokenGrammar()
	aTok := types.Token{Symbol: g.Symbols[0], Literal: "a"}
	eofTok := types.Token{Symbol: g.Symbols[2]}
	src := &fakeTokenSource{toks: []types.Token{aTok, eofTok}}

	var tokensSeen []types.Token
	var shiftsSeen []types.Token
	var rulesSeen []*types.Rule

	obs := recordingObserver{
		onToken:  func(tok types.Token) { tokensSeen = append(tokensSeen, tok) },
		onShift:  func(tok types.Token, _ *types.LALRState) { shiftsSeen = append(shiftsSeen, tok) },
		onReduce: func(r *types.Rule, _ *types.ParseTree) { rulesSeen = append(rulesSeen, r) },
	}

	p := New(g, src, obs)
	res := p.Run(context.Background())

	assert.NoError(res.Err)
	assert.Len(tokensSeen, 2)
	assert.Len(shiftsSeen, 1)
	assert.Equal([]*types.Rule{rule}, rulesSeen)
}

type recordingObserver struct {
	onToken  func(types.Token)
	onShift  func(types.Token, *types.LALRState)
	onReduce func(*types.Rule, *types.ParseTree)
}

func (r recordingObserver) OnToken(tok types.Token) { r.onToken(tok) }
func (r recordingObserver) OnShift(tok types.Token, s *types.LALRState) {
	r.onShift(tok, s)
}
func (r recordingObserver) OnReduce(rule *types.Rule, node *types.ParseTree) {
	r.onReduce(rule, node)
}
