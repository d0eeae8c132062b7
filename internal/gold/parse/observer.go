package parse

import "github.com/dekarrin/goldrun/internal/gold/types"

// Observer receives the three event kinds the stack automaton emits while
// parsing (§4.3, §5). Implementations that only care about one or two
// events can embed NoopObserver for the rest.
//
// Ordering is guaranteed: for a given token, OnToken fires before the
// OnShift (or terminal OnReduce, for an empty-production epsilon path)
// that consumes it; OnReduce fires after all of a production's children
// have themselves been fully shifted/reduced, and after the Goto that
// follows it has pushed the new node onto the stack.
type Observer interface {
	// OnToken fires once per token pulled from the lexer, before it is
	// examined as a look-ahead.
	OnToken(tok types.Token)
	// OnShift fires when a token is shifted onto the stack, naming the
	// state reached.
	OnShift(tok types.Token, toState *types.LALRState)
	// OnReduce fires when a rule is reduced, with the tree node just
	// built for it.
	OnReduce(rule *types.Rule, node *types.ParseTree)
}

// NoopObserver is a zero-cost embeddable base for Observer implementations
// that only want to override a subset of the events.
type NoopObserver struct{}

func (NoopObserver) OnToken(types.Token)                        {}
func (NoopObserver) OnShift(types.Token, *types.LALRState)       {}
func (NoopObserver) OnReduce(*types.Rule, *types.ParseTree)      {}

// TraceObserver logs every event through Log, in the style of
// internal/ictiobus/parse/lr.go's notifyTraceShift/notifyTraceReduce
// helpers, for use as a debugging aid (the "debug-adapter protocol shim"
// itself is explicitly out of scope; these are the hooks such a shim would
// consume).
type TraceObserver struct {
	Log func(string)
}

func (t TraceObserver) OnToken(tok types.Token) {
	if t.Log != nil {
		t.Log("token: " + tok.String())
	}
}

func (t TraceObserver) OnShift(tok types.Token, toState *types.LALRState) {
	if t.Log != nil {
		t.Log("shift: " + tok.String())
	}
}

func (t TraceObserver) OnReduce(rule *types.Rule, node *types.ParseTree) {
	if t.Log != nil {
		t.Log("reduce: " + rule.String())
	}
}

type multiObserver []Observer

func (m multiObserver) OnToken(tok types.Token) {
	for _, o := range m {
		o.OnToken(tok)
	}
}

func (m multiObserver) OnShift(tok types.Token, toState *types.LALRState) {
	for _, o := range m {
		o.OnShift(tok, toState)
	}
}

func (m multiObserver) OnReduce(rule *types.Rule, node *types.ParseTree) {
	for _, o := range m {
		o.OnReduce(rule, node)
	}
}
