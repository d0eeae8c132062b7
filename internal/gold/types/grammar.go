package types

import "fmt"

// Version identifies which binary table format a Grammar was decoded from.
// The two are structurally similar but not identical: v1 has no char-range
// charsets or groups of its own (groups are synthesized during load, see
// table.Load), while v5 has no enumerated charsets and no CommentLine
// symbol kind.
type Version int

const (
	V1 Version = 1
	V5 Version = 5
)

// Grammar is the complete, immutable, in-memory result of loading a
// compiled GOLD table file. It is safe to share across any number of
// concurrent parses (§5): nothing in the lexer or parser mutates it after
// table.Load returns.
type Grammar struct {
	Version Version

	// Parameters holds the grammar's metadata: name, version, author,
	// about, case-sensitivity, declared start symbol name, and (for v5)
	// any additional property records, all under canonical keys (§4.1).
	Parameters map[string]string

	Charsets   []*Charset
	Symbols    []*Symbol
	DFAStates  []*DFAState
	LALRStates []*LALRState
	Rules      []*Rule
	Groups     []*Group

	// DFAInitial and LALRInitial are the indices into DFAStates and
	// LALRStates of the two initial states (§3 invariant: exactly one of
	// each).
	DFAInitial  int
	LALRInitial int

	// Warnings accumulates non-fatal load-time heuristic failures, such as
	// the v1 comment-line promotion not finding a "newline" symbol (§9
	// Open Questions).
	Warnings []string
}

// StartDFAState returns the DFA's initial state.
func (g *Grammar) StartDFAState() *DFAState {
	return g.DFAStates[g.DFAInitial]
}

// StartLALRState returns the LALR automaton's initial state.
func (g *Grammar) StartLALRState() *LALRState {
	return g.LALRStates[g.LALRInitial]
}

// Parameter returns a grammar metadata value by canonical key, and whether
// it was present.
func (g *Grammar) Parameter(key string) (string, bool) {
	v, ok := g.Parameters[key]
	return v, ok
}

// Symbol looks up a symbol by name. Lookup is linear; grammars are small
// (low hundreds of symbols at most) and this is called rarely outside of
// loading and diagnostics, so an index is not worth the bookkeeping.
func (g *Grammar) Symbol(name string) (*Symbol, bool) {
	for _, s := range g.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Rule returns the rule at the given index, or an error if out of range.
func (g *Grammar) Rule(i int) (*Rule, error) {
	if i < 0 || i >= len(g.Rules) {
		return nil, fmt.Errorf("rule index %d out of range [0,%d)", i, len(g.Rules))
	}
	return g.Rules[i], nil
}

// Group looks up a group by name.
func (g *Grammar) Group(name string) (*Group, bool) {
	for _, grp := range g.Groups {
		if grp.Name == name {
			return grp, true
		}
	}
	return nil, false
}

// StartSymbolName returns the grammar's declared start symbol name from its
// parameters, the conventional key used by both v1 "Start Symbol" and v5
// "Start Symbol" property records.
func (g *Grammar) StartSymbolName() string {
	name, _ := g.Parameter(ParamStartSymbol)
	return name
}

// Canonical parameter map keys, populated by the loader from both v1 fixed
// Parameter-record fields and v5 free-form Property records.
const (
	ParamName          = "name"
	ParamVersion       = "version"
	ParamAuthor        = "author"
	ParamAbout         = "about"
	ParamCaseSensitive = "case sensitive"
	ParamStartSymbol   = "start symbol"
)
