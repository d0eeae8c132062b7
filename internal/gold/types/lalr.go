package types

// ActionType identifies what an LALR parser action does.
type ActionType int

const (
	Shift ActionType = iota + 1
	Reduce
	Goto
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "Shift"
	case Reduce:
		return "Reduce"
	case Goto:
		return "Goto"
	case Accept:
		return "Accept"
	default:
		return "ActionType(?)"
	}
}

// Action is one entry of an LALR state's action table: what to do when the
// look-ahead terminal named by the owning map key is seen.
type Action struct {
	Type ActionType

	// ShiftTarget is populated when Type is Shift: the state to push.
	ShiftTarget *LALRState

	// ReduceRule is populated when Type is Reduce: the rule to apply.
	ReduceRule *Rule
}

// LALRState is one state of the parser's stack automaton.
type LALRState struct {
	Index int

	// Actions maps a terminal symbol name to the action to take when it is
	// the look-ahead. Terminal and non-terminal names are disjoint, so this
	// and Gotos may be consulted independently without fear of collision.
	Actions map[string]Action

	// Gotos maps a non-terminal symbol name to the state to push after
	// reducing to that symbol while this state is (newly) on top of stack.
	Gotos map[string]*LALRState
}

// Action looks up the action for the given terminal name. The second
// return is false if no action is defined (a parse error at this
// state/look-ahead pair).
func (s LALRState) Action(terminalName string) (Action, bool) {
	a, ok := s.Actions[terminalName]
	return a, ok
}

// Goto looks up the successor state for the given non-terminal name. The
// second return is false if none is defined; callers that reach this case
// are looking at a corrupt grammar, since a well-formed LALR table always
// defines a goto for every non-terminal a reduce can produce at this point
// in the stack (§4.3 step 5).
func (s LALRState) Goto(nonTerminalName string) (*LALRState, bool) {
	st, ok := s.Gotos[nonTerminalName]
	return st, ok
}
