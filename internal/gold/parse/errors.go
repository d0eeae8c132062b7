package parse

import (
	"fmt"

	"github.com/dekarrin/goldrun/internal/gold/types"
)

// ParseError reports that the LALR automaton had no action defined for the
// look-ahead token at the current state: ordinary user-input syntax error
// territory (§7).
type ParseError struct {
	// LastToken is the offending look-ahead token, or nil if end-of-input
	// itself drove the failure (§4.3, §7) rather than a real token.
	LastToken *types.Token
	// StateStack is a snapshot of the automaton's state-index stack at the
	// moment of failure, bottom first.
	StateStack []int
	// Expected names the terminal symbols that would have been accepted
	// instead, for "expected X or Y" style messages.
	Expected []string
}

func (e *ParseError) Error() string {
	tok := "end of input"
	if e.LastToken != nil {
		tok = e.LastToken.String()
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("parse error: unexpected %s", tok)
	}
	return fmt.Sprintf("parse error: unexpected %s (expected %s)", tok, joinOr(e.Expected))
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		out := names[0]
		for _, n := range names[1 : len(names)-1] {
			out += ", " + n
		}
		out += " or " + names[len(names)-1]
		return out
	}
}

// CorruptionError reports an LALR automaton consulted in a way that a
// well-formed table should never permit: a missing goto after a reduce, or
// a shift/reduce action naming a state or rule index outside the loaded
// grammar. This is distinct from ParseError because it indicates the
// grammar table itself is inconsistent, not that the input is invalid
// (§4.3 step 5, §7).
type CorruptionError struct {
	Msg string
}

func (e *CorruptionError) Error() string {
	return "grammar table corruption: " + e.Msg
}
