package lex

import (
	"fmt"

	"github.com/dekarrin/goldrun/internal/gold/types"
)

// LexError reports that no DFA edge matched at all starting from the
// current input position: not even a single-rune token could be formed
// (§4.2, §7).
type LexError struct {
	Position types.Position
	Rune     rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at position %d: unexpected rune %q", e.Position, e.Rune)
}

// GroupFrame describes one nesting level of an open group, used only for
// diagnostics inside GroupError.
type GroupFrame struct {
	Group *types.Group
	Start types.Position
}

// GroupError reports that input ended while one or more Closed groups were
// still open (§4.2, §7).
type GroupError struct {
	OpenFrames []GroupFrame
}

func (e *GroupError) Error() string {
	if len(e.OpenFrames) == 0 {
		return "group error: unknown open group"
	}
	innermost := e.OpenFrames[0]
	return fmt.Sprintf("unterminated %s starting at position %d (%d frame(s) open)",
		innermost.Group.Name, innermost.Start, len(e.OpenFrames))
}
