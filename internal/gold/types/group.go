package types

// AdvanceMode controls how the group engine moves through input while
// inside an open group frame whose interior isn't itself matched by the
// DFA (§4.2).
type AdvanceMode int

const (
	// Token advances by the length of whatever the DFA matched.
	Token AdvanceMode = iota
	// Character advances one rune at a time regardless of DFA match length.
	Character
)

func (m AdvanceMode) String() string {
	if m == Character {
		return "Character"
	}
	return "Token"
}

// EndingMode controls what happens if a group is still open at end of
// input (§4.2).
type EndingMode int

const (
	// Open groups close implicitly at end of input (e.g. line comments).
	Open EndingMode = iota
	// Closed groups left open at end of input are a GroupError.
	Closed
)

func (m EndingMode) String() string {
	if m == Closed {
		return "Closed"
	}
	return "Open"
}

// Group describes a nestable lexical construct whose interior is lexed but
// emitted to the parser (and caller) as a single atomic token: block
// comments, line comments, and quoted strings are all groups.
type Group struct {
	Index int
	Name  string

	// Emitted is the symbol of the token produced for the group as a
	// whole.
	Emitted *Symbol

	Start *Symbol
	End   *Symbol

	Advance AdvanceMode
	Ending  EndingMode

	// Nestable holds the other groups that this group's NestableNames names;
	// a GroupStart token for one of these, seen while this group's frame is
	// on top of the group stack, opens a nested frame (§4.2 step 2).
	Nestable []*Group

	// NestableNames holds the names of the groups in Nestable, in the same
	// order, filled in during linking. Kept for diagnostics.
	NestableNames []string
}

// AllowsNested reports whether a group with the given name may open inside
// this one.
func (g Group) AllowsNested(name string) bool {
	for _, n := range g.Nestable {
		if n.Name == name {
			return true
		}
	}
	return false
}
