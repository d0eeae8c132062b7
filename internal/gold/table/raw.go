package table

import "github.com/dekarrin/goldrun/internal/gold/types"

// The raw* types are the index-form intermediate representation described
// in §4.1: every cross-reference is still a plain integer index at this
// point. link.go's resolve walks these into the pointer-linked
// types.Grammar graph in a second pass, once every record has been read and
// every array is known to be complete.

type rawCharsetV1 struct {
	index int
	runes map[rune]bool
}

type rawCharsetV5 struct {
	index    int
	codepage int
	ranges   []types.CharRange
}

type rawSymbol struct {
	index int
	name  string
	kind  types.SymbolKind
}

type rawDFAEdge struct {
	charset int
	target  int
}

type rawDFAState struct {
	index     int
	accepting bool
	accepts   int // symbol index, valid only if accepting
	edges     []rawDFAEdge
}

// LALR raw action-type codes as they appear in the table file, distinct
// from types.ActionType's Go-side enum so link.go has one place that
// translates between the two.
const (
	rawActionShift  = 1
	rawActionReduce = 2
	rawActionGoto   = 3
	rawActionAccept = 4
)

type rawLALRAction struct {
	actionType int
	symbol     int // index of the terminal (shift/reduce) or non-terminal (goto)
	target     int // state index (shift/goto) or rule index (reduce); unused for accept
}

type rawLALRState struct {
	index   int
	actions []rawLALRAction
}

type rawRule struct {
	index    int
	produces int
	consumes []int
}

type rawGroup struct {
	index     int
	name      string
	container int // index of the symbol emitted for the whole group
	start     int
	end       int
	advance   types.AdvanceMode
	ending    types.EndingMode
	nestable  []int
}

// rawTable accumulates every record read from the file before link.go ties
// them together. Arrays are indexed by the index each record declared for
// itself, not by read order; GOLD table files are observed in the wild to
// write records in index order already, but nothing in §4.1 requires it.
type rawTable struct {
	version types.Version
	params  map[string]string

	charsetsV1 map[int]rawCharsetV1
	charsetsV5 map[int]rawCharsetV5
	symbols    map[int]rawSymbol
	dfaStates  map[int]rawDFAState
	lalrStates map[int]rawLALRState
	rules      map[int]rawRule
	groups     map[int]rawGroup

	dfaInitial  int
	lalrInitial int
	haveInitial bool

	warnings []string
}

func newRawTable(v types.Version) *rawTable {
	return &rawTable{
		version:    v,
		params:     map[string]string{},
		charsetsV1: map[int]rawCharsetV1{},
		charsetsV5: map[int]rawCharsetV5{},
		symbols:    map[int]rawSymbol{},
		dfaStates:  map[int]rawDFAState{},
		lalrStates: map[int]rawLALRState{},
		rules:      map[int]rawRule{},
		groups:     map[int]rawGroup{},
	}
}
