// Package table decodes the compiled binary grammar table produced by the
// GOLD Parser Builder (§4.1) into a *types.Grammar. Load is the only
// exported entry point; everything else in this package is the two-phase
// index-then-link pipeline described there: records are first read into
// the raw* index-form structs in raw.go, then resolve in link.go walks
// those into the pointer-linked object graph a types.Grammar exposes.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/goldrun/internal/gold/types"
)

const headerPrefix = "GOLD Parser Tables/v"

// Load decodes a compiled GOLD grammar table from data and returns the
// resulting immutable Grammar. The only expected error type is *LoadError.
func Load(data []byte) (*types.Grammar, error) {
	r := newTagReader(data)

	version, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	raw := newRawTable(version)
	for {
		rec, err := nextRecord(r)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		if err := dispatchRecord(raw, rec); err != nil {
			return nil, err
		}
	}

	if version == types.V1 {
		promoteV1Groups(raw)
	}

	return resolve(raw)
}

// readHeader reads the file's leading NUL-terminated UTF-16LE header
// string and extracts the format version from it. The header has no
// preceding field tag of its own; it's a bare UTF-16 run, unlike every
// field that follows it.
func readHeader(r *tagReader) (types.Version, error) {
	header, err := r.utf16zBytes()
	if err != nil {
		return 0, err
	}
	if !strings.HasPrefix(header, headerPrefix) {
		return 0, newLoadError(UnsupportedVersion, 0, "unrecognized header %q", header)
	}
	rest := strings.TrimPrefix(header, headerPrefix)
	major := rest
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		major = rest[:i]
	}
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, newLoadError(UnsupportedVersion, 0, "unparseable version %q in header %q", major, header)
	}
	switch n {
	case 1:
		return types.V1, nil
	case 5:
		return types.V5, nil
	default:
		return 0, newLoadError(UnsupportedVersion, 0, "unsupported table version %d", n)
	}
}

func dispatchRecord(raw *rawTable, rec *multiRecord) error {
	kind, err := rec.kind()
	if err != nil {
		return err
	}
	switch kind {
	case recParameter:
		err = readParameterRecord(raw, rec)
	case recProperty:
		err = readPropertyRecord(raw, rec)
	case recTableCountsV1, recTableCountsV5:
		// Counts records exist so a writer can preallocate; since this
		// loader accumulates into maps keyed by declared index, the
		// counts themselves carry no information this package needs, but
		// the field list must still be consumed to stay in sync.
		err = rec.skipRest()
	case recInitialStates:
		err = readInitialStatesRecord(raw, rec)
	case recCharsetV1:
		err = readCharsetV1Record(raw, rec)
	case recCharsetV5:
		err = readCharsetV5Record(raw, rec)
	case recSymbol:
		err = readSymbolRecord(raw, rec)
	case recDFAState:
		err = readDFAStateRecord(raw, rec)
	case recLALRState:
		err = readLALRStateRecord(raw, rec)
	case recRule:
		err = readRuleRecord(raw, rec)
	case recGroup:
		err = readGroupRecord(raw, rec)
	case recReserved:
		err = rec.skipRest()
	default:
		return newLoadError(MalformedRecord, rec.recOffset, "unknown record type %q", rune(kind))
	}
	if err != nil {
		return err
	}
	return rec.checkExact()
}

func readParameterRecord(raw *rawTable, rec *multiRecord) error {
	name, err := rec.string_()
	if err != nil {
		return err
	}
	version, err := rec.string_()
	if err != nil {
		return err
	}
	author, err := rec.string_()
	if err != nil {
		return err
	}
	about, err := rec.string_()
	if err != nil {
		return err
	}
	caseSensitive, err := rec.bool_()
	if err != nil {
		return err
	}
	startSymbolIdx, err := rec.int_()
	if err != nil {
		return err
	}

	raw.params[types.ParamName] = name
	raw.params[types.ParamVersion] = version
	raw.params[types.ParamAuthor] = author
	raw.params[types.ParamAbout] = about
	raw.params[types.ParamCaseSensitive] = strconv.FormatBool(caseSensitive)
	raw.params["_start_symbol_index"] = strconv.Itoa(startSymbolIdx)
	return nil
}

func readPropertyRecord(raw *rawTable, rec *multiRecord) error {
	if _, err := rec.int_(); err != nil { // index, informational only
		return err
	}
	name, err := rec.string_()
	if err != nil {
		return err
	}
	value, err := rec.string_()
	if err != nil {
		return err
	}
	raw.params[strings.ToLower(name)] = value
	return nil
}

func readInitialStatesRecord(raw *rawTable, rec *multiRecord) error {
	dfa, err := rec.int_()
	if err != nil {
		return err
	}
	lalr, err := rec.int_()
	if err != nil {
		return err
	}
	raw.dfaInitial = dfa
	raw.lalrInitial = lalr
	raw.haveInitial = true
	return nil
}

func readCharsetV1Record(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	count, err := rec.int_()
	if err != nil {
		return err
	}
	set := rawCharsetV1{index: index, runes: map[rune]bool{}}
	for i := 0; i < count; i++ {
		code, err := rec.uint16()
		if err != nil {
			return err
		}
		set.runes[rune(code)] = true
	}
	raw.charsetsV1[index] = set
	return nil
}

func readCharsetV5Record(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	codepage, err := rec.int_()
	if err != nil {
		return err
	}
	rangeCount, err := rec.int_()
	if err != nil {
		return err
	}
	set := rawCharsetV5{index: index, codepage: codepage}
	for i := 0; i < rangeCount; i++ {
		start, err := rec.int_()
		if err != nil {
			return err
		}
		end, err := rec.int_()
		if err != nil {
			return err
		}
		set.ranges = append(set.ranges, types.CharRange{Start: start, End: end})
	}
	raw.charsetsV5[index] = set
	return nil
}

func readSymbolRecord(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	name, err := rec.string_()
	if err != nil {
		return err
	}
	kindCode, err := rec.int_()
	if err != nil {
		return err
	}
	kind, err := symbolKindFromCode(kindCode)
	if err != nil {
		return newLoadError(MalformedRecord, rec.recOffset, "symbol %d: %v", index, err)
	}
	raw.symbols[index] = rawSymbol{index: index, name: name, kind: kind}
	return nil
}

// symbolKindFromCode translates the table format's symbol-type codes,
// which are stable across v1 and v5. In v1 tables, codes 4 and 5 mark
// block-comment start/end symbols; v1 has no native group records, so
// promoteV1Groups synthesizes groups around them.
func symbolKindFromCode(code int) (types.SymbolKind, error) {
	switch code {
	case 0:
		return types.NonTerminal, nil
	case 1:
		return types.Terminal, nil
	case 2:
		return types.Skippable, nil
	case 3:
		return types.EndOfFile, nil
	case 4:
		return types.GroupStart, nil
	case 5:
		return types.GroupEnd, nil
	case 6:
		return types.CommentLine, nil
	case 7:
		return types.Error, nil
	default:
		return 0, fmt.Errorf("unknown symbol kind code %d", code)
	}
}

func readDFAStateRecord(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	accepting, err := rec.bool_()
	if err != nil {
		return err
	}
	acceptSym, err := rec.int_()
	if err != nil {
		return err
	}
	if err := rec.empty(); err != nil { // reserved field, always present
		return err
	}
	edgeCount, err := rec.int_()
	if err != nil {
		return err
	}
	st := rawDFAState{index: index, accepting: accepting, accepts: acceptSym}
	for i := 0; i < edgeCount; i++ {
		cs, err := rec.int_()
		if err != nil {
			return err
		}
		target, err := rec.int_()
		if err != nil {
			return err
		}
		st.edges = append(st.edges, rawDFAEdge{charset: cs, target: target})
	}
	raw.dfaStates[index] = st
	return nil
}

func readLALRStateRecord(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	actionCount, err := rec.int_()
	if err != nil {
		return err
	}
	st := rawLALRState{index: index}
	for i := 0; i < actionCount; i++ {
		sym, err := rec.int_()
		if err != nil {
			return err
		}
		actionType, err := rec.int_()
		if err != nil {
			return err
		}
		target, err := rec.int_()
		if err != nil {
			return err
		}
		st.actions = append(st.actions, rawLALRAction{actionType: actionType, symbol: sym, target: target})
	}
	raw.lalrStates[index] = st
	return nil
}

func readRuleRecord(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	produces, err := rec.int_()
	if err != nil {
		return err
	}
	if err := rec.empty(); err != nil { // reserved field
		return err
	}
	symCount, err := rec.int_()
	if err != nil {
		return err
	}
	r := rawRule{index: index, produces: produces}
	for i := 0; i < symCount; i++ {
		s, err := rec.int_()
		if err != nil {
			return err
		}
		r.consumes = append(r.consumes, s)
	}
	raw.rules[index] = r
	return nil
}

func readGroupRecord(raw *rawTable, rec *multiRecord) error {
	index, err := rec.int_()
	if err != nil {
		return err
	}
	name, err := rec.string_()
	if err != nil {
		return err
	}
	container, err := rec.int_()
	if err != nil {
		return err
	}
	start, err := rec.int_()
	if err != nil {
		return err
	}
	end, err := rec.int_()
	if err != nil {
		return err
	}
	advanceCode, err := rec.int_()
	if err != nil {
		return err
	}
	endingCode, err := rec.int_()
	if err != nil {
		return err
	}
	nestCount, err := rec.int_()
	if err != nil {
		return err
	}
	g := rawGroup{
		index:     index,
		name:      name,
		container: container,
		start:     start,
		end:       end,
		advance:   advanceModeFromCode(advanceCode),
		ending:    endingModeFromCode(endingCode),
	}
	for i := 0; i < nestCount; i++ {
		n, err := rec.int_()
		if err != nil {
			return err
		}
		g.nestable = append(g.nestable, n)
	}
	raw.groups[index] = g
	return nil
}

func advanceModeFromCode(code int) types.AdvanceMode {
	if code == 1 {
		return types.Character
	}
	return types.Token
}

func endingModeFromCode(code int) types.EndingMode {
	if code == 1 {
		return types.Closed
	}
	return types.Open
}
